package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListQueryNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   ListQuery
		want ListQuery
	}{
		{
			name: "zero value gets all defaults",
			in:   ListQuery{},
			want: ListQuery{Page: 1, PageSize: 10, SortBy: "name", Order: "asc"},
		},
		{
			name: "page below 1 clamped to 1",
			in:   ListQuery{Page: -5, PageSize: 10, SortBy: "name", Order: "asc"},
			want: ListQuery{Page: 1, PageSize: 10, SortBy: "name", Order: "asc"},
		},
		{
			name: "pageSize above 100 clamped to 100",
			in:   ListQuery{Page: 2, PageSize: 1000, SortBy: "name", Order: "asc"},
			want: ListQuery{Page: 2, PageSize: 100, SortBy: "name", Order: "asc"},
		},
		{
			name: "pageSize 100 untouched",
			in:   ListQuery{Page: 1, PageSize: 100, SortBy: "name", Order: "asc"},
			want: ListQuery{Page: 1, PageSize: 100, SortBy: "name", Order: "asc"},
		},
		{
			name: "unknown sortBy falls back to name",
			in:   ListQuery{Page: 1, PageSize: 10, SortBy: "id; DROP TABLE pokemons", Order: "asc"},
			want: ListQuery{Page: 1, PageSize: 10, SortBy: "name", Order: "asc"},
		},
		{
			name: "created_at sort preserved",
			in:   ListQuery{Page: 1, PageSize: 10, SortBy: "created_at", Order: "desc"},
			want: ListQuery{Page: 1, PageSize: 10, SortBy: "created_at", Order: "desc"},
		},
		{
			name: "unknown order falls back to asc",
			in:   ListQuery{Page: 1, PageSize: 10, SortBy: "name", Order: "sideways"},
			want: ListQuery{Page: 1, PageSize: 10, SortBy: "name", Order: "asc"},
		},
		{
			name: "filters pass through untouched",
			in:   ListQuery{Name: "bulba", Type: "Grass"},
			want: ListQuery{Name: "bulba", Type: "Grass", Page: 1, PageSize: 10, SortBy: "name", Order: "asc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestPokemonToResponseEmptyTypes(t *testing.T) {
	p := Pokemon{ID: 1, Name: "ditto"}
	resp := p.ToResponse()

	// Clients must see an empty array, never null
	assert.NotNil(t, resp.Types)
	assert.Len(t, resp.Types, 0)
}
