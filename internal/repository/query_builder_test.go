package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pokedex-api/internal/models"
)

func TestBuildPokemonQueryNoFilters(t *testing.T) {
	q := models.ListQuery{}.Normalize()

	selectSQL, selectArgs, countSQL, countArgs := buildPokemonQuery(q)

	// Absent filters are omitted from the predicate entirely
	assert.NotContains(t, selectSQL, "WHERE")
	assert.NotContains(t, countSQL, "WHERE")

	assert.Contains(t, selectSQL, "ORDER BY p.name ASC")
	assert.Contains(t, selectSQL, "LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{10, 0}, selectArgs)

	assert.Equal(t, "SELECT COUNT(*) FROM pokemons p", countSQL)
	assert.Empty(t, countArgs)
}

func TestBuildPokemonQueryNameFilter(t *testing.T) {
	q := models.ListQuery{Name: "bulba"}.Normalize()

	selectSQL, selectArgs, countSQL, countArgs := buildPokemonQuery(q)

	assert.Contains(t, selectSQL, "p.name LIKE '%' || $1 || '%'")
	assert.Equal(t, []any{"bulba", 10, 0}, selectArgs)

	// Count shares the exact same predicate and filter args
	assert.Contains(t, countSQL, "p.name LIKE '%' || $1 || '%'")
	assert.Equal(t, []any{"bulba"}, countArgs)
}

func TestBuildPokemonQueryTypeFilterLowerCases(t *testing.T) {
	q := models.ListQuery{Type: "Grass"}.Normalize()

	selectSQL, selectArgs, _, countArgs := buildPokemonQuery(q)

	assert.Contains(t, selectSQL, "t.name = $1")
	assert.Contains(t, selectSQL, "pokemon_types")
	assert.Equal(t, []any{"grass", 10, 0}, selectArgs)
	assert.Equal(t, []any{"grass"}, countArgs)
}

func TestBuildPokemonQueryBothFilters(t *testing.T) {
	q := models.ListQuery{Name: "saur", Type: "poison"}.Normalize()

	selectSQL, selectArgs, countSQL, countArgs := buildPokemonQuery(q)

	assert.Contains(t, selectSQL, "p.name LIKE '%' || $1 || '%'")
	assert.Contains(t, selectSQL, "t.name = $2")
	assert.Contains(t, selectSQL, " AND ")
	assert.Contains(t, selectSQL, "LIMIT $3 OFFSET $4")
	assert.Equal(t, []any{"saur", "poison", 10, 0}, selectArgs)

	assert.Contains(t, countSQL, " AND ")
	assert.Equal(t, []any{"saur", "poison"}, countArgs)
}

func TestBuildPokemonQueryPagination(t *testing.T) {
	q := models.ListQuery{Page: 3, PageSize: 20}.Normalize()

	_, selectArgs, _, _ := buildPokemonQuery(q)

	// offset = (page-1) * pageSize
	assert.Equal(t, []any{20, 40}, selectArgs)
}

func TestBuildPokemonQuerySortWhitelist(t *testing.T) {
	q := models.ListQuery{SortBy: "created_at", Order: "desc"}.Normalize()

	selectSQL, _, _, _ := buildPokemonQuery(q)
	assert.Contains(t, selectSQL, "ORDER BY p.created_at DESC")

	// A value that slipped past normalization still maps to the default
	// column instead of reaching the SQL verbatim
	hostile := models.ListQuery{Page: 1, PageSize: 10, SortBy: "name; DROP TABLE pokemons", Order: "asc"}
	selectSQL, _, _, _ = buildPokemonQuery(hostile)
	assert.Contains(t, selectSQL, "ORDER BY p.name ASC")
	assert.NotContains(t, selectSQL, "DROP TABLE")
}
