package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTypeNames(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want []string
	}{
		{
			name: "nil input",
			raw:  nil,
			want: nil,
		},
		{
			name: "empty input",
			raw:  []string{},
			want: nil,
		},
		{
			name: "trims and lower-cases",
			raw:  []string{" Grass ", "POISON"},
			want: []string{"grass", "poison"},
		},
		{
			name: "drops empty and whitespace-only entries",
			raw:  []string{"", "  ", "fire"},
			want: []string{"fire"},
		},
		{
			name: "dedupes preserving first-seen order",
			raw:  []string{"Water", "fire", "WATER", "Fire", "water"},
			want: []string{"water", "fire"},
		},
		{
			name: "dedupes after canonicalization",
			raw:  []string{"Grass", " grass "},
			want: []string{"grass"},
		},
		{
			name: "everything filtered out collapses to nil",
			raw:  []string{"", "   ", "\t"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTypeNames(tt.raw))
		})
	}
}
