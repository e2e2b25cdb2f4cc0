package repository

import (
	"fmt"
	"strings"

	"pokedex-api/internal/models"
)

// =============================================================================
// DYNAMIC QUERY BUILDING
// =============================================================================
// The listing endpoint filters, sorts, and paginates. We build the SQL
// from an ordered list of predicate clauses, appending one only when the
// corresponding filter is present, then join them with AND. Absent filters
// never appear in the predicate at all.
//
// IMPORTANT: every user-supplied value goes through a positional
// parameter ($1, $2, ...). Sort column and direction are never taken from
// input directly - they are mapped through whitelists.

// sortColumns whitelists the sortable columns. ListQuery.Normalize
// already restricts SortBy, but the builder maps through this table so an
// unvetted value can never reach the ORDER BY clause.
var sortColumns = map[string]string{
	models.SortByName:      "p.name",
	models.SortByCreatedAt: "p.created_at",
}

var sortDirections = map[string]string{
	models.OrderAsc:  "ASC",
	models.OrderDesc: "DESC",
}

// buildPokemonQuery translates a normalized ListQuery into a bounded
// select and a count over the same predicate. The caller is expected to
// have run q.Normalize() first.
func buildPokemonQuery(q models.ListQuery) (selectSQL string, selectArgs []any, countSQL string, countArgs []any) {
	clauses := make([]string, 0, 2)
	filterArgs := make([]any, 0, 2)

	if q.Name != "" {
		filterArgs = append(filterArgs, q.Name)
		clauses = append(clauses, fmt.Sprintf("p.name LIKE '%%' || $%d || '%%'", len(filterArgs)))
	}

	if q.Type != "" {
		// Match against the canonical (lower-cased) type name
		filterArgs = append(filterArgs, strings.ToLower(q.Type))
		clauses = append(clauses, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM pokemon_types pt
			JOIN types t ON t.id = pt.type_id
			WHERE pt.pokemon_id = p.id AND t.name = $%d
		)`, len(filterArgs)))
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = sortColumns[models.SortByName]
	}
	direction, ok := sortDirections[q.Order]
	if !ok {
		direction = sortDirections[models.OrderAsc]
	}

	countSQL = "SELECT COUNT(*) FROM pokemons p" + where
	countArgs = filterArgs

	offset := (q.Page - 1) * q.PageSize
	selectArgs = append(append([]any{}, filterArgs...), q.PageSize, offset)
	selectSQL = fmt.Sprintf(
		"SELECT p.id, p.name, p.created_at FROM pokemons p%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		where, column, direction, len(filterArgs)+1, len(filterArgs)+2,
	)

	return selectSQL, selectArgs, countSQL, countArgs
}
