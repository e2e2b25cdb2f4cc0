package models

import (
	"strings"
	"time"
)

// =============================================================================
// DATABASE MODELS - These match PostgreSQL table structures
// =============================================================================

// Pokemon represents a row in the "pokemons" table.
// STRUCT TAGS: The `db:"column_name"` tags tell pgx which column to map to
// which field. The `json:"field_name"` tags control API serialization.
type Pokemon struct {
	// ID is the primary key. It is usually generated, but the import flow
	// supplies it explicitly (the upstream PokeAPI id becomes the local id).
	ID int `db:"id" json:"id"`

	// Name is the pokemon name (e.g., "bulbasaur")
	Name string `db:"name" json:"name"`

	// CreatedAt is when this record was created - immutable after insert
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Types holds the resolved type rows for this pokemon.
	// Populated by the repository from the pokemon_types junction table,
	// never scanned directly (hence db:"-").
	Types []Type `db:"-" json:"types"`
}

// Type represents a row in the "types" table.
// Type names are globally unique in their canonical (trimmed, lower-cased)
// form; two pokemons referencing "grass" share the same row.
type Type struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// =============================================================================
// API RESPONSE DTOs - These are what we send back to clients
// =============================================================================

// TypeResponse is the type data embedded in pokemon responses
type TypeResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// PokemonResponse is the full pokemon representation with resolved types
type PokemonResponse struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	Types     []TypeResponse `json:"types"`
}

// ListFilters echoes back the filters that were applied to a listing
type ListFilters struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
}

// ListResponse is the page envelope for the listing endpoint.
// TotalPages is ceil(Total/PageSize), and 0 when Total is 0.
type ListResponse struct {
	Items      []PokemonResponse `json:"items"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	Total      int               `json:"total"`
	TotalPages int               `json:"totalPages"`
	SortBy     string            `json:"sortBy"`
	Order      string            `json:"order"`
	Filters    ListFilters       `json:"filters"`
}

// =============================================================================
// API REQUEST DTOs - These are what clients send to us
// =============================================================================

// CreatePokemonRequest creates a new pokemon, or upserts when ID is given.
// STRUCT TAGS:
// - `json:"field"` for JSON body parsing
// - `binding:"..."` for Gin validation
type CreatePokemonRequest struct {
	// ID is optional; when present the operation becomes an upsert
	ID *int `json:"id" binding:"omitempty,min=1"`

	// Name is required, 2-100 characters
	Name string `json:"name" binding:"required,min=2,max=100"`

	// Types is an optional list of type names, at most 3.
	// Omitting it means "no type change requested".
	Types []string `json:"types" binding:"omitempty,max=3"`
}

// UpdatePokemonRequest partially updates a pokemon. Name is only changed
// when provided; Types, when provided, fully replace the existing set.
type UpdatePokemonRequest struct {
	Name  *string  `json:"name" binding:"omitempty,min=2,max=100"`
	Types []string `json:"types" binding:"omitempty,max=3"`
}

// Sort and order values accepted by ListQuery
const (
	SortByName      = "name"
	SortByCreatedAt = "created_at"
	OrderAsc        = "asc"
	OrderDesc       = "desc"
)

// Pagination bounds; out-of-range requests are clamped, never rejected
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListQuery holds the filter/sort/page parameters for the listing endpoint.
// All fields are optional query parameters.
type ListQuery struct {
	// Name filters pokemons whose name contains this substring
	Name string `form:"name"`

	// Type filters pokemons having at least one type whose canonical
	// name equals the lower-cased value
	Type string `form:"type"`

	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
	SortBy   string `form:"sortBy"`
	Order    string `form:"order"`
}

// Normalize applies defaults and silently clamps out-of-range values:
// page >= 1, pageSize 1..100, sortBy in {name, created_at}, order in
// {asc, desc}. Unknown sort/order values fall back to the defaults.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < DefaultPage {
		q.Page = DefaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	switch q.SortBy {
	case SortByName, SortByCreatedAt:
	default:
		q.SortBy = SortByName
	}
	switch strings.ToLower(q.Order) {
	case OrderAsc:
		q.Order = OrderAsc
	case OrderDesc:
		q.Order = OrderDesc
	default:
		q.Order = OrderAsc
	}
	return q
}

// =============================================================================
// HELPER METHODS - Convert between models and DTOs
// =============================================================================

// ToResponse converts a Type model to TypeResponse DTO
func (t *Type) ToResponse() TypeResponse {
	return TypeResponse{
		ID:   t.ID,
		Name: t.Name,
	}
}

// ToResponse converts a Pokemon model to PokemonResponse DTO.
// Types is always non-nil so clients see an empty array, not null.
func (p *Pokemon) ToResponse() PokemonResponse {
	types := make([]TypeResponse, 0, len(p.Types))
	for _, t := range p.Types {
		types = append(types, t.ToResponse())
	}
	return PokemonResponse{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		Types:     types,
	}
}
