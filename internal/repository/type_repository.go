package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pokedex-api/internal/models"
)

// TypeRepositoryInterface defines the contract for type data operations.
// Type rows are created implicitly through the pokemon repository's
// connect-or-create path and never deleted; this repository only reads.
type TypeRepositoryInterface interface {
	FindAll(ctx context.Context) ([]models.Type, error)
}

// TypeRepository implements TypeRepositoryInterface
type TypeRepository struct {
	pool *pgxpool.Pool
}

// NewTypeRepository creates a new TypeRepository instance
func NewTypeRepository(pool *pgxpool.Pool) *TypeRepository {
	return &TypeRepository{pool: pool}
}

// FindAll retrieves all types, used to populate filter dropdowns
func (r *TypeRepository) FindAll(ctx context.Context) ([]models.Type, error) {
	query := `
		SELECT id, name, created_at
		FROM types
		ORDER BY name ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query types: %w", err)
	}

	// pgx.CollectRows handles iteration, scanning, and closing rows
	types, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[models.Type])
	if err != nil {
		return nil, fmt.Errorf("failed to collect type rows: %w", err)
	}

	return types, nil
}
