// =============================================================================
// FILE: internal/repository/pokemon_repository.go
// PURPOSE: Database operations for pokemons and their type links
// =============================================================================
//
// TABLE STRUCTURE:
//
// CREATE TABLE pokemons (
//     id INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
//     name TEXT NOT NULL,
//     created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
// );
//
// CREATE TABLE types (
//     id INTEGER GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name TEXT NOT NULL UNIQUE,  -- canonical (trimmed, lower-cased) form
//     created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
// );
//
// CREATE TABLE pokemon_types (
//     pokemon_id INTEGER NOT NULL REFERENCES pokemons(id),
//     type_id INTEGER NOT NULL REFERENCES types(id),
//     PRIMARY KEY (pokemon_id, type_id)
// );
//
// "GENERATED BY DEFAULT" on pokemons.id lets the import flow insert an
// explicit id (the upstream PokeAPI id) while normal creates take the
// generated one.
//
// Every multi-step write runs inside a single transaction: a failure
// between "delete old links" and "insert new links" must never leave a
// half-replaced type set visible to concurrent readers.
// =============================================================================

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pokedex-api/internal/models"
)

// ErrNotFound indicates the requested resource doesn't exist.
// Storage reports "row vanished during update" and "row never existed"
// identically (zero rows affected), so both surface as this error.
var ErrNotFound = errors.New("resource not found")

// PokemonRepositoryInterface defines the contract for pokemon data
// operations. All mutations that touch type links are atomic: the row
// write and the link replacement commit or roll back together.
//
// The types slice follows the same convention everywhere: nil means
// "leave the existing links untouched", non-nil means "replace the full
// set with exactly these canonical names, in this order".
type PokemonRepositoryInterface interface {
	Insert(ctx context.Context, name string, typeNames []string) (*models.Pokemon, error)
	Upsert(ctx context.Context, id int, name string, typeNames []string) (*models.Pokemon, error)
	Update(ctx context.Context, id int, name *string, typeNames []string) (*models.Pokemon, error)
	Delete(ctx context.Context, id int) error
	FindByQuery(ctx context.Context, q models.ListQuery) ([]models.Pokemon, int, error)
}

// PokemonRepository implements PokemonRepositoryInterface using PostgreSQL
type PokemonRepository struct {
	pool *pgxpool.Pool
}

// NewPokemonRepository creates a new PokemonRepository instance
func NewPokemonRepository(pool *pgxpool.Pool) *PokemonRepository {
	return &PokemonRepository{pool: pool}
}

// Insert creates a new pokemon with a generated id and, when typeNames is
// non-nil, its type links. Returns the stored row with resolved types.
func (r *PokemonRepository) Insert(ctx context.Context, name string, typeNames []string) (*models.Pokemon, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int
	err = tx.QueryRow(ctx,
		`INSERT INTO pokemons (name) VALUES ($1) RETURNING id`,
		name,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to insert pokemon: %w", err)
	}

	if err := r.replaceTypeLinks(ctx, tx, id, typeNames); err != nil {
		return nil, err
	}

	pokemon, err := r.getByIDTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return pokemon, nil
}

// Upsert creates the pokemon with the given id, or updates its name if a
// row with that id already exists. When typeNames is non-nil the type
// links are fully replaced either way. Used by create-with-id and import.
func (r *PokemonRepository) Upsert(ctx context.Context, id int, name string, typeNames []string) (*models.Pokemon, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// created_at keeps its original value on conflict - it is immutable
	_, err = tx.Exec(ctx,
		`INSERT INTO pokemons (id, name) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`,
		id, name,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert pokemon %d: %w", id, err)
	}

	if err := r.replaceTypeLinks(ctx, tx, id, typeNames); err != nil {
		return nil, err
	}

	pokemon, err := r.getByIDTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return pokemon, nil
}

// Update applies a partial update: the name only when non-nil, the type
// links only when typeNames is non-nil. Returns ErrNotFound when no row
// with the given id exists.
func (r *PokemonRepository) Update(ctx context.Context, id int, name *string, typeNames []string) (*models.Pokemon, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if name != nil {
		tag, err := tx.Exec(ctx,
			`UPDATE pokemons SET name = $1 WHERE id = $2`,
			*name, id,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to update pokemon %d: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			return nil, ErrNotFound
		}
	} else {
		// Nothing to write on the row itself, but the target must exist
		var exists int
		err := tx.QueryRow(ctx, `SELECT id FROM pokemons WHERE id = $1`, id).Scan(&exists)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to check pokemon %d: %w", id, err)
		}
	}

	if err := r.replaceTypeLinks(ctx, tx, id, typeNames); err != nil {
		return nil, err
	}

	pokemon, err := r.getByIDTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return pokemon, nil
}

// Delete removes the pokemon's link rows first, then the pokemon row.
// The order matters: the schema has no ON DELETE CASCADE on the junction
// table. Type rows are never deleted here - they are shared.
func (r *PokemonRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM pokemon_types WHERE pokemon_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete type links for pokemon %d: %w", id, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM pokemons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pokemon %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// FindByQuery runs the paginated select and the count over the same
// predicate inside one repeatable-read transaction, so total and items
// are mutually consistent even under concurrent writes.
func (r *PokemonRepository) FindByQuery(ctx context.Context, q models.ListQuery) ([]models.Pokemon, int, error) {
	selectSQL, selectArgs, countSQL, countArgs := buildPokemonQuery(q)

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin read transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, selectSQL, selectArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query pokemons: %w", err)
	}

	// pgx.CollectRows handles iteration, scanning, and closing rows
	pokemons, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[models.Pokemon])
	if err != nil {
		return nil, 0, fmt.Errorf("failed to collect pokemon rows: %w", err)
	}

	if err := r.attachTypes(ctx, tx, pokemons); err != nil {
		return nil, 0, err
	}

	var total int
	if err := tx.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count pokemons: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("failed to commit read transaction: %w", err)
	}
	return pokemons, total, nil
}

// =============================================================================
// TYPE LINK RECONCILIATION
// =============================================================================

// replaceTypeLinks makes the stored links for a pokemon match typeNames.
// nil means no change was requested; otherwise this is always a full
// overwrite: delete every existing link, then connect-or-create each name
// and link it, in input order. No diffing against the current set.
func (r *PokemonRepository) replaceTypeLinks(ctx context.Context, tx pgx.Tx, pokemonID int, typeNames []string) error {
	if typeNames == nil {
		return nil
	}

	_, err := tx.Exec(ctx, `DELETE FROM pokemon_types WHERE pokemon_id = $1`, pokemonID)
	if err != nil {
		return fmt.Errorf("failed to delete type links for pokemon %d: %w", pokemonID, err)
	}

	for _, name := range typeNames {
		typeID, err := r.connectOrCreateType(ctx, tx, name)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO pokemon_types (pokemon_id, type_id) VALUES ($1, $2)`,
			pokemonID, typeID,
		)
		if err != nil {
			return fmt.Errorf("failed to link pokemon %d to type %q: %w", pokemonID, name, err)
		}
	}
	return nil
}

// connectOrCreateType returns the id of the type row with the given
// canonical name, creating it if missing. Try-create first; when the
// unique constraint swallows the insert (a concurrent writer or an
// existing row), fall back to reading the existing id.
func (r *PokemonRepository) connectOrCreateType(ctx context.Context, tx pgx.Tx, name string) (int, error) {
	var typeID int
	err := tx.QueryRow(ctx,
		`INSERT INTO types (name) VALUES ($1) ON CONFLICT (name) DO NOTHING RETURNING id`,
		name,
	).Scan(&typeID)
	if errors.Is(err, pgx.ErrNoRows) {
		err = tx.QueryRow(ctx, `SELECT id FROM types WHERE name = $1`, name).Scan(&typeID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to connect-or-create type %q: %w", name, err)
	}
	return typeID, nil
}

// =============================================================================
// READ-BACK HELPERS
// =============================================================================

// getByIDTx loads a single pokemon with its resolved types within tx
func (r *PokemonRepository) getByIDTx(ctx context.Context, tx pgx.Tx, id int) (*models.Pokemon, error) {
	var pokemon models.Pokemon
	err := tx.QueryRow(ctx,
		`SELECT id, name, created_at FROM pokemons WHERE id = $1`,
		id,
	).Scan(&pokemon.ID, &pokemon.Name, &pokemon.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pokemon %d: %w", id, err)
	}

	pokemons := []models.Pokemon{pokemon}
	if err := r.attachTypes(ctx, tx, pokemons); err != nil {
		return nil, err
	}
	return &pokemons[0], nil
}

// attachTypes resolves the type sets for a batch of pokemons with a
// single ANY() query against the junction table
func (r *PokemonRepository) attachTypes(ctx context.Context, tx pgx.Tx, pokemons []models.Pokemon) error {
	if len(pokemons) == 0 {
		return nil
	}

	ids := make([]int, len(pokemons))
	for i := range pokemons {
		ids[i] = pokemons[i].ID
	}

	rows, err := tx.Query(ctx, `
		SELECT pt.pokemon_id, t.id, t.name, t.created_at
		FROM pokemon_types pt
		JOIN types t ON t.id = pt.type_id
		WHERE pt.pokemon_id = ANY($1)
		ORDER BY t.name ASC
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to query type links: %w", err)
	}
	defer rows.Close()

	byPokemon := make(map[int][]models.Type, len(pokemons))
	for rows.Next() {
		var pokemonID int
		var t models.Type
		if err := rows.Scan(&pokemonID, &t.ID, &t.Name, &t.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan type link row: %w", err)
		}
		byPokemon[pokemonID] = append(byPokemon[pokemonID], t)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read type link rows: %w", err)
	}

	for i := range pokemons {
		pokemons[i].Types = byPokemon[pokemons[i].ID]
	}
	return nil
}
