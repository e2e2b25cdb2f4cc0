package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"pokedex-api/internal/client"
	"pokedex-api/internal/models"
	"pokedex-api/internal/repository"
)

// =============================================================================
// CUSTOM ERRORS FOR SERVICE LAYER
// =============================================================================
// Service-layer errors are separate from repository errors so handlers
// never depend on the storage implementation.

// ErrPokemonNotFound indicates the target pokemon doesn't exist
var ErrPokemonNotFound = errors.New("pokemon not found")

// ErrInvalidInput indicates malformed input, rejected before any storage
// access. The wrapped message carries the specific violation.
var ErrInvalidInput = errors.New("invalid input")

// ErrUpstream indicates the external pokemon provider failed (unreachable,
// non-200, malformed payload). Never retried here - retry policy belongs
// to the caller.
var ErrUpstream = errors.New("upstream provider failure")

// Input bounds, checked before any storage access
const (
	minNameLength = 2
	maxNameLength = 100
	maxTypes      = 3
)

// PokemonServiceInterface defines the contract for catalog operations
type PokemonServiceInterface interface {
	Create(ctx context.Context, req models.CreatePokemonRequest) (*models.PokemonResponse, error)
	Update(ctx context.Context, id int, req models.UpdatePokemonRequest) (*models.PokemonResponse, error)
	Delete(ctx context.Context, id int) error
	FindMany(ctx context.Context, q models.ListQuery) (*models.ListResponse, error)
	ImportByID(ctx context.Context, id int) (*models.PokemonResponse, error)
}

// PokemonService implements PokemonServiceInterface. It owns input
// validation, type-name normalization, and the error mapping between
// repository/client errors and the service taxonomy; transaction
// boundaries live in the repository.
type PokemonService struct {
	pokemonRepo repository.PokemonRepositoryInterface
	pokeapi     client.PokeAPIInterface
	logger      zerolog.Logger
}

// NewPokemonService creates a new PokemonService instance.
// Accepts interfaces, not concrete types - this enables mocking in tests.
func NewPokemonService(pokemonRepo repository.PokemonRepositoryInterface, pokeapi client.PokeAPIInterface, logger zerolog.Logger) *PokemonService {
	return &PokemonService{
		pokemonRepo: pokemonRepo,
		pokeapi:     pokeapi,
		logger:      logger,
	}
}

// Create stores a new pokemon. When an id is supplied the operation is an
// upsert: update-if-exists-else-create, with the type links fully
// replaced if types were given.
func (s *PokemonService) Create(ctx context.Context, req models.CreatePokemonRequest) (*models.PokemonResponse, error) {
	if err := validateName(req.Name); err != nil {
		return nil, err
	}
	if err := validateTypeCount(req.Types); err != nil {
		return nil, err
	}
	if req.ID != nil && *req.ID < 1 {
		return nil, fmt.Errorf("%w: id must be a positive integer", ErrInvalidInput)
	}

	typeNames := NormalizeTypeNames(req.Types)

	var pokemon *models.Pokemon
	var err error
	if req.ID != nil {
		pokemon, err = s.pokemonRepo.Upsert(ctx, *req.ID, req.Name, typeNames)
	} else {
		pokemon, err = s.pokemonRepo.Insert(ctx, req.Name, typeNames)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create pokemon: %w", err)
	}

	s.logger.Info().Int("id", pokemon.ID).Str("name", pokemon.Name).Msg("pokemon created")
	response := pokemon.ToResponse()
	return &response, nil
}

// Update applies a partial update: name only when provided, and a full
// replacement of the type set when types are provided. Omitted types
// leave the existing set untouched.
func (s *PokemonService) Update(ctx context.Context, id int, req models.UpdatePokemonRequest) (*models.PokemonResponse, error) {
	if id < 1 {
		return nil, fmt.Errorf("%w: id must be a positive integer", ErrInvalidInput)
	}
	if req.Name != nil {
		if err := validateName(*req.Name); err != nil {
			return nil, err
		}
	}
	if err := validateTypeCount(req.Types); err != nil {
		return nil, err
	}

	typeNames := NormalizeTypeNames(req.Types)

	pokemon, err := s.pokemonRepo.Update(ctx, id, req.Name, typeNames)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPokemonNotFound
		}
		return nil, fmt.Errorf("failed to update pokemon: %w", err)
	}

	response := pokemon.ToResponse()
	return &response, nil
}

// Delete removes a pokemon and its type links. Deleting an id that
// doesn't exist is an error, never a silent success.
func (s *PokemonService) Delete(ctx context.Context, id int) error {
	if id < 1 {
		return fmt.Errorf("%w: id must be a positive integer", ErrInvalidInput)
	}

	if err := s.pokemonRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPokemonNotFound
		}
		return fmt.Errorf("failed to delete pokemon: %w", err)
	}

	s.logger.Info().Int("id", id).Msg("pokemon deleted")
	return nil
}

// FindMany returns a page envelope for the given filter/sort/page
// request. Out-of-range paging values are clamped, never rejected, so
// this always returns a well-formed envelope - including for zero rows.
func (s *PokemonService) FindMany(ctx context.Context, q models.ListQuery) (*models.ListResponse, error) {
	q = q.Normalize()

	pokemons, total, err := s.pokemonRepo.FindByQuery(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list pokemons: %w", err)
	}

	items := make([]models.PokemonResponse, 0, len(pokemons))
	for i := range pokemons {
		items = append(items, pokemons[i].ToResponse())
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + q.PageSize - 1) / q.PageSize
	}

	return &models.ListResponse{
		Items:      items,
		Page:       q.Page,
		PageSize:   q.PageSize,
		Total:      total,
		TotalPages: totalPages,
		SortBy:     q.SortBy,
		Order:      q.Order,
		Filters: models.ListFilters{
			Name: q.Name,
			Type: q.Type,
		},
	}, nil
}

// ImportByID fetches a pokemon from the external provider and upserts it
// locally under the same id, fully replacing its type links. Repeated
// imports of an unchanged upstream record converge to the same stored
// state. The network fetch completes before any storage write begins -
// no transaction is held open across it.
func (s *PokemonService) ImportByID(ctx context.Context, id int) (*models.PokemonResponse, error) {
	if id < 1 {
		return nil, fmt.Errorf("%w: id must be a positive integer", ErrInvalidInput)
	}

	data, err := s.pokeapi.GetPokemon(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	// TypeNames falls back to ["unknown"] when the provider supplies no
	// types, so an import always carries a non-nil replacement set
	typeNames := NormalizeTypeNames(data.TypeNames())

	pokemon, err := s.pokemonRepo.Upsert(ctx, id, data.Name, typeNames)
	if err != nil {
		return nil, fmt.Errorf("failed to store imported pokemon: %w", err)
	}

	s.logger.Info().
		Int("id", pokemon.ID).
		Str("name", pokemon.Name).
		Strs("types", typeNames).
		Msg("pokemon imported")

	response := pokemon.ToResponse()
	return &response, nil
}

func validateName(name string) error {
	length := utf8.RuneCountInString(name)
	if length < minNameLength || length > maxNameLength {
		return fmt.Errorf("%w: name must be %d-%d characters", ErrInvalidInput, minNameLength, maxNameLength)
	}
	return nil
}

func validateTypeCount(types []string) error {
	if len(types) > maxTypes {
		return fmt.Errorf("%w: at most %d types allowed", ErrInvalidInput, maxTypes)
	}
	return nil
}
