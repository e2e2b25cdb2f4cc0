// =============================================================================
// FILE: internal/services/type_service.go
// PURPOSE: Business logic for types
// =============================================================================
//
// Types don't have complex business logic - they are created implicitly
// by the pokemon write paths and only listed here. Having a service layer
// anyway keeps the layering consistent with pokemons.
// =============================================================================

package services

import (
	"context"
	"fmt"

	"pokedex-api/internal/models"
	"pokedex-api/internal/repository"
)

// TypeServiceInterface defines the contract for type operations
type TypeServiceInterface interface {
	GetAllTypes(ctx context.Context) ([]models.TypeResponse, error)
}

// TypeService implements TypeServiceInterface
type TypeService struct {
	typeRepo repository.TypeRepositoryInterface
}

// NewTypeService creates a new TypeService instance
func NewTypeService(typeRepo repository.TypeRepositoryInterface) *TypeService {
	return &TypeService{typeRepo: typeRepo}
}

// GetAllTypes retrieves all types for filter dropdowns
func (s *TypeService) GetAllTypes(ctx context.Context) ([]models.TypeResponse, error) {
	types, err := s.typeRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get types: %w", err)
	}

	// Convert to response DTOs
	responses := make([]models.TypeResponse, 0, len(types))
	for _, t := range types {
		responses = append(responses, t.ToResponse())
	}

	return responses, nil
}
