package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// DefaultBaseURL is the public PokeAPI endpoint
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// ErrPokemonNotFound indicates the provider has no record for the id
var ErrPokemonNotFound = errors.New("pokemon not found upstream")

// PokeAPIInterface defines the contract for the external pokemon provider
type PokeAPIInterface interface {
	GetPokemon(ctx context.Context, id int) (*Pokemon, error)
}

// Pokemon is the slice of the provider payload we care about.
// The provider nests type names as types[].type.name.
type Pokemon struct {
	Name  string     `json:"name"`
	Types []TypeSlot `json:"types"`
}

// TypeSlot is one entry of the provider's types array
type TypeSlot struct {
	Type TypeInfo `json:"type"`
}

// TypeInfo carries the actual type name
type TypeInfo struct {
	Name string `json:"name"`
}

// TypeNames extracts the type names from the provider shape, dropping
// empty entries. Falls back to a single "unknown" placeholder when the
// provider supplies no usable types, so imports always carry a type set.
func (p *Pokemon) TypeNames() []string {
	names := make([]string, 0, len(p.Types))
	for _, slot := range p.Types {
		if slot.Type.Name != "" {
			names = append(names, slot.Type.Name)
		}
	}
	if len(names) == 0 {
		return []string{"unknown"}
	}
	return names
}

// PokeAPIClient implements PokeAPIInterface against the real PokeAPI
type PokeAPIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewPokeAPIClient creates a new PokeAPIClient instance.
// The timeout bounds the whole fetch; callers must expect this call to be
// slow and fallible and must not hold a transaction open across it.
func NewPokeAPIClient(baseURL string) *PokeAPIClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &PokeAPIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetPokemon fetches a pokemon record by its numeric id
func (c *PokeAPIClient) GetPokemon(ctx context.Context, id int) (*Pokemon, error) {
	url := fmt.Sprintf("%s/pokemon/%d", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build pokeapi request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach pokeapi: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: id %d", ErrPokemonNotFound, id)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("pokeapi returned status %d for id %d", resp.StatusCode, id)
	}

	var pokemon Pokemon
	if err := json.NewDecoder(resp.Body).Decode(&pokemon); err != nil {
		return nil, fmt.Errorf("failed to decode pokeapi response: %w", err)
	}
	if pokemon.Name == "" {
		return nil, fmt.Errorf("pokeapi response for id %d has no name", id)
	}

	return &pokemon, nil
}
