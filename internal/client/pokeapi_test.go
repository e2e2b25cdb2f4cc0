package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPokemon(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pokemon/1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"name": "bulbasaur",
			"types": [
				{"slot": 1, "type": {"name": "grass", "url": "https://pokeapi.co/api/v2/type/12/"}},
				{"slot": 2, "type": {"name": "poison", "url": "https://pokeapi.co/api/v2/type/4/"}}
			]
		}`))
	}))
	defer server.Close()

	pokemon, err := NewPokeAPIClient(server.URL).GetPokemon(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "bulbasaur", pokemon.Name)
	assert.Equal(t, []string{"grass", "poison"}, pokemon.TypeNames())
}

func TestGetPokemonNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewPokeAPIClient(server.URL).GetPokemon(context.Background(), 99999)
	assert.ErrorIs(t, err, ErrPokemonNotFound)
}

func TestGetPokemonServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewPokeAPIClient(server.URL).GetPokemon(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPokemonNotFound)
}

func TestGetPokemonMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": `))
	}))
	defer server.Close()

	_, err := NewPokeAPIClient(server.URL).GetPokemon(context.Background(), 1)
	assert.Error(t, err)
}

func TestGetPokemonUnreachable(t *testing.T) {
	// A closed server: connection refused
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := NewPokeAPIClient(server.URL).GetPokemon(context.Background(), 1)
	assert.Error(t, err)
}

func TestTypeNamesFallsBackToUnknown(t *testing.T) {
	tests := []struct {
		name    string
		pokemon Pokemon
		want    []string
	}{
		{"no types", Pokemon{Name: "glitchmon"}, []string{"unknown"}},
		{"only empty names", Pokemon{Types: []TypeSlot{{}}}, []string{"unknown"}},
		{"mixed", Pokemon{Types: []TypeSlot{{}, {Type: TypeInfo{Name: "grass"}}}}, []string{"grass"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pokemon.TypeNames())
		})
	}
}
