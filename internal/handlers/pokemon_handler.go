// =============================================================================
// FILE: internal/handlers/pokemon_handler.go
// PURPOSE: HTTP request handling for pokemon endpoints
// =============================================================================
//
// Handlers are the bridge between HTTP and the service layer. They parse
// request data, run Gin binding validation, call the service, and map
// service errors to status codes:
//   ErrInvalidInput    -> 400
//   ErrPokemonNotFound -> 404
//   ErrUpstream        -> 502
//   anything else      -> 500 with a generic body
// =============================================================================

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pokedex-api/internal/models"
	"pokedex-api/internal/services"
)

// PokemonHandler handles HTTP requests for pokemon endpoints
type PokemonHandler struct {
	// Depend on the interface, not the concrete type (enables test fakes)
	pokemonService services.PokemonServiceInterface
}

// NewPokemonHandler creates a new PokemonHandler instance
func NewPokemonHandler(pokemonService services.PokemonServiceInterface) *PokemonHandler {
	return &PokemonHandler{pokemonService: pokemonService}
}

// CreatePokemon handles POST /pokemons
// @Summary Create a pokemon
// @Description Create a pokemon, or upsert when an id is supplied
// @Tags pokemons
// @Accept json
// @Produce json
// @Success 201 {object} models.PokemonResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /pokemons [post]
func (h *PokemonHandler) CreatePokemon(c *gin.Context) {
	var req models.CreatePokemonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	pokemon, err := h.pokemonService.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create pokemon",
		})
		return
	}

	c.JSON(http.StatusCreated, pokemon)
}

// UpdatePokemon handles PATCH /pokemons/:id
// @Summary Update a pokemon
// @Description Partially update a pokemon; a supplied type list fully replaces the old one
// @Tags pokemons
// @Accept json
// @Produce json
// @Param id path int true "Pokemon ID"
// @Success 200 {object} models.PokemonResponse
// @Failure 404 {object} map[string]string "Pokemon not found"
// @Router /pokemons/{id} [patch]
func (h *PokemonHandler) UpdatePokemon(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdatePokemonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	pokemon, err := h.pokemonService.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPokemonNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Pokemon not found"})
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update pokemon",
			})
		}
		return
	}

	c.JSON(http.StatusOK, pokemon)
}

// DeletePokemon handles DELETE /pokemons/:id
// @Summary Delete a pokemon
// @Tags pokemons
// @Produce json
// @Param id path int true "Pokemon ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string "Pokemon not found"
// @Router /pokemons/{id} [delete]
func (h *PokemonHandler) DeletePokemon(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.pokemonService.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, services.ErrPokemonNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Pokemon not found"})
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to delete pokemon",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ListPokemons handles GET /pokemons
// @Summary List pokemons
// @Description Filtered, sorted, paginated listing; paging values are clamped silently
// @Tags pokemons
// @Produce json
// @Success 200 {object} models.ListResponse
// @Router /pokemons [get]
func (h *PokemonHandler) ListPokemons(c *gin.Context) {
	var q models.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters: " + err.Error(),
		})
		return
	}

	page, err := h.pokemonService.FindMany(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list pokemons",
		})
		return
	}

	c.JSON(http.StatusOK, page)
}

// ImportPokemon handles POST /pokemons/import/:id
// @Summary Import a pokemon from PokeAPI
// @Description Fetch by upstream id and upsert locally under the same id; idempotent
// @Tags pokemons
// @Produce json
// @Param id path int true "Upstream pokemon ID"
// @Success 200 {object} models.PokemonResponse
// @Failure 502 {object} map[string]string "Upstream failure"
// @Router /pokemons/import/{id} [post]
func (h *PokemonHandler) ImportPokemon(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	pokemon, err := h.pokemonService.ImportByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUpstream):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to import pokemon",
			})
		}
		return
	}

	c.JSON(http.StatusOK, pokemon)
}

// parseID reads the :id path parameter. On failure it writes the 400
// response itself and returns ok=false.
func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid pokemon ID - must be a number",
		})
		return 0, false
	}
	return id, true
}
