package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"pokedex-api/internal/config"
	"pokedex-api/internal/handlers"
	"pokedex-api/internal/middleware"
)

// NewRouter wires the middleware chain and the versioned API routes
func NewRouter(
	cfg *config.Config,
	logger zerolog.Logger,
	pokemonHandler *handlers.PokemonHandler,
	typeHandler *handlers.TypeHandler,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// gin.New instead of gin.Default: zerolog replaces gin's own logger
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))

	// API VERSION GROUP
	// Routes will be:
	// /api/v1/pokemons
	// /api/v1/types
	v1 := router.Group("/api/v1")
	{
		// ======================================================================
		// POKEMON ROUTES
		// ======================================================================
		pokemons := v1.Group("/pokemons")
		{
			// GET /api/v1/pokemons - filtered/sorted/paginated listing
			pokemons.GET("", pokemonHandler.ListPokemons)

			// POST /api/v1/pokemons - create (upsert when id supplied)
			pokemons.POST("", pokemonHandler.CreatePokemon)

			// PATCH /api/v1/pokemons/:id - partial update
			pokemons.PATCH("/:id", pokemonHandler.UpdatePokemon)

			// DELETE /api/v1/pokemons/:id - delete with link cleanup
			pokemons.DELETE("/:id", pokemonHandler.DeletePokemon)

			// POST /api/v1/pokemons/import/:id - one-shot PokeAPI import
			pokemons.POST("/import/:id", pokemonHandler.ImportPokemon)
		}

		// ======================================================================
		// TYPE ROUTES
		// ======================================================================
		types := v1.Group("/types")
		{
			// GET /api/v1/types - list all types
			types.GET("", typeHandler.ListTypes)
		}
	}

	// ==========================================================================
	// HEALTH CHECK ROUTE
	// ==========================================================================
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "healthy",
		})
	})

	return router
}
