package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"pokedex-api/internal/client"
	"pokedex-api/internal/config"
	"pokedex-api/internal/database"
	"pokedex-api/internal/handlers"
	"pokedex-api/internal/repository"
	"pokedex-api/internal/routes"
	"pokedex-api/internal/services"
)

func main() {
	// STEP 1: Load Configuration
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := newLogger(cfg)

	// STEP 2: Initialize Database Connection Pool
	dbPool, err := database.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer dbPool.Close()

	// STEP 3: Initialize Application Layers (Dependency Injection)
	// Repositories (data access layer)
	pokemonRepo := repository.NewPokemonRepository(dbPool)
	typeRepo := repository.NewTypeRepository(dbPool)

	// External provider client
	pokeapi := client.NewPokeAPIClient(cfg.PokeAPIBaseURL)

	// Services (business logic layer)
	pokemonService := services.NewPokemonService(pokemonRepo, pokeapi, logger)
	typeService := services.NewTypeService(typeRepo)

	// Handlers (HTTP layer)
	pokemonHandler := handlers.NewPokemonHandler(pokemonService)
	typeHandler := handlers.NewTypeHandler(typeService)

	// STEP 4: Setup Router and Routes
	router := routes.NewRouter(cfg, logger, pokemonHandler, typeHandler)

	// STEP 5: Create HTTP Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
		// Timeouts prevent slow clients from holding connections indefinitely
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// STEP 6: Graceful Shutdown
	// SIGINT = Ctrl+C, SIGTERM = kill command or container orchestrator
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	// Give in-flight requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited gracefully")
}

// newLogger builds the process logger: console output in dev, JSON
// elsewhere, level from config (invalid values fall back to info)
func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out = os.Stdout
	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	if cfg.IsDevelopment() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: out})
	}
	return logger
}
