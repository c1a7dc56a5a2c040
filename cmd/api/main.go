package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/aadi-novice/movie-recommender/docs" // swagger docs

	"github.com/aadi-novice/movie-recommender/internal/artifact"
	"github.com/aadi-novice/movie-recommender/internal/cache"
	"github.com/aadi-novice/movie-recommender/internal/catalog"
	"github.com/aadi-novice/movie-recommender/internal/config"
	"github.com/aadi-novice/movie-recommender/internal/handler"
	"github.com/aadi-novice/movie-recommender/internal/logging"
	"github.com/aadi-novice/movie-recommender/internal/service"
	"github.com/aadi-novice/movie-recommender/internal/tmdb"
)

// @title Movie Recommender API
// @version 1.0
// @description Recomendaciones item-item sobre una matriz de similitud precalculada, con detalles de TMDB.
// @BasePath /
func main() {
	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	cfg.LogLoad()

	if err := cfg.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("configuración inválida")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// catálogo + matriz: se cargan una sola vez antes de escuchar
	start := time.Now()
	store, err := artifact.Open(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Str("source", cfg.ArtifactSource).Msg("no se pudieron cargar los artefactos")
	}
	catalog.Init(store)
	logging.Info().Int("movies", store.Len()).Dur("took", time.Since(start)).Msg("artefactos cargados")

	// Redis es opcional: si falla se sigue sin cache
	if err := cache.InitRedis(ctx, cfg); err != nil {
		logging.Warn().Err(err).Msg("cache de metadata desactivado")
	}

	tmdbClient := tmdb.New(tmdb.Options{
		APIKey:    cfg.TMDBAPIKey,
		BaseURL:   cfg.TMDBBaseURL,
		ImageBase: cfg.TMDBImageBase,
		Timeout:   cfg.TMDBTimeout,
		RPS:       cfg.TMDBRPS,
	})

	metaSvc := service.NewMetadataService(tmdbClient, cfg.MetadataCacheTTL)
	recSvc := service.NewRecommendService(catalog.Default(), metaSvc)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler.NewRouter(recSvc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("port", cfg.HTTPPort).Msg("HTTP escuchando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("error del servidor HTTP")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("apagando...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("shutdown HTTP")
	}
	if err := cache.Close(); err != nil {
		logging.Warn().Err(err).Msg("cerrando redis")
	}
	catalog.Reset()
}
