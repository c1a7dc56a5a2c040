package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/aadi-novice/movie-recommender/internal/cache"
	"github.com/aadi-novice/movie-recommender/internal/logging"
	"github.com/aadi-novice/movie-recommender/internal/metrics"
	"github.com/aadi-novice/movie-recommender/internal/models"

	"github.com/rs/zerolog"
)

// Valores de reemplazo cuando TMDB no responde o no trae el campo.
const (
	PosterNoImage     = "https://via.placeholder.com/500x750?text=No+Poster+Available"
	PosterUnavailable = "https://via.placeholder.com/500x750?text=Poster+Not+Available"
	UnknownYear       = "Unknown"
	NoOverview        = "No description available"

	OverviewLimit = 200
)

// DetailsFetcher lo implementa tmdb.Client.
type DetailsFetcher interface {
	Fetch(ctx context.Context, movieID int) (*models.MovieDetails, error)
}

type MetadataService struct {
	fetcher DetailsFetcher
	ttl     time.Duration
	log     zerolog.Logger
}

func NewMetadataService(f DetailsFetcher, ttl time.Duration) *MetadataService {
	return &MetadataService{
		fetcher: f,
		ttl:     ttl,
		log:     logging.Component("metadata"),
	}
}

func detailsKey(movieID int) string {
	return fmt.Sprintf("tmdb:movie:%d", movieID)
}

// Details: primero Redis, si no TMDB. Solo se cachean respuestas exitosas.
func (s *MetadataService) Details(ctx context.Context, movieID int) (models.MovieDetails, error) {
	var d models.MovieDetails
	if cache.Enabled() {
		ok, err := cache.GetJSON(ctx, detailsKey(movieID), &d)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Int("movieId", movieID).Msg("error leyendo cache, se consulta TMDB")
		case ok:
			metrics.MetadataCacheHits.Inc()
			return d, nil
		default:
			metrics.MetadataCacheMisses.Inc()
		}
	}

	fetched, err := s.fetcher.Fetch(ctx, movieID)
	if err != nil {
		return models.MovieDetails{}, err
	}

	if err := cache.SetJSON(ctx, detailsKey(movieID), fetched, s.ttl); err != nil {
		s.log.Warn().Err(err).Int("movieId", movieID).Msg("error guardando en cache")
	}
	return *fetched, nil
}

// Card arma la tarjeta de una película. Nunca falla: si TMDB falla se usan
// placeholders y se completa Warning.
func (s *MetadataService) Card(ctx context.Context, movieID int, title string, truncate bool) models.MovieCard {
	card := models.MovieCard{MovieID: movieID, Title: title}

	d, err := s.Details(ctx, movieID)
	if err != nil {
		s.log.Warn().Err(err).Int("movieId", movieID).Str("title", title).Msg("no se pudieron traer detalles de TMDB, usando placeholders")
		metrics.PlaceholderCards.Inc()

		card.PosterURL = PosterUnavailable
		card.ReleaseYear = UnknownYear
		card.Rating = 0
		card.Overview = NoOverview
		card.Warning = fmt.Sprintf("Couldn't fetch details: %v", err)
		return card
	}

	card.PosterURL = d.PosterURL
	if card.PosterURL == "" {
		card.PosterURL = PosterNoImage
	}
	card.ReleaseYear = d.ReleaseYear
	if card.ReleaseYear == "" {
		card.ReleaseYear = UnknownYear
	}
	card.Rating = d.Rating
	card.Stars = StarRating(d.Rating)
	card.Overview = d.Overview
	if card.Overview == "" {
		card.Overview = NoOverview
	}
	if truncate {
		card.Overview = TruncateOverview(card.Overview, OverviewLimit)
	}
	return card
}

// TruncateOverview corta en limit caracteres (runas) y agrega "..." si cortó.
func TruncateOverview(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}

// StarRating: rating 0-10 a estrellas 0-5, redondeo half-to-even.
func StarRating(rating float64) int {
	if rating <= 0 {
		return 0
	}
	return int(math.RoundToEven(rating / 2))
}
