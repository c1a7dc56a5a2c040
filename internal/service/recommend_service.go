package service

import (
	"context"
	"errors"
	"time"

	"github.com/aadi-novice/movie-recommender/internal/catalog"
	"github.com/aadi-novice/movie-recommender/internal/logging"
	"github.com/aadi-novice/movie-recommender/internal/metrics"
	"github.com/aadi-novice/movie-recommender/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type RecommendService struct {
	store *catalog.Store
	meta  *MetadataService
	log   zerolog.Logger
}

func NewRecommendService(store *catalog.Store, meta *MetadataService) *RecommendService {
	return &RecommendService{
		store: store,
		meta:  meta,
		log:   logging.Component("recommend"),
	}
}

// Titles es la lista seleccionable, en orden del catálogo.
func (s *RecommendService) Titles() []string {
	return s.store.Titles()
}

// Similar es el lookup crudo con scores, sin TMDB. k se limita a MaxK.
func (s *RecommendService) Similar(title string, k int) ([]models.Neighbor, error) {
	if k > catalog.MaxK {
		k = catalog.MaxK
	}
	start := time.Now()
	ns, err := s.store.Similar(title, k)
	s.observe(title, start, err)
	return ns, err
}

// Selected arma la tarjeta de la película elegida, con overview completo.
func (s *RecommendService) Selected(ctx context.Context, title string) (models.MovieCard, error) {
	m, err := s.store.ByTitle(title)
	if err != nil {
		return models.MovieCard{}, err
	}
	return s.meta.Card(ctx, m.MovieID, m.Title, false), nil
}

// Recommend devuelve las tarjetas de las películas recomendadas, en orden de similitud.
func (s *RecommendService) Recommend(ctx context.Context, title string) ([]models.MovieCard, error) {
	cards := make([]models.MovieCard, 0, catalog.DefaultK)
	err := s.Stream(ctx, title, func(_ int, c models.MovieCard) error {
		cards = append(cards, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// Stream hace el lookup y enriquece cada resultado en paralelo, pero llama a
// emit en el orden del lookup. Si emit falla se corta y se devuelve ese error.
func (s *RecommendService) Stream(ctx context.Context, title string, emit func(i int, c models.MovieCard) error) error {
	start := time.Now()
	recs, err := s.store.Recommend(title)
	s.observe(title, start, err)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ready := make([]chan models.MovieCard, len(recs))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range recs {
		i, r := i, r
		ready[i] = make(chan models.MovieCard, 1)
		g.Go(func() error {
			ready[i] <- s.meta.Card(gctx, r.MovieID, r.Title, true)
			return nil
		})
	}

	for i := range ready {
		select {
		case c := <-ready[i]:
			if err := emit(i, c); err != nil {
				cancel()
				_ = g.Wait()
				return err
			}
		case <-ctx.Done():
			_ = g.Wait()
			return ctx.Err()
		}
	}
	return g.Wait()
}

func (s *RecommendService) observe(title string, start time.Time, err error) {
	metrics.RecommendDuration.Observe(time.Since(start).Seconds())
	switch {
	case err == nil:
		metrics.RecommendRequests.WithLabelValues("ok").Inc()
	case errors.Is(err, catalog.ErrNotFound):
		// la lista sale del catálogo: si pasa es un problema de datos o del cliente
		metrics.RecommendRequests.WithLabelValues("not_found").Inc()
		s.log.Warn().Str("title", title).Msg("título no está en el catálogo")
	default:
		metrics.RecommendRequests.WithLabelValues("error").Inc()
	}
}
