package artifact

import (
	"context"
	"fmt"

	"github.com/aadi-novice/movie-recommender/internal/catalog"
	"github.com/aadi-novice/movie-recommender/internal/models"
)

// MovieLister lo implementa repository.MovieRepository.
type MovieLister interface {
	ListCatalog(ctx context.Context) ([]models.Movie, error)
}

// RowLister lo implementa repository.SimilarityRepository.
type RowLister interface {
	AllRows(ctx context.Context) ([]models.SimilarityRow, error)
}

// MongoSource lee las colecciones movies (movieId, title, iIdx) y similarities (iIdx, scores).
type MongoSource struct {
	Movies MovieLister
	Sims   RowLister
}

func (s MongoSource) Load(ctx context.Context) (*catalog.Store, error) {
	movies, err := s.Movies.ListCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("artifact: leer movies: %w", err)
	}
	docs, err := s.Sims.AllRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("artifact: leer similarities: %w", err)
	}

	n := len(docs)
	rows := make([][]float64, n)
	for _, d := range docs {
		if d.IIdx < 0 || d.IIdx >= n {
			return nil, fmt.Errorf("artifact: similarities iIdx %d fuera de [0,%d)", d.IIdx, n)
		}
		if rows[d.IIdx] != nil {
			return nil, fmt.Errorf("artifact: similarities iIdx %d repetido", d.IIdx)
		}
		rows[d.IIdx] = d.Scores
	}

	m, err := catalog.MatrixFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("artifact: similarities: %w", err)
	}
	store, err := catalog.New(movies, m)
	if err != nil {
		return nil, fmt.Errorf("artifact: mongo: %w", err)
	}
	return store, nil
}
