// Package catalog tiene el catálogo de películas y la matriz de similitud
// precalculada, y el lookup de películas similares sobre ambos.
//
// Todo es de solo lectura después de New, así que un *Store se puede usar
// desde varias goroutines sin locks.
package catalog

import (
	"errors"
	"fmt"

	"github.com/aadi-novice/movie-recommender/internal/models"
)

var ErrNotFound = errors.New("catalog: película no encontrada")

// NotFoundError lleva el título buscado; errors.Is(err, ErrNotFound) es true.
type NotFoundError struct {
	Title string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("catalog: no hay película con título %q", e.Title)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

type Store struct {
	movies  []models.Movie
	byRow   []int
	byTitle map[string]int
	matrix  *Matrix
}

// New valida que los RowIndex sean una permutación de [0, N) y que la
// matriz sea N×N. Si hay títulos repetidos gana el primero.
func New(movies []models.Movie, m *Matrix) (*Store, error) {
	if m == nil {
		return nil, errors.New("catalog: matriz nil")
	}
	n := len(movies)
	if n == 0 {
		return nil, errors.New("catalog: catálogo vacío")
	}
	if m.Size() != n {
		return nil, fmt.Errorf("catalog: %d películas pero matriz de %dx%d", n, m.Size(), m.Size())
	}

	byRow := make([]int, n)
	for i := range byRow {
		byRow[i] = -1
	}
	byTitle := make(map[string]int, n)

	for i, mv := range movies {
		if mv.RowIndex < 0 || mv.RowIndex >= n {
			return nil, fmt.Errorf("catalog: movieId=%d tiene row_index %d fuera de [0,%d)", mv.MovieID, mv.RowIndex, n)
		}
		if prev := byRow[mv.RowIndex]; prev >= 0 {
			return nil, fmt.Errorf("catalog: row_index %d repetido (movieId=%d y movieId=%d)",
				mv.RowIndex, movies[prev].MovieID, mv.MovieID)
		}
		byRow[mv.RowIndex] = i
		if _, ok := byTitle[mv.Title]; !ok {
			byTitle[mv.Title] = i
		}
	}

	return &Store{
		movies:  append([]models.Movie(nil), movies...),
		byRow:   byRow,
		byTitle: byTitle,
		matrix:  m,
	}, nil
}

func (s *Store) Len() int { return len(s.movies) }

// Titles devuelve los títulos en el orden del catálogo.
func (s *Store) Titles() []string {
	out := make([]string, len(s.movies))
	for i, m := range s.movies {
		out[i] = m.Title
	}
	return out
}

func (s *Store) ByTitle(title string) (models.Movie, error) {
	i, ok := s.byTitle[title]
	if !ok {
		return models.Movie{}, &NotFoundError{Title: title}
	}
	return s.movies[i], nil
}

func (s *Store) ByRow(row int) (models.Movie, bool) {
	if row < 0 || row >= len(s.byRow) {
		return models.Movie{}, false
	}
	return s.movies[s.byRow[row]], true
}

// Row devuelve las similitudes de la fila indicada. No modificar.
func (s *Store) Row(row int) []float64 {
	return s.matrix.Row(row)
}

// Movies devuelve una copia del catálogo en su orden original.
func (s *Store) Movies() []models.Movie {
	return append([]models.Movie(nil), s.movies...)
}

func (s *Store) Matrix() *Matrix { return s.matrix }
