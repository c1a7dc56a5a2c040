package catalog

import (
	"sort"

	"github.com/aadi-novice/movie-recommender/internal/models"
)

const (
	DefaultK = 5
	MaxK     = 50
)

type scored struct {
	idx   int
	score float64
}

// Recommend devuelve las DefaultK películas más similares a title
// (menos si el catálogo tiene N <= DefaultK+1).
func (s *Store) Recommend(title string) ([]models.Recommendation, error) {
	return s.RecommendK(title, DefaultK)
}

func (s *Store) RecommendK(title string, k int) ([]models.Recommendation, error) {
	neighbors, err := s.Similar(title, k)
	if err != nil {
		return nil, err
	}
	out := make([]models.Recommendation, len(neighbors))
	for i, n := range neighbors {
		out[i] = models.Recommendation{MovieID: n.MovieID, Title: n.Title}
	}
	return out, nil
}

// Similar ordena la fila de title por score descendente (sort estable: los
// empates quedan por índice de columna ascendente), descarta el PRIMER
// resultado y devuelve los k siguientes con su score. k <= 0 usa DefaultK.
//
// El descarte es por posición, no por identidad: se asume que la propia
// película queda primera. Si otra columna anterior tiene el mismo score
// máximo, es esa la que se descarta y la propia película aparece en el
// resultado. Se mantiene así para no cambiar las recomendaciones.
func (s *Store) Similar(title string, k int) ([]models.Neighbor, error) {
	movie, err := s.ByTitle(title)
	if err != nil {
		return nil, err
	}
	if k <= 0 {
		k = DefaultK
	}

	ranked := rank(s.matrix.Row(movie.RowIndex))
	if len(ranked) > 0 {
		ranked = ranked[1:]
	}
	if k > len(ranked) {
		k = len(ranked)
	}

	out := make([]models.Neighbor, 0, k)
	for _, p := range ranked[:k] {
		mv := s.movies[s.byRow[p.idx]]
		out = append(out, models.Neighbor{
			MovieID:  mv.MovieID,
			Title:    mv.Title,
			RowIndex: p.idx,
			Sim:      p.score,
		})
	}
	return out, nil
}

func rank(row []float64) []scored {
	pairs := make([]scored, len(row))
	for i, v := range row {
		pairs[i] = scored{idx: i, score: v}
	}
	sort.SliceStable(pairs, func(a, b int) bool { return pairs[a].score > pairs[b].score })
	return pairs
}
