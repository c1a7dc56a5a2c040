package catalog

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/aadi-novice/movie-recommender/internal/models"
)

func mustStore(t *testing.T, movies []models.Movie, rows [][]float64) *Store {
	t.Helper()
	m, err := MatrixFromRows(rows)
	if err != nil {
		t.Fatalf("MatrixFromRows: %v", err)
	}
	s, err := New(movies, m)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func titlesOf(recs []models.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Title
	}
	return out
}

func abcdStore(t *testing.T) *Store {
	movies := []models.Movie{
		{MovieID: 1, Title: "A", RowIndex: 0},
		{MovieID: 2, Title: "B", RowIndex: 1},
		{MovieID: 3, Title: "C", RowIndex: 2},
		{MovieID: 4, Title: "D", RowIndex: 3},
	}
	rows := [][]float64{
		{1.0, 0.9, 0.2, 0.5},
		{0.9, 1.0, 0.3, 0.4},
		{0.2, 0.3, 1.0, 0.1},
		{0.5, 0.4, 0.1, 1.0},
	}
	return mustStore(t, movies, rows)
}

// bigStore arma 10 películas con diagonal 1 y similitudes < 1 fuera de ella,
// con algunos empates a propósito.
func bigStore(t *testing.T) *Store {
	const n = 10
	movies := make([]models.Movie, n)
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		// row_index invertido respecto del orden del catálogo
		movies[i] = models.Movie{MovieID: 100 + i, Title: fmt.Sprintf("M%d", i), RowIndex: n - 1 - i}
	}
	for i := 0; i < n; i++ {
		rows[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			if i == j {
				rows[i][j] = 1
				continue
			}
			d := i - j
			if d < 0 {
				d = -d
			}
			// empates: |i-j| igual => mismo score
			rows[i][j] = 1 - float64(d)/float64(n)
		}
	}
	return mustStore(t, movies, rows)
}

func TestRecommendScenario(t *testing.T) {
	s := abcdStore(t)
	got, err := s.Recommend("A")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	want := []models.Recommendation{
		{MovieID: 2, Title: "B"},
		{MovieID: 4, Title: "D"},
		{MovieID: 3, Title: "C"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Recommend(A) = %+v, want %+v", got, want)
	}
}

func TestRecommendUnknownTitle(t *testing.T) {
	s := abcdStore(t)
	_, err := s.Recommend("Z")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Title != "Z" {
		t.Fatalf("expected *NotFoundError with title Z, got %#v", err)
	}
}

func TestRecommendExactlyFive(t *testing.T) {
	s := bigStore(t)
	for _, title := range s.Titles() {
		recs, err := s.Recommend(title)
		if err != nil {
			t.Fatalf("Recommend(%q): %v", title, err)
		}
		if len(recs) != DefaultK {
			t.Fatalf("Recommend(%q) returned %d results", title, len(recs))
		}
		self, _ := s.ByTitle(title)
		for _, r := range recs {
			if r.MovieID == self.MovieID {
				t.Fatalf("Recommend(%q) included itself", title)
			}
		}
	}
}

func TestSimilarOrdering(t *testing.T) {
	s := bigStore(t)
	for _, title := range s.Titles() {
		ns, err := s.Similar(title, MaxK)
		if err != nil {
			t.Fatal(err)
		}
		if len(ns) != s.Len()-1 {
			t.Fatalf("Similar(%q, MaxK) = %d results, want %d", title, len(ns), s.Len()-1)
		}
		for i := 1; i < len(ns); i++ {
			prev, cur := ns[i-1], ns[i]
			if cur.Sim > prev.Sim {
				t.Fatalf("%q: not descending at %d: %v > %v", title, i, cur.Sim, prev.Sim)
			}
			if cur.Sim == prev.Sim && cur.RowIndex < prev.RowIndex {
				t.Fatalf("%q: tie not broken by row index at %d: %d before %d", title, i, prev.RowIndex, cur.RowIndex)
			}
		}
	}
}

func TestRecommendDeterministic(t *testing.T) {
	s := bigStore(t)
	first, err := s.Recommend("M4")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		again, _ := s.Recommend("M4")
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %+v vs %+v", i, again, first)
		}
	}
}

func TestRecommendRoundTrip(t *testing.T) {
	s := bigStore(t)
	recs, err := s.Recommend("M2")
	if err != nil {
		t.Fatal(err)
	}
	byID := map[int]string{}
	for row := 0; row < s.Len(); row++ {
		m, _ := s.ByRow(row)
		byID[m.MovieID] = m.Title
	}
	for _, r := range recs {
		if byID[r.MovieID] != r.Title {
			t.Fatalf("movieId %d maps to %q, shown as %q", r.MovieID, byID[r.MovieID], r.Title)
		}
	}
}

func TestRecommendSmallCatalog(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{"one", 1},
		{"three", 3},
		{"six", 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			movies := make([]models.Movie, tt.n)
			rows := make([][]float64, tt.n)
			for i := range movies {
				movies[i] = models.Movie{MovieID: i + 1, Title: fmt.Sprintf("T%d", i), RowIndex: i}
				rows[i] = make([]float64, tt.n)
				for j := range rows[i] {
					rows[i][j] = 0.5
				}
				rows[i][i] = 1
			}
			s := mustStore(t, movies, rows)
			recs, err := s.Recommend("T0")
			if err != nil {
				t.Fatalf("Recommend: %v", err)
			}
			if len(recs) != tt.n-1 {
				t.Fatalf("got %d results, want %d", len(recs), tt.n-1)
			}
		})
	}
}

func TestRecommendPositionalSelfExclusion(t *testing.T) {
	movies := []models.Movie{
		{MovieID: 10, Title: "X", RowIndex: 0},
		{MovieID: 20, Title: "Y", RowIndex: 1},
		{MovieID: 30, Title: "W", RowIndex: 2},
	}
	// Y empata con X en el máximo y X tiene índice menor: se descarta X
	rows := [][]float64{
		{1, 1, 0.2},
		{1, 1, 0.3},
		{0.2, 0.3, 1},
	}
	s := mustStore(t, movies, rows)
	recs, err := s.Recommend("Y")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := titlesOf(recs), []string{"Y", "W"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Recommend(Y) = %v, want %v", got, want)
	}
}

func TestRecommendKBounds(t *testing.T) {
	s := bigStore(t)
	recs, err := s.RecommendK("M0", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != DefaultK {
		t.Fatalf("k=0 should use DefaultK, got %d", len(recs))
	}
	recs, _ = s.RecommendK("M0", 2)
	if len(recs) != 2 {
		t.Fatalf("k=2 got %d", len(recs))
	}
	recs, _ = s.RecommendK("M0", 1000)
	if len(recs) != s.Len()-1 {
		t.Fatalf("k>N got %d", len(recs))
	}
}

func TestDuplicateTitleFirstWins(t *testing.T) {
	movies := []models.Movie{
		{MovieID: 1, Title: "Dup", RowIndex: 1},
		{MovieID: 2, Title: "Dup", RowIndex: 0},
		{MovieID: 3, Title: "Other", RowIndex: 2},
	}
	rows := [][]float64{
		{1, 0.1, 0.9},
		{0.1, 1, 0.2},
		{0.9, 0.2, 1},
	}
	s := mustStore(t, movies, rows)
	m, err := s.ByTitle("Dup")
	if err != nil {
		t.Fatal(err)
	}
	if m.MovieID != 1 {
		t.Fatalf("ByTitle(Dup) = %d, want first catalog entry 1", m.MovieID)
	}
	recs, _ := s.Recommend("Dup")
	if recs[0].Title != "Other" {
		t.Fatalf("expected Other first, got %+v", recs)
	}
}

func TestNewValidation(t *testing.T) {
	m2, _ := NewMatrix(2, []float64{1, 0, 0, 1})
	tests := []struct {
		name   string
		movies []models.Movie
		m      *Matrix
	}{
		{"nil matrix", []models.Movie{{Title: "a"}}, nil},
		{"empty", nil, m2},
		{"size mismatch", []models.Movie{{Title: "a"}}, m2},
		{"out of range", []models.Movie{{Title: "a", RowIndex: 0}, {Title: "b", RowIndex: 2}}, m2},
		{"duplicate row", []models.Movie{{Title: "a", RowIndex: 1}, {Title: "b", RowIndex: 1}}, m2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.movies, tt.m); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNewMatrixValidation(t *testing.T) {
	if _, err := NewMatrix(2, []float64{1, 2, 3}); err == nil {
		t.Fatal("expected length error")
	}
	if _, err := NewMatrix(1, []float64{math.NaN()}); err == nil {
		t.Fatal("expected NaN error")
	}
	if _, err := MatrixFromRows([][]float64{{1, 0}, {0}}); err == nil {
		t.Fatal("expected ragged rows error")
	}
	m, err := NewMatrix(2, []float64{1, 0.5, 0.25, 1})
	if err != nil {
		t.Fatal(err)
	}
	if m.At(1, 0) != 0.25 || len(m.Row(1)) != 2 {
		t.Fatalf("unexpected layout: %v", m.Row(1))
	}
}

func TestDefaultStore(t *testing.T) {
	defer Reset()
	if Default() != nil {
		t.Fatal("expected nil before Init")
	}
	s := abcdStore(t)
	Init(s)
	if Default() != s {
		t.Fatal("Default() did not return initialized store")
	}
	Reset()
	if Default() != nil {
		t.Fatal("expected nil after Reset")
	}
}

func TestSimilarKeepsFullPrecision(t *testing.T) {
	movies := []models.Movie{
		{MovieID: 1, Title: "A", RowIndex: 0},
		{MovieID: 2, Title: "B", RowIndex: 1},
		{MovieID: 3, Title: "C", RowIndex: 2},
	}
	// B y C difieren en 1e-9: no deben empatar
	rows := [][]float64{
		{1, 0.300000001, 0.300000002},
		{0.300000001, 1, 0.5},
		{0.300000002, 0.5, 1},
	}
	s := mustStore(t, movies, rows)
	ns, err := s.Similar("A", DefaultK)
	if err != nil {
		t.Fatal(err)
	}
	if len(ns) != 2 || ns[0].Title != "C" || ns[1].Title != "B" {
		t.Fatalf("Similar(A) = %+v, want [C B]", ns)
	}
	if ns[0].Sim != 0.300000002 || ns[1].Sim != 0.300000001 {
		t.Fatalf("scores changed: %v %v", ns[0].Sim, ns[1].Sim)
	}
}
