package artifact

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/aadi-novice/movie-recommender/internal/config"
)

func TestWriteCatalogRoundTrip(t *testing.T) {
	movies, err := ReadCatalog(strings.NewReader(catalogCSV))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteCatalog(&buf, movies); err != nil {
		t.Fatal(err)
	}
	got, err := ReadCatalog(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, movies) {
		t.Fatalf("round trip = %+v, want %+v", got, movies)
	}
}

func TestOpenFileSource(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		ArtifactSource: config.SourceFile,
		CatalogPath:    writeFile(t, dir, "movies.csv", []byte(catalogCSV)),
		MatrixPath:     writeFile(t, dir, "similarity.csv", []byte(matrixCSV)),
	}
	store, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if store.Len() != 4 {
		t.Fatalf("Len = %d", store.Len())
	}
	recs, err := store.Recommend("Avatar")
	if err != nil {
		t.Fatal(err)
	}
	if recs[0].Title != "Pirates of the Caribbean: At World's End" {
		t.Fatalf("first recommendation = %s", recs[0].Title)
	}
}

func TestOpenUnknownSource(t *testing.T) {
	if _, err := Open(context.Background(), &config.Config{ArtifactSource: "s3"}); err == nil {
		t.Fatal("expected error for unknown source")
	}
}
