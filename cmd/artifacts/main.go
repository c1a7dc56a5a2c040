// Comando artifacts: carga catálogo + matriz desde la fuente configurada
// (ARTIFACT_SOURCE) y los exporta en el formato que lee la API con
// ARTIFACT_SOURCE=file: catálogo CSV con row_index y matriz binaria.
//
//	go run ./cmd/artifacts -catalog data/movies.csv -matrix data/similarity.bin
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/aadi-novice/movie-recommender/internal/artifact"
	"github.com/aadi-novice/movie-recommender/internal/catalog"
	"github.com/aadi-novice/movie-recommender/internal/config"
	"github.com/aadi-novice/movie-recommender/internal/logging"
)

func main() {
	outCatalog := flag.String("catalog", "data/movies.csv", "archivo de salida del catálogo")
	outMatrix := flag.String("matrix", "data/similarity.bin", "archivo de salida de la matriz binaria")
	flag.Parse()

	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: "console"})
	cfg.LogLoad()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	store, err := artifact.Open(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Str("source", cfg.ArtifactSource).Msg("[artifacts] no se pudieron cargar los artefactos")
	}
	logging.Info().Int("movies", store.Len()).Dur("took", time.Since(start)).Msg("[artifacts] artefactos cargados")

	if err := writeCatalog(*outCatalog, store); err != nil {
		logging.Fatal().Err(err).Msg("[artifacts] error escribiendo catálogo")
	}
	if err := writeMatrix(*outMatrix, store.Matrix()); err != nil {
		logging.Fatal().Err(err).Msg("[artifacts] error escribiendo matriz")
	}
	logging.Info().Str("catalog", *outCatalog).Str("matrix", *outMatrix).Msg("[artifacts] listo")
}

func writeCatalog(path string, store *catalog.Store) error {
	return writeFile(path, func(f *os.File) error {
		return artifact.WriteCatalog(f, store.Movies())
	})
}

func writeMatrix(path string, m *catalog.Matrix) error {
	return writeFile(path, func(f *os.File) error {
		return artifact.EncodeMatrix(f, m)
	})
}

// writeFile escribe en un temporal y renombra, para no dejar archivos a medias.
func writeFile(path string, write func(*os.File) error) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
