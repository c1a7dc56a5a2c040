package artifact

import (
	"context"
	"fmt"

	"github.com/aadi-novice/movie-recommender/internal/catalog"
	"github.com/aadi-novice/movie-recommender/internal/config"
	"github.com/aadi-novice/movie-recommender/internal/db"
	"github.com/aadi-novice/movie-recommender/internal/logging"
	"github.com/aadi-novice/movie-recommender/internal/repository"
)

// Open carga los artefactos desde la fuente configurada en ARTIFACT_SOURCE.
// Con mongo la conexión se cierra apenas se termina de leer.
func Open(ctx context.Context, cfg *config.Config) (*catalog.Store, error) {
	switch cfg.ArtifactSource {
	case config.SourceMongo:
		if err := db.InitMongo(ctx, cfg); err != nil {
			return nil, err
		}
		defer func() {
			if err := db.Close(context.Background()); err != nil {
				logging.Warn().Err(err).Msg("[mongo] error desconectando")
			}
		}()
		src := MongoSource{
			Movies: repository.NewMovieRepository(),
			Sims:   repository.NewSimilarityRepository(),
		}
		return src.Load(ctx)

	case config.SourceFile, "":
		src := FileSource{CatalogPath: cfg.CatalogPath, MatrixPath: cfg.MatrixPath}
		return src.Load(ctx)

	default:
		return nil, fmt.Errorf("artifact: fuente desconocida %q", cfg.ArtifactSource)
	}
}
