// internal/repository/movie_repo.go
package repository

import (
	"context"

	"github.com/aadi-novice/movie-recommender/internal/db"
	"github.com/aadi-novice/movie-recommender/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MovieRepository struct {
	col *mongo.Collection
}

func NewMovieRepository() *MovieRepository {
	return &MovieRepository{col: db.DB().Collection("movies")}
}

// ListCatalog devuelve todas las películas con iIdx, ordenadas por iIdx.
func (r *MovieRepository) ListCatalog(ctx context.Context) ([]models.Movie, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "iIdx", Value: 1}}).
		SetProjection(bson.M{"_id": 0, "movieId": 1, "title": 1, "iIdx": 1})

	cur, err := r.col.Find(ctx, bson.M{"iIdx": bson.M{"$exists": true}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Movie
	for cur.Next(ctx) {
		var m models.Movie
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, cur.Err()
}
