package repository

import (
	"context"

	"github.com/aadi-novice/movie-recommender/internal/db"
	"github.com/aadi-novice/movie-recommender/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SimilarityRepository struct {
	col *mongo.Collection
}

func NewSimilarityRepository() *SimilarityRepository {
	return &SimilarityRepository{col: db.DB().Collection("similarities")}
}

// AllRows devuelve la matriz completa, una fila por documento, ordenada por iIdx.
func (r *SimilarityRepository) AllRows(ctx context.Context) ([]models.SimilarityRow, error) {
	opts := options.Find().SetSort(bson.D{{Key: "iIdx", Value: 1}})

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.SimilarityRow
	for cur.Next(ctx) {
		var row models.SimilarityRow
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, cur.Err()
}
