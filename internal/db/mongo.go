package db

import (
	"context"
	"fmt"
	"time"

	"github.com/aadi-novice/movie-recommender/internal/config"
	"github.com/aadi-novice/movie-recommender/internal/logging"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var mongoClient *mongo.Client
var mongoDB *mongo.Database

// InitMongo conecta y hace ping. Solo se usa con ARTIFACT_SOURCE=mongo.
func InitMongo(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("[mongo] error conectando: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("[mongo] ping falló: %w", err)
	}

	mongoClient = client
	mongoDB = client.Database(cfg.MongoDB)
	logging.Info().Str("db", cfg.MongoDB).Msg("[mongo] conectado")
	return nil
}

func DB() *mongo.Database {
	return mongoDB
}

// Close desconecta; los artefactos ya están en memoria después de cargar.
func Close(ctx context.Context) error {
	if mongoClient == nil {
		return nil
	}
	err := mongoClient.Disconnect(ctx)
	mongoClient, mongoDB = nil, nil
	return err
}
