package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/aadi-novice/movie-recommender/internal/config"
	"github.com/aadi-novice/movie-recommender/internal/logging"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// InitRedis conecta si REDIS_ADDR está seteado. Sin Redis los helpers no hacen nada.
func InitRedis(ctx context.Context, cfg *config.Config) error {
	if cfg.RedisAddr == "" {
		logging.Info().Msg("[redis] REDIS_ADDR vacío, cache de metadata desactivado")
		return nil
	}

	c := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return fmt.Errorf("[redis] error conectando a %s: %w", cfg.RedisAddr, err)
	}

	client = c
	logging.Info().Str("addr", cfg.RedisAddr).Msg("[redis] OK")
	return nil
}

// SetClient reemplaza el cliente global (nil desactiva el cache).
func SetClient(c *redis.Client) {
	client = c
}

func Enabled() bool { return client != nil }

func Close() error {
	if client == nil {
		return nil
	}
	err := client.Close()
	client = nil
	return err
}

// GetJSON lee una key; si existe deserializa el JSON en dest.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}

	val, err := client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON serializa value a JSON y lo guarda con TTL.
func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if client == nil {
		return nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}
