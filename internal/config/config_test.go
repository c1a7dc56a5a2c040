package config

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aadi-novice/movie-recommender/internal/logging"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "k")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("TMDB_TIMEOUT", "")
	t.Setenv("ARTIFACT_SOURCE", "")
	t.Setenv("REDIS_ADDR", "")

	cfg := Load()
	if cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q", cfg.HTTPPort)
	}
	if cfg.TMDBTimeout != 10*time.Second {
		t.Errorf("TMDBTimeout = %v", cfg.TMDBTimeout)
	}
	if cfg.ArtifactSource != SourceFile {
		t.Errorf("ArtifactSource = %q", cfg.ArtifactSource)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr should default to empty, got %q", cfg.RedisAddr)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "k")
	t.Setenv("TMDB_TIMEOUT", "3s")
	t.Setenv("TMDB_RPS", "2.5")
	t.Setenv("METADATA_CACHE_TTL", "bogus")

	cfg := Load()
	if cfg.TMDBTimeout != 3*time.Second {
		t.Errorf("TMDBTimeout = %v", cfg.TMDBTimeout)
	}
	if cfg.TMDBRPS != 2.5 {
		t.Errorf("TMDBRPS = %v", cfg.TMDBRPS)
	}
	if cfg.MetadataCacheTTL != 24*time.Hour {
		t.Errorf("invalid duration should fall back, got %v", cfg.MetadataCacheTTL)
	}
}

func TestValidateMissingKey(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "")
	cfg := Load()
	if err := cfg.Validate(); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("Validate() = %v, want ErrMissingAPIKey", err)
	}
}

func TestValidateSource(t *testing.T) {
	cfg := &Config{TMDBAPIKey: "k", ArtifactSource: "s3"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown source")
	}
	cfg.ArtifactSource = SourceMongo
	if err := cfg.Validate(); err != nil {
		t.Fatalf("mongo source should be valid: %v", err)
	}
}

func TestLogLoadAfterInit(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "k")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("TMDB_TIMEOUT", "nope")

	// Load corre antes de configurar el logger: no debe escribir nada todavía
	var buf bytes.Buffer
	logging.Init(logging.Config{Level: "debug", Output: &buf})
	defer logging.Init(logging.Config{})

	cfg := Load()
	if buf.Len() != 0 {
		t.Fatalf("Load logged before LogLoad: %s", buf.String())
	}

	cfg.LogLoad()
	out := buf.String()
	if !strings.Contains(out, `"key":"HTTP_PORT"`) || !strings.Contains(out, `"default":"8080"`) {
		t.Errorf("missing default note for HTTP_PORT: %s", out)
	}
	if !strings.Contains(out, `"key":"TMDB_TIMEOUT"`) || !strings.Contains(out, `"level":"warn"`) {
		t.Errorf("missing warning for TMDB_TIMEOUT: %s", out)
	}
}
