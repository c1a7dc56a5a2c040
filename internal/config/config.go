package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/aadi-novice/movie-recommender/internal/logging"

	"github.com/joho/godotenv"
)

// ErrMissingAPIKey: sin credencial de TMDB el servicio no arranca.
var ErrMissingAPIKey = errors.New("TMDB_API_KEY no encontrado: agregarlo al archivo .env o al entorno")

const (
	SourceFile  = "file"
	SourceMongo = "mongo"
)

type Config struct {
	HTTPPort string

	TMDBAPIKey    string
	TMDBBaseURL   string
	TMDBImageBase string
	TMDBTimeout   time.Duration
	TMDBRPS       float64

	ArtifactSource string
	CatalogPath    string
	MatrixPath     string

	MongoURI string
	MongoDB  string

	// RedisAddr vacío desactiva el cache de metadata
	RedisAddr        string
	RedisPass        string
	MetadataCacheTTL time.Duration

	LogLevel  string
	LogFormat string

	// notas de Load; se loguean con LogLoad una vez configurado el logger
	notes []loadNote
}

type loadNote struct {
	warn  bool
	key   string
	value string
	def   string
}

func Load() *Config {
	_ = godotenv.Load()

	l := &loader{}
	cfg := &Config{
		HTTPPort: l.getEnv("HTTP_PORT", "8080"),

		TMDBAPIKey:    os.Getenv("TMDB_API_KEY"),
		TMDBBaseURL:   l.getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		TMDBImageBase: l.getEnv("TMDB_IMAGE_BASE", "https://image.tmdb.org/t/p/w500"),
		TMDBTimeout:   l.getDuration("TMDB_TIMEOUT", 10*time.Second),
		TMDBRPS:       l.getFloat("TMDB_RPS", 20),

		ArtifactSource: l.getEnv("ARTIFACT_SOURCE", SourceFile),
		CatalogPath:    l.getEnv("CATALOG_PATH", "data/movies.csv"),
		MatrixPath:     l.getEnv("MATRIX_PATH", "data/similarity.bin"),

		MongoURI: l.getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  l.getEnv("MONGO_DB", "movies"),

		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPass:        os.Getenv("REDIS_PASSWORD"),
		MetadataCacheTTL: l.getDuration("METADATA_CACHE_TTL", 24*time.Hour),

		LogLevel:  l.getEnv("LOG_LEVEL", "info"),
		LogFormat: l.getEnv("LOG_FORMAT", "json"),
	}
	cfg.notes = l.notes
	return cfg
}

// LogLoad loguea las variables que tomaron su valor por defecto o que no se
// pudieron parsear. Llamar después de logging.Init.
func (c *Config) LogLoad() {
	for _, n := range c.notes {
		if n.warn {
			logging.Warn().Str("key", n.key).Str("value", n.value).Str("default", n.def).
				Msg("[config] valor inválido, usando valor por defecto")
			continue
		}
		logging.Debug().Str("key", n.key).Str("default", n.def).
			Msg("[config] variable no seteada, usando valor por defecto")
	}
}

// Validate revisa lo mínimo para arrancar.
func (c *Config) Validate() error {
	if c.TMDBAPIKey == "" {
		return ErrMissingAPIKey
	}
	switch c.ArtifactSource {
	case SourceFile, SourceMongo:
	default:
		return errors.New("ARTIFACT_SOURCE debe ser \"file\" o \"mongo\"")
	}
	return nil
}

type loader struct {
	notes []loadNote
}

func (l *loader) getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		l.notes = append(l.notes, loadNote{key: key, def: def})
		return def
	}
	return v
}

func (l *loader) getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		l.notes = append(l.notes, loadNote{warn: true, key: key, value: v, def: def.String()})
		return def
	}
	return d
}

func (l *loader) getFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		l.notes = append(l.notes, loadNote{warn: true, key: key, value: v, def: strconv.FormatFloat(def, 'g', -1, 64)})
		return def
	}
	return f
}
