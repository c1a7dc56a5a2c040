// Package metrics define las métricas prometheus del servicio.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Recomendaciones pedidas, por resultado (ok, not_found, error)",
		},
		[]string{"result"},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_lookup_duration_seconds",
			Help:    "Duración del lookup de similitud (sin enriquecimiento)",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
	)

	TMDBRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmdb_requests_total",
			Help: "Llamadas a TMDB por resultado (success, failure, rejected)",
		},
		[]string{"result"},
	)

	TMDBDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tmdb_request_duration_seconds",
			Help:    "Duración de las llamadas HTTP a TMDB",
			Buckets: prometheus.DefBuckets,
		},
	)

	// 0 = closed, 1 = half-open, 2 = open
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Estado del circuit breaker (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	MetadataCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "metadata_cache_hits_total",
			Help: "Detalles de TMDB servidos desde Redis",
		},
	)

	MetadataCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "metadata_cache_misses_total",
			Help: "Detalles de TMDB que no estaban en Redis",
		},
	)

	PlaceholderCards = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "placeholder_cards_total",
			Help: "Tarjetas armadas con placeholders porque TMDB falló",
		},
	)
)
