package handler

import (
	"net/http"

	"github.com/aadi-novice/movie-recommender/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// NewRouter arma todas las rutas sobre el servicio de recomendación.
func NewRouter(svc *service.RecommendService) http.Handler {
	movieH := NewMovieHandler(svc)
	recH := NewRecommendHandler(svc)
	pageH := NewPageHandler(svc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", pageH.Index)
	r.Get("/health", Health)
	r.Handle("/metrics", promhttp.Handler())

	// Swagger UI; el documento lo registra el paquete docs
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DocExpansion("list"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Get("/movies", movieH.Titles)
		r.Get("/movies/selected", movieH.Selected)
		r.Get("/recommendations", recH.GetRecommendations)
		r.Get("/similar", recH.GetSimilar)
	})

	// WebSocket
	r.Get("/ws/recommendations", recH.GetRecommendationsWS)

	return r
}
