package handler

import (
	"net/http"

	"github.com/aadi-novice/movie-recommender/internal/service"
)

type MovieHandler struct {
	svc *service.RecommendService
}

func NewMovieHandler(s *service.RecommendService) *MovieHandler { return &MovieHandler{svc: s} }

// @Summary Títulos seleccionables
// @Tags movies
// @Produce json
// @Success 200 {array} string
// @Router /api/movies [get]
func (h *MovieHandler) Titles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Titles())
}

// @Summary Tarjeta de la película seleccionada (overview completo)
// @Tags movies
// @Produce json
// @Param title query string true "título exacto del catálogo"
// @Success 200 {object} models.MovieCard
// @Failure 404 {object} map[string]string
// @Router /api/movies/selected [get]
func (h *MovieHandler) Selected(w http.ResponseWriter, r *http.Request) {
	title, ok := requireTitle(w, r)
	if !ok {
		return
	}
	card, err := h.svc.Selected(r.Context(), title)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}
