package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aadi-novice/movie-recommender/internal/logging"
	"github.com/aadi-novice/movie-recommender/internal/models"
	"github.com/aadi-novice/movie-recommender/internal/service"

	"github.com/gorilla/websocket"
)

type RecommendHandler struct {
	svc *service.RecommendService
}

func NewRecommendHandler(s *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{svc: s}
}

// @Summary Recomendaciones para una película
// @Tags recommend
// @Produce json
// @Param title query string true "título exacto del catálogo"
// @Success 200 {array} models.MovieCard
// @Failure 404 {object} map[string]string
// @Router /api/recommendations [get]
func (h *RecommendHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	title, ok := requireTitle(w, r)
	if !ok {
		return
	}
	cards, err := h.svc.Recommend(r.Context(), title)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

// @Summary Vecinos con score (sin TMDB)
// @Tags recommend
// @Produce json
// @Param title query string true "título exacto del catálogo"
// @Param k query int false "cantidad de vecinos (default 5, máx 50)"
// @Success 200 {array} models.Neighbor
// @Failure 404 {object} map[string]string
// @Router /api/similar [get]
func (h *RecommendHandler) GetSimilar(w http.ResponseWriter, r *http.Request) {
	title, ok := requireTitle(w, r)
	if !ok {
		return
	}
	k, _ := strconv.Atoi(r.URL.Query().Get("k"))

	ns, err := h.svc.Similar(title, k)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ns)
}

// upgrader global
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const wsWriteTimeout = 10 * time.Second

// @Summary Recomendaciones en tiempo real (WebSocket)
// @Tags recommend
// @Produce json
// @Param title query string true "título exacto del catálogo"
// @Success 200 {object} map[string]interface{}
// @Router /ws/recommendations [get]
func (h *RecommendHandler) GetRecommendationsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade ya respondió con el error HTTP
		return
	}
	defer conn.Close()

	title := r.URL.Query().Get("title")
	send := func(msg map[string]any) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		return conn.WriteJSON(msg)
	}

	if err := send(map[string]any{"type": "start", "title": title}); err != nil {
		return
	}

	count := 0
	err = h.svc.Stream(r.Context(), title, func(i int, c models.MovieCard) error {
		count++
		return send(map[string]any{"type": "card", "index": i, "card": c})
	})
	if err != nil {
		logging.Debug().Err(err).Str("title", title).Msg("[ws] recomendaciones cortadas")
		_ = send(map[string]any{"type": "error", "error": err.Error()})
		return
	}

	_ = send(map[string]any{"type": "done", "count": count, "generatedAt": time.Now()})
}
