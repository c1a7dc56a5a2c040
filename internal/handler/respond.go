package handler

import (
	"errors"
	"net/http"

	"github.com/aadi-novice/movie-recommender/internal/catalog"

	"github.com/goccy/go-json"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError: título desconocido => 404, lo demás 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, catalog.ErrNotFound) {
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func requireTitle(w http.ResponseWriter, r *http.Request) (string, bool) {
	title := r.URL.Query().Get("title")
	if title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title es requerido"})
		return "", false
	}
	return title, true
}
