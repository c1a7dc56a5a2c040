package handler

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/aadi-novice/movie-recommender/internal/logging"
	"github.com/aadi-novice/movie-recommender/internal/models"
	"github.com/aadi-novice/movie-recommender/internal/service"
)

type pageData struct {
	Titles   []string
	Title    string
	Selected *models.MovieCard
	Cards    []models.MovieCard
	Searched bool
	Error    string
}

var pageTmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"stars": func(n int) string { return strings.Repeat("⭐", n) },
}).Parse(pageHTML))

// PageHandler sirve la página de selección + tarjetas.
type PageHandler struct {
	svc *service.RecommendService
}

func NewPageHandler(s *service.RecommendService) *PageHandler { return &PageHandler{svc: s} }

// Index: ?title= elige la película (default la primera del catálogo); &recommend=1 pide las recomendaciones.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	data := pageData{Titles: h.svc.Titles()}

	data.Title = r.URL.Query().Get("title")
	if data.Title == "" && len(data.Titles) > 0 {
		data.Title = data.Titles[0]
	}

	status := http.StatusOK
	if data.Title != "" {
		card, err := h.svc.Selected(r.Context(), data.Title)
		if err != nil {
			data.Error = err.Error()
			status = http.StatusNotFound
		} else {
			data.Selected = &card
		}
	}

	if data.Selected != nil && r.URL.Query().Get("recommend") == "1" {
		cards, err := h.svc.Recommend(r.Context(), data.Title)
		if err != nil {
			data.Error = err.Error()
		}
		data.Cards = cards
		data.Searched = true
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTmpl.Execute(w, data); err != nil {
		logging.Error().Err(err).Msg("[page] error renderizando")
	}
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Movie Recommender</title>
<style>
body { font-family: sans-serif; margin: 2rem; background: #141414; color: #eee; }
.cards { display: flex; gap: 1rem; flex-wrap: wrap; }
.card { width: 200px; }
.card img, .selected img { width: 200px; border-radius: 6px; }
.selected { display: flex; gap: 2rem; margin-bottom: 2rem; }
.warn { color: #f0ad4e; font-size: .85rem; }
.error { color: #e74c3c; }
</style>
</head>
<body>
<h1>🎬 Movie Recommender</h1>
<form method="get" action="/">
  <select name="title">
  {{- range .Titles}}
    <option value="{{.}}"{{if eq . $.Title}} selected{{end}}>{{.}}</option>
  {{- end}}
  </select>
  <button type="submit">Select</button>
  <button type="submit" name="recommend" value="1">Recommend</button>
</form>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{with .Selected}}
<div class="selected">
  <img src="{{.PosterURL}}" alt="{{.Title}}">
  <div>
    <h2>{{.Title}} ({{.ReleaseYear}})</h2>
    <p><strong>Rating:</strong> {{stars .Stars}} ({{printf "%.1f" .Rating}})</p>
    <p>{{.Overview}}</p>
    {{if .Warning}}<p class="warn">{{.Warning}}</p>{{end}}
  </div>
</div>
{{end}}
{{if .Searched}}
<h2>Recommended for you</h2>
<div class="cards">
{{- range .Cards}}
  <div class="card">
    <img src="{{.PosterURL}}" alt="{{.Title}}">
    <h3>{{.Title}}</h3>
    <p>{{.ReleaseYear}} · <span class="rating">⭐ {{printf "%.1f" .Rating}}</span></p>
    <p>{{.Overview}}</p>
    {{if .Warning}}<p class="warn">{{.Warning}}</p>{{end}}
  </div>
{{- end}}
</div>
{{end}}
</body>
</html>
`
