package models

// Recommendation es un resultado del lookup: título + identificador, en orden de similitud.
type Recommendation struct {
	MovieID int    `json:"movieId"`
	Title   string `json:"title"`
}
