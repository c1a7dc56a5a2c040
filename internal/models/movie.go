package models

// Movie es una fila del catálogo. RowIndex es la posición en la matriz de similitud.
type Movie struct {
	MovieID  int    `json:"movieId" bson:"movieId"`
	Title    string `json:"title" bson:"title"`
	RowIndex int    `json:"rowIndex" bson:"iIdx"`
}

// MovieDetails es lo que usamos de la respuesta de TMDB.
type MovieDetails struct {
	PosterURL   string  `json:"posterUrl"`
	ReleaseYear string  `json:"releaseYear"`
	Rating      float64 `json:"rating"`
	Overview    string  `json:"overview"`
}

// MovieCard es una película lista para mostrar (catálogo + TMDB).
type MovieCard struct {
	MovieID     int     `json:"movieId"`
	Title       string  `json:"title"`
	PosterURL   string  `json:"posterUrl"`
	ReleaseYear string  `json:"releaseYear"`
	Rating      float64 `json:"rating"`
	Stars       int     `json:"stars"`
	Overview    string  `json:"overview"`
	// Warning no vacío => se usaron placeholders porque TMDB falló
	Warning string `json:"warning,omitempty"`
}
