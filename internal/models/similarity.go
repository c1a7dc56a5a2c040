package models

// Neighbor es una película candidata con su similitud respecto a la consultada.
type Neighbor struct {
	MovieID  int     `json:"movieId"`
	Title    string  `json:"title"`
	RowIndex int     `json:"rowIndex"`
	Sim      float64 `json:"sim"`
}

// SimilarityRow es la fila iIdx de la matriz tal como está en Mongo.
type SimilarityRow struct {
	IIdx   int       `json:"iIdx" bson:"iIdx"`
	Scores []float64 `json:"scores" bson:"scores"`
}
