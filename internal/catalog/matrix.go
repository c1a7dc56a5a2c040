package catalog

import (
	"fmt"
	"math"
)

// Matrix es la matriz de similitud N×N, densa y row-major. No se modifica después de construida.
type Matrix struct {
	n    int
	data []float64
}

// NewMatrix toma ownership de data (n*n valores, fila por fila).
func NewMatrix(n int, data []float64) (*Matrix, error) {
	if n < 0 {
		return nil, fmt.Errorf("catalog: tamaño de matriz negativo %d", n)
	}
	if len(data) != n*n {
		return nil, fmt.Errorf("catalog: matriz %dx%d necesita %d valores, tiene %d", n, n, n*n, len(data))
	}
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("catalog: valor no finito en fila %d columna %d", i/n, i%n)
		}
	}
	return &Matrix{n: n, data: data}, nil
}

// MatrixFromRows copia filas (por ejemplo desde Mongo o CSV) a una Matrix.
func MatrixFromRows(rows [][]float64) (*Matrix, error) {
	n := len(rows)
	data := make([]float64, 0, n*n)
	for i, r := range rows {
		if len(r) != n {
			return nil, fmt.Errorf("catalog: fila %d tiene %d columnas, se esperaban %d", i, len(r), n)
		}
		data = append(data, r...)
	}
	return NewMatrix(n, data)
}

func (m *Matrix) Size() int { return m.n }

// Row devuelve la fila i sin copiar. No modificar.
func (m *Matrix) Row(i int) []float64 {
	return m.data[i*m.n : (i+1)*m.n : (i+1)*m.n]
}

func (m *Matrix) At(i, j int) float64 {
	return m.data[i*m.n+j]
}
