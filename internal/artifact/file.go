// Package artifact carga el catálogo y la matriz de similitud producidos
// offline, desde archivos o desde MongoDB.
package artifact

import (
	"bufio"
	"context"
	"encoding/binary"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aadi-novice/movie-recommender/internal/catalog"
	"github.com/aadi-novice/movie-recommender/internal/models"
)

// Source entrega un Store ya validado.
type Source interface {
	Load(ctx context.Context) (*catalog.Store, error)
}

// FileSource lee el catálogo en CSV y la matriz en binario (.bin) o CSV (.csv).
type FileSource struct {
	CatalogPath string
	MatrixPath  string
}

func (f FileSource) Load(ctx context.Context) (*catalog.Store, error) {
	movies, err := readCatalogFile(f.CatalogPath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := readMatrixFile(f.MatrixPath)
	if err != nil {
		return nil, err
	}
	store, err := catalog.New(movies, m)
	if err != nil {
		return nil, fmt.Errorf("artifact: %s + %s: %w", f.CatalogPath, f.MatrixPath, err)
	}
	return store, nil
}

func readCatalogFile(path string) ([]models.Movie, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("artifact: abrir catálogo: %w", err)
	}
	defer fh.Close()

	movies, err := ReadCatalog(fh)
	if err != nil {
		return nil, fmt.Errorf("artifact: %s: %w", path, err)
	}
	return movies, nil
}

func readMatrixFile(path string) (*catalog.Matrix, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("artifact: abrir matriz: %w", err)
	}
	defer fh.Close()

	var m *catalog.Matrix
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		m, err = ReadMatrixCSV(fh)
	} else {
		m, err = DecodeMatrix(fh)
	}
	if err != nil {
		return nil, fmt.Errorf("artifact: %s: %w", path, err)
	}
	return m, nil
}

// ReadCatalog lee un CSV con header. Columnas: movie_id, title y opcionalmente
// row_index; sin row_index se usa la posición de la fila (0-based).
func ReadCatalog(r io.Reader) ([]models.Movie, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("catálogo vacío")
		}
		return nil, err
	}

	idCol, titleCol, rowCol := -1, -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "movie_id", "movieid", "id":
			idCol = i
		case "title":
			titleCol = i
		case "row_index", "iidx", "index":
			rowCol = i
		}
	}
	if idCol < 0 || titleCol < 0 {
		return nil, fmt.Errorf("header sin movie_id/title: %v", header)
	}

	var movies []models.Movie
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) <= idCol || len(rec) <= titleCol || (rowCol >= 0 && len(rec) <= rowCol) {
			return nil, fmt.Errorf("línea %d: faltan columnas", line)
		}

		id, err := strconv.Atoi(strings.TrimSpace(rec[idCol]))
		if err != nil {
			return nil, fmt.Errorf("línea %d: movie_id inválido %q", line, rec[idCol])
		}
		row := len(movies)
		if rowCol >= 0 {
			row, err = strconv.Atoi(strings.TrimSpace(rec[rowCol]))
			if err != nil {
				return nil, fmt.Errorf("línea %d: row_index inválido %q", line, rec[rowCol])
			}
		}
		movies = append(movies, models.Movie{MovieID: id, Title: rec[titleCol], RowIndex: row})
	}
	return movies, nil
}

// ReadMatrixCSV lee N líneas de N floats separados por coma (np.savetxt con delimiter=",").
func ReadMatrixCSV(r io.Reader) (*catalog.Matrix, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	var rows [][]float64
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make([]float64, len(rec))
		for j, v := range rec {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("fila %d columna %d: %w", len(rows), j, err)
			}
			row[j] = f
		}
		rows = append(rows, row)
	}
	return catalog.MatrixFromRows(rows)
}

// MaxMatrixSize limita N al decodificar (20000² float64 ≈ 3.2 GB).
const MaxMatrixSize = 20000

// Formato binario: uint32 N little-endian y después N*N float64
// little-endian fila por fila, sin padding.
const headerSize, valueSize = 4, 8

// EncodedSize es el tamaño en bytes de una matriz NxN codificada.
func EncodedSize(n int) int64 {
	return headerSize + valueSize*int64(n)*int64(n)
}

// DecodeMatrix lee el formato binario y falla si sobran o faltan bytes.
// Si r es un archivo regular el tamaño se valida contra el header antes de
// leer; si no, se lee fila por fila y la memoria crece con lo que llega.
func DecodeMatrix(r io.Reader) (*catalog.Matrix, error) {
	br := bufio.NewReader(r)

	var n uint32
	if err := binary.Read(br, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("leer tamaño: %w", err)
	}
	if n > MaxMatrixSize {
		return nil, fmt.Errorf("matriz de %dx%d excede el máximo %d", n, n, MaxMatrixSize)
	}
	size := int(n)

	if f, ok := r.(interface{ Stat() (os.FileInfo, error) }); ok {
		if fi, err := f.Stat(); err == nil && fi.Mode().IsRegular() {
			if want := EncodedSize(size); fi.Size() != want {
				return nil, fmt.Errorf("tamaño de archivo %d no coincide con matriz %dx%d (%d bytes)", fi.Size(), n, n, want)
			}
		}
	}

	data := make([]float64, 0, size)
	row := make([]float64, size)
	for i := 0; i < size; i++ {
		if err := binary.Read(br, binary.LittleEndian, row); err != nil {
			return nil, fmt.Errorf("matriz truncada en fila %d (N=%d): %w", i, n, err)
		}
		data = append(data, row...)
	}
	if _, err := br.ReadByte(); err == nil {
		return nil, fmt.Errorf("bytes sobrantes después de la matriz %dx%d", n, n)
	}
	return catalog.NewMatrix(size, data)
}

// EncodeMatrix escribe m en el formato que lee DecodeMatrix.
func EncodeMatrix(w io.Writer, m *catalog.Matrix) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, uint32(m.Size())); err != nil {
		return err
	}
	for i := 0; i < m.Size(); i++ {
		if err := binary.Write(bw, binary.LittleEndian, m.Row(i)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteCatalog escribe el catálogo con row_index explícito, legible por ReadCatalog.
func WriteCatalog(w io.Writer, movies []models.Movie) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"movie_id", "title", "row_index"}); err != nil {
		return err
	}
	for _, m := range movies {
		rec := []string{strconv.Itoa(m.MovieID), m.Title, strconv.Itoa(m.RowIndex)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
