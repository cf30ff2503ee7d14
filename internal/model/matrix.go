package model

import "fmt"

// Matrix is a row-major matrix of float64 values without column names.
type Matrix struct {
	rows, cols int
	data       []float64
}

// NewMatrix copies data (row-major, len rows*cols) into a new Matrix.
func NewMatrix(rows, cols int, data []float64) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: matrix shape %dx%d", ErrInvalidSeries, rows, cols)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: matrix %dx%d needs %d values, got %d", ErrInvalidSeries, rows, cols, rows*cols, len(data))
	}
	return &Matrix{rows: rows, cols: cols, data: append([]float64(nil), data...)}, nil
}

// ZeroMatrix allocates a rows×cols matrix of zeros.
func ZeroMatrix(rows, cols int) *Matrix {
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// MatrixFromRows builds a matrix from a slice of equally long rows.
func MatrixFromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return ZeroMatrix(0, 0), nil
	}
	cols := len(rows[0])
	m := ZeroMatrix(len(rows), cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrInvalidSeries, i, len(r), cols)
		}
		copy(m.data[i*cols:], r)
	}
	return m, nil
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

func (m *Matrix) At(i, j int) float64 { return m.data[i*m.cols+j] }

func (m *Matrix) Set(i, j int, v float64) { m.data[i*m.cols+j] = v }

// ToRows returns the matrix as a freshly allocated slice of rows.
func (m *Matrix) ToRows() [][]float64 {
	out := make([][]float64, m.rows)
	for i := range out {
		out[i] = append([]float64(nil), m.data[i*m.cols:(i+1)*m.cols]...)
	}
	return out
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	return &Matrix{rows: m.rows, cols: m.cols, data: append([]float64(nil), m.data...)}
}
