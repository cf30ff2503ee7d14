package calculator

import (
	"fmt"

	"OHLCToolkit/internal/model"

	"go.uber.org/zap"
)

// Lag shifts x along its rows by n positions and pads the exposed rows with zero.
// A positive n moves past values forward (row i takes row i-n); a negative n
// moves future values back (row i takes row i+|n|).
//
// x may be a []float64, a *model.Matrix or a rectangular [][]float64; the
// result has the same type and shape. Any other input yields ErrTypeMismatch
// and a warning naming the argument.
func Lag(x any, n int) (any, error) {
	switch v := x.(type) {
	case []float64:
		return LagVector(v, n), nil
	case *model.Matrix:
		if v == nil {
			return nil, typeMismatch("lag", "x", x)
		}
		return LagMatrix(v, n), nil
	case [][]float64:
		m, err := model.MatrixFromRows(v)
		if err != nil {
			return nil, typeMismatch("lag", "x", x)
		}
		return LagMatrix(m, n).ToRows(), nil
	default:
		return nil, typeMismatch("lag", "x", x)
	}
}

// Diff returns x minus x lagged by n rows, with the same input rules as Lag.
// The n stub rows without a comparator keep their original values.
func Diff(x any, n int) (any, error) {
	switch v := x.(type) {
	case []float64:
		return DiffVector(v, n), nil
	case *model.Matrix:
		if v == nil {
			return nil, typeMismatch("diff", "x", x)
		}
		return DiffMatrix(v, n), nil
	case [][]float64:
		m, err := model.MatrixFromRows(v)
		if err != nil {
			return nil, typeMismatch("diff", "x", x)
		}
		return DiffMatrix(m, n).ToRows(), nil
	default:
		return nil, typeMismatch("diff", "x", x)
	}
}

// LagVector is Lag for a plain vector.
func LagVector(x []float64, n int) []float64 {
	out := make([]float64, len(x))
	for i := range out {
		if src := i - n; src >= 0 && src < len(x) {
			out[i] = x[src]
		}
	}
	return out
}

// DiffVector is Diff for a plain vector.
func DiffVector(x []float64, n int) []float64 {
	out := make([]float64, len(x))
	for i := range out {
		if src := i - n; src >= 0 && src < len(x) {
			out[i] = x[i] - x[src]
		} else {
			out[i] = x[i]
		}
	}
	return out
}

// LagMatrix is Lag applied row-wise to a matrix.
func LagMatrix(m *model.Matrix, n int) *model.Matrix {
	out := model.ZeroMatrix(m.Rows(), m.Cols())
	for i := 0; i < m.Rows(); i++ {
		src := i - n
		if src < 0 || src >= m.Rows() {
			continue
		}
		for j := 0; j < m.Cols(); j++ {
			out.Set(i, j, m.At(src, j))
		}
	}
	return out
}

// DiffMatrix is Diff applied row-wise to a matrix.
func DiffMatrix(m *model.Matrix, n int) *model.Matrix {
	out := model.ZeroMatrix(m.Rows(), m.Cols())
	for i := 0; i < m.Rows(); i++ {
		src := i - n
		for j := 0; j < m.Cols(); j++ {
			if src < 0 || src >= m.Rows() {
				out.Set(i, j, m.At(i, j))
			} else {
				out.Set(i, j, m.At(i, j)-m.At(src, j))
			}
		}
	}
	return out
}

func typeMismatch(op, arg string, x any) error {
	zap.L().Warn("argument is not a numeric vector or matrix",
		zap.String("op", op),
		zap.String("argument", arg),
		zap.String("type", fmt.Sprintf("%T", x)),
	)
	return fmt.Errorf("%s: argument %s has type %T: %w", op, arg, x, ErrTypeMismatch)
}
