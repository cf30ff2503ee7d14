package calculator

import (
	"math/rand"
	"testing"

	"OHLCToolkit/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjust(t *testing.T) {
	s := mustSeries(t, model.OHLCColumns("VTI"),
		[]float64{10, 20}, []float64{10, 22}, []float64{10, 18}, []float64{10, 20},
		[]float64{1000, 500}, []float64{9, 20},
	)
	out, err := Adjust(s)
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 9, 9, 9, 1000, 9}, out.Row(0))
	assert.Equal(t, []float64{20, 22, 18, 20, 500, 20}, out.Row(1))
	assert.Equal(t, s.Columns(), out.Columns())
	assert.Equal(t, 10.0, s.At(0, 0), "input must not be modified")
}

func TestAdjust_TooFewColumns(t *testing.T) {
	s := mustSeries(t, []string{"a", "b", "c", "d"}, []float64{1}, []float64{1}, []float64{1}, []float64{1})
	_, err := Adjust(s)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestReduceForm(t *testing.T) {
	s := mustSeries(t, model.OHLCColumns("SPY")[:5],
		[]float64{9, 11}, []float64{12, 13}, []float64{8, 10}, []float64{10, 12}, []float64{100, 200},
	)
	r, err := ReduceForm(s)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 2, -2, 10, 100}, r.Row(0))
	assert.Equal(t, []float64{-1, 1, -2, 2, 200}, r.Row(1))
}

func TestReduceExpand_RoundTripExact(t *testing.T) {
	s := mustSeries(t, model.OHLCColumns("SPY"),
		[]float64{100, 102, 101, 105, 99},
		[]float64{103, 104, 106, 107, 101},
		[]float64{98, 100, 100, 103, 95},
		[]float64{102, 101, 105, 104, 96},
		[]float64{1e6, 2e6, 1.5e6, 3e6, 2.5e6},
		[]float64{51, 50.5, 52.5, 52, 48},
	)
	r, err := ReduceForm(s)
	require.NoError(t, err)
	require.Equal(t, 5, r.NumCols())

	back, err := ExpandForm(r)
	require.NoError(t, err)
	assert.Equal(t, s.Columns()[:5], back.Columns())
	for j := 0; j < 5; j++ {
		assert.Equal(t, s.Col(j), back.Col(j), "column %d", j)
	}
	assert.Equal(t, s.Index(), back.Index())
}

func TestReduceExpand_RoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n := 250
	cols := make([][]float64, 5)
	for j := range cols {
		cols[j] = make([]float64, n)
	}
	price := 100.0
	for i := 0; i < n; i++ {
		open := price
		price *= 1 + (rng.Float64()-0.5)*0.04
		cols[0][i] = open
		cols[1][i] = max(open, price) * 1.01
		cols[2][i] = min(open, price) * 0.99
		cols[3][i] = price
		cols[4][i] = float64(rng.Intn(1_000_000))
	}
	s := mustSeries(t, model.OHLCColumns("RND")[:5], cols...)

	r, err := ReduceForm(s)
	require.NoError(t, err)
	back, err := ExpandForm(r)
	require.NoError(t, err)
	for j := 0; j < 5; j++ {
		for i := 0; i < n; i++ {
			require.InDelta(t, s.At(i, j), back.At(i, j), 1e-9)
		}
	}
}

func TestReduceExpand_TooFewColumns(t *testing.T) {
	s := mustSeries(t, []string{"a"}, []float64{1})
	_, err := ReduceForm(s)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = ExpandForm(s)
	require.ErrorIs(t, err, ErrInvalidArgument)
}
