package render

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"OHLCToolkit/internal/calculator"
	"OHLCToolkit/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func closeSeries(t *testing.T, values ...float64) *model.Series {
	t.Helper()
	idx := make([]time.Time, len(values))
	for i := range idx {
		idx[i] = day0.AddDate(0, 0, i)
	}
	s, err := model.NewSeries(idx, []string{"X.Open", "X.Close"}, [][]float64{make([]float64, len(values)), values})
	require.NoError(t, err)
	return s
}

func TestChart(t *testing.T) {
	var buf bytes.Buffer
	err := Chart(&buf, closeSeries(t, 1, 3, 2), "Close", []bool{false, true, false})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "X.Close  2024-01-01 .. 2024-01-03  (3 rows, min 1.00, max 3.00)", lines[0])

	assert.True(t, strings.HasPrefix(lines[1], "2024-01-01   "))
	assert.True(t, strings.HasPrefix(lines[2], "2024-01-02 * "))
	assert.Equal(t, 1, strings.Count(lines[1], "#"))
	assert.Equal(t, BarWidth, strings.Count(lines[2], "#"))
	assert.Equal(t, BarWidth/2, strings.Count(lines[3], "#"))
	assert.Contains(t, lines[3], "      2.00 |")
	for _, l := range lines[1:] {
		assert.True(t, strings.HasSuffix(l, "|"))
	}
}

func TestChart_NilMaskAndMissingValues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Chart(&buf, closeSeries(t, 5, math.NaN(), 5), "X.Close", nil))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.NotContains(t, buf.String(), "*")
	assert.Contains(t, lines[2], "NaN")
	assert.Equal(t, 0, strings.Count(lines[2], "#"))
	assert.Equal(t, BarWidth, strings.Count(lines[1], "#"), "flat column draws full bars")
}

func TestChart_Positional(t *testing.T) {
	s, err := model.NewSeries(nil, []string{"v"}, [][]float64{{1, 2}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Chart(&buf, s, "v", nil))
	assert.True(t, strings.HasPrefix(buf.String(), "v  0 .. 1  (2 rows"))
}

func TestChart_Errors(t *testing.T) {
	s := closeSeries(t, 1, 2, 3)

	err := Chart(&bytes.Buffer{}, s, "Close", []bool{true})
	require.ErrorIs(t, err, calculator.ErrInvalidArgument)

	err = Chart(&bytes.Buffer{}, s, "Volume", nil)
	require.ErrorIs(t, err, calculator.ErrInvalidArgument)
}
