package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/sim_plotter_go/internal/parser"
)

func newSet(tables map[int][]parser.ResultRow) *parser.ResultSet {
	rs := parser.NewResultSet()
	for k, rows := range tables {
		rs.Put(&parser.ResultTable{Key: k, Path: KeyLabel(k) + ".csv", Rows: rows})
	}
	return rs
}

func sweep(times ...float64) []parser.ResultRow {
	rows := make([]parser.ResultRow, len(times))
	for i, tm := range times {
		sigma := 0.1 * float64(i+1)
		rows[i] = parser.ResultRow{Sigma: sigma, ErrorRate: sigma / 2, Time: tm, SNRdB: 20 - 5*float64(i)}
	}
	return rows
}

func TestStyleFor(t *testing.T) {
	keys := []int{8, 32, 64, 128, 256}
	got := make([]LineStyle, len(keys))
	for i := range keys {
		got[i] = StyleFor(i)
	}
	assert.Equal(t, []LineStyle{Solid, Dashed, DashDot, Dotted, Solid}, got)
	assert.Equal(t, "dash-dot", DashDot.String())
}

func TestErrorRateVsSigma(t *testing.T) {
	rs := newSet(map[int][]parser.ResultRow{
		64: sweep(3, 4, 5),
		8:  sweep(1, 2, 3),
		32: sweep(2, 3, 4),
	})

	set, err := ErrorRateVsSigma(rs)
	require.NoError(t, err)
	assert.Equal(t, []int{8, 32, 64}, set.Keys)
	require.Len(t, set.Series, 3)

	labels := []string{"20x8", "20x32", "20x64"}
	styles := []LineStyle{Solid, Dashed, DashDot}
	for i, s := range set.Series {
		assert.Equal(t, labels[i], s.Label)
		assert.Equal(t, styles[i], s.Style)
		require.Len(t, s.Points, 3)
		assert.InDelta(t, 0.1, s.Points[0].X, 1e-12)
		assert.InDelta(t, 0.05, s.Points[0].Y, 1e-12)
	}
}

func TestBERVsSNR(t *testing.T) {
	rs := newSet(map[int][]parser.ResultRow{16: sweep(1, 2), 8: sweep(1, 2)})

	set, err := BERVsSNR(rs)
	require.NoError(t, err)
	require.Len(t, set.Series, 2)
	assert.Equal(t, "20x8", set.Series[0].Label)
	assert.Equal(t, []Point{{X: 20, Y: 0.05}, {X: 15, Y: 0.1}}, set.Series[0].Points)
}

func TestTimeVsK(t *testing.T) {
	rs := newSet(map[int][]parser.ResultRow{
		16: sweep(10, 20, 30),
		8:  sweep(1, 2, 3),
	})

	set, err := TimeVsK(rs)
	require.NoError(t, err)
	require.Len(t, set.Series, 3)

	assert.Equal(t, "Sigma=0.1", set.Series[0].Label)
	assert.Equal(t, "Sigma=0.2", set.Series[1].Label)
	assert.Equal(t, "Sigma=0.3", set.Series[2].Label)
	assert.Equal(t, []Point{{X: 8, Y: 1}, {X: 16, Y: 10}}, set.Series[0].Points)
	assert.Equal(t, []Point{{X: 8, Y: 3}, {X: 16, Y: 30}}, set.Series[2].Points)
}

func TestTimeVsKSingleKey(t *testing.T) {
	rs := newSet(map[int][]parser.ResultRow{4: sweep(0.25)})

	set, err := TimeVsK(rs)
	require.NoError(t, err)
	require.Len(t, set.Series, 1)
	assert.Equal(t, []Point{{X: 4, Y: 0.25}}, set.Series[0].Points)
}

func TestTimeVsKShortTable(t *testing.T) {
	rs := newSet(map[int][]parser.ResultRow{
		16: sweep(10, 20),
		8:  sweep(1, 2, 3),
	})

	_, err := TimeVsK(rs)
	var tblErr *parser.MalformedTableError
	require.True(t, errors.As(err, &tblErr))
	assert.Equal(t, 16, tblErr.Key)
	assert.Equal(t, 2, tblErr.Row)
	assert.Equal(t, parser.ColTime, tblErr.Field)
}

func TestTimeVsKReferenceShorter(t *testing.T) {
	rs := newSet(map[int][]parser.ResultRow{
		16: sweep(10, 20, 30),
		8:  sweep(1, 2),
	})

	_, err := TimeVsK(rs)
	var tblErr *parser.MalformedTableError
	require.True(t, errors.As(err, &tblErr))
	assert.Equal(t, 16, tblErr.Key)
	assert.Equal(t, 2, tblErr.Row)
	assert.Contains(t, tblErr.Error(), "reference k=8 has 2")
}

func TestEmptyResultSet(t *testing.T) {
	for _, fn := range []func(*parser.ResultSet) (*SeriesSet, error){ErrorRateVsSigma, BERVsSNR, TimeVsK} {
		_, err := fn(parser.NewResultSet())
		require.ErrorIs(t, err, parser.ErrNoResultFiles)
	}
}
