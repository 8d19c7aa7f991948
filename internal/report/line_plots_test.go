package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/user/sim_plotter_go/internal/analysis"
	"github.com/user/sim_plotter_go/internal/parser"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func testSet(tables map[int][]parser.ResultRow) *parser.ResultSet {
	rs := parser.NewResultSet()
	for k, rows := range tables {
		rs.Put(&parser.ResultTable{Key: k, Path: filepath.Join("results", "20x.csv"), Rows: rows})
	}
	return rs
}

func threeRows() []parser.ResultRow {
	return []parser.ResultRow{
		{SNRdB: 20, Sigma: 0.1, ErrorRate: 0.001, Time: 1},
		{SNRdB: 13.98, Sigma: 0.2, ErrorRate: 0.02, Time: 2},
		{SNRdB: 10.46, Sigma: 0.3, ErrorRate: 0.1, Time: 3},
	}
}

func TestParseKinds(t *testing.T) {
	kinds, err := ParseKinds("ber_vs_snr, error_rate_vs_sigma,ber_vs_snr")
	require.NoError(t, err)
	assert.Equal(t, []Kind{ErrorVsSigma, BerVsSnr}, kinds)

	kinds, err = ParseKinds("error_rate_vs_sigma,time_vs_k,ber_vs_snr")
	require.NoError(t, err)
	assert.Equal(t, AllKinds, kinds)

	_, err = ParseKinds("pie_chart")
	require.Error(t, err)
	_, err = ParseKinds(" , ")
	require.Error(t, err)
}

func TestKindFileNames(t *testing.T) {
	assert.Equal(t, "error_rate_vs_sigma.png", ErrorVsSigma.FileName())
	assert.Equal(t, "time_vs_k.png", TimeVsK.FileName())
	assert.Equal(t, "ber_vs_snr.png", BerVsSnr.FileName())
}

func TestNewChartAllKinds(t *testing.T) {
	rs := testSet(map[int][]parser.ResultRow{8: threeRows(), 16: threeRows()})
	dir := t.TempDir()

	for _, kind := range AllKinds {
		c, err := NewChart(kind, rs)
		require.NoError(t, err, kind.String())
		assert.Equal(t, chartDefs[kind].title, c.Plot.Title.Text)
		assert.Greater(t, float64(c.LegendWidth()), 0.0)

		path := filepath.Join(dir, kind.FileName())
		imgBytes, err := c.Save(path, 4*vg.Inch, 3*vg.Inch)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(imgBytes, pngMagic))

		onDisk, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, imgBytes, onDisk)
	}
}

func TestNewChartLegendOrder(t *testing.T) {
	rs := testSet(map[int][]parser.ResultRow{64: threeRows(), 8: threeRows(), 32: threeRows()})

	c, err := NewChart(ErrorVsSigma, rs)
	require.NoError(t, err)
	assert.Equal(t, []string{"Codeword Size", "20x8", "20x32", "20x64"}, c.labels)
}

func TestBerChartLogScale(t *testing.T) {
	rows := threeRows()
	rows[0].ErrorRate = 0
	rs := testSet(map[int][]parser.ResultRow{8: rows})

	c, err := NewChart(BerVsSnr, rs)
	require.NoError(t, err)
	_, isLog := c.Plot.Y.Scale.(plot.LogScale)
	assert.True(t, isLog)
	assert.InDelta(t, 0.02, c.Plot.Y.Min, 1e-12)
	assert.InDelta(t, 0.1, c.Plot.Y.Max, 1e-12)
	require.Len(t, c.Warnings, 1)

	_, err = c.PNG(4*vg.Inch, 3*vg.Inch)
	require.NoError(t, err)
}

func TestBerChartAllZero(t *testing.T) {
	rows := threeRows()
	for i := range rows {
		rows[i].ErrorRate = 0
	}
	rs := testSet(map[int][]parser.ResultRow{8: rows})

	c, err := NewChart(BerVsSnr, rs)
	require.NoError(t, err)
	assert.Equal(t, logFloorMin, c.Plot.Y.Min)
	assert.Equal(t, logFloorMax, c.Plot.Y.Max)

	_, err = c.PNG(4*vg.Inch, 3*vg.Inch)
	require.NoError(t, err)
}

func TestBerChartSinglePoint(t *testing.T) {
	rs := testSet(map[int][]parser.ResultRow{4: threeRows()[:1]})

	c, err := NewChart(BerVsSnr, rs)
	require.NoError(t, err)
	assert.InDelta(t, 0.0001, c.Plot.Y.Min, 1e-12)
	assert.InDelta(t, 0.01, c.Plot.Y.Max, 1e-12)

	_, err = c.PNG(4*vg.Inch, 3*vg.Inch)
	require.NoError(t, err)
}

func TestTimeChartShortTable(t *testing.T) {
	for _, rs := range []*parser.ResultSet{
		testSet(map[int][]parser.ResultRow{8: threeRows()[:2], 16: threeRows()}),
		testSet(map[int][]parser.ResultRow{8: threeRows(), 16: threeRows()[:2]}),
	} {
		_, err := NewChart(TimeVsK, rs)
		var tblErr *parser.MalformedTableError
		require.ErrorAs(t, err, &tblErr)
		assert.Equal(t, 16, tblErr.Key)
		assert.Equal(t, 2, tblErr.Row)
	}
}

func TestSaveUnwritableDir(t *testing.T) {
	rs := testSet(map[int][]parser.ResultRow{8: threeRows()})
	c, err := NewChart(ErrorVsSigma, rs)
	require.NoError(t, err)

	_, err = c.Save(filepath.Join(t.TempDir(), "missing", "out.png"), 4*vg.Inch, 3*vg.Inch)
	require.Error(t, err)
}

func TestDashes(t *testing.T) {
	assert.Nil(t, dashes(analysis.Solid))
	for _, s := range []analysis.LineStyle{analysis.Dashed, analysis.DashDot, analysis.Dotted} {
		assert.NotEmpty(t, dashes(s), s.String())
	}
}
