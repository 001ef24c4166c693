package report

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"recentstats/internal/correlation"
)

func sampleRows() []correlation.Row {
	nan := math.NaN()
	return []correlation.Row{
		{Window: 1, AVG: 0.051234, OBP: 0.062345, SLG: 0.043456, AVGPairs: 100, OBPPairs: 100, SLGPairs: 100},
		{Window: 2, AVG: nan, OBP: 0.071111, SLG: nan, OBPPairs: 50},
		{Window: 3, AVG: nan, OBP: nan, SLG: nan},
		{Window: 4, AVG: 0.083333, OBP: 0.091234, SLG: 0.065432, AVGPairs: 80, OBPPairs: 80, SLGPairs: 80},
	}
}

func TestWriteCSV_MissingValuesAreEmptyCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "correlation_table.csv")
	require.NoError(t, WriteCSV(path, sampleRows()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "window,avg_corr,obp_corr,slg_corr", lines[0])
	assert.Equal(t, "1,0.051234,0.062345,0.043456", lines[1])
	assert.Equal(t, "2,,0.071111,", lines[2])
	assert.Equal(t, "3,,,", lines[3])
	assert.Equal(t, "4,0.083333,0.091234,0.065432", lines[4])
}

func TestWriteCSV_Idempotent(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.csv")
	second := filepath.Join(dir, "b.csv")

	rows := sampleRows()
	require.NoError(t, WriteCSV(first, rows))
	require.NoError(t, WriteCSV(second, rows))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b, "identical rows must produce byte-identical output")
}

func TestWriteWorkbook_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "correlation_table.xlsx")
	require.NoError(t, WriteWorkbook(path, sampleRows()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(workbookSheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "avg_corr", header)

	defined, err := f.GetCellValue(workbookSheet, "B2")
	require.NoError(t, err)
	assert.NotEmpty(t, defined)

	missing, err := f.GetCellValue(workbookSheet, "B3")
	require.NoError(t, err)
	assert.Empty(t, missing, "missing coefficient must leave the cell empty")
}

func TestWritePlots_RendersThreeZoomLevels(t *testing.T) {
	rows := make([]correlation.Row, 20)
	for i := range rows {
		rows[i] = correlation.Row{
			Window: i + 1,
			AVG:    0.05 + 0.001*float64(i),
			OBP:    0.06 + 0.001*float64(i),
			SLG:    0.04 + 0.001*float64(i),
		}
	}
	// Carve a gap into one series.
	rows[7].AVG = math.NaN()

	dir := t.TempDir()
	written, err := WritePlots(dir, rows)
	require.NoError(t, err)
	require.Len(t, written, 3)

	assert.Equal(t, filepath.Join(dir, "correlation_1_20.png"), written[0])
	assert.Equal(t, filepath.Join(dir, "correlation_1_10.png"), written[1])
	assert.Equal(t, filepath.Join(dir, "correlation_11_20.png"), written[2])

	for _, path := range written {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestWritePlots_SmallRangeRendersSinglePlot(t *testing.T) {
	rows := []correlation.Row{
		{Window: 1, AVG: 0.1, OBP: 0.1, SLG: 0.1},
		{Window: 2, AVG: 0.2, OBP: 0.2, SLG: 0.2},
	}

	written, err := WritePlots(t.TempDir(), rows)
	require.NoError(t, err)
	assert.Len(t, written, 1)
}

func TestSegments_SplitAtMissingValues(t *testing.T) {
	rows := sampleRows()
	segs := segments(rows, func(r correlation.Row) float64 { return r.AVG }, 1, 4)

	require.Len(t, segs, 2)
	assert.Len(t, segs[0], 1)
	assert.Len(t, segs[1], 1)
	assert.Equal(t, 1.0, segs[0][0].X)
	assert.Equal(t, 4.0, segs[1][0].X)
}

func TestWriteSummary_RendersMarkdownAndHTML(t *testing.T) {
	dir := t.TempDir()
	s := Summary{
		RunID:       "3f0a2e6c-0000-0000-0000-000000000000",
		GeneratedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		DataFile:    "statcast_data.csv",
		Players:     42,
		Appearances: 31500,
		Profile:     PACountProfile{Mean: 750, Median: 700, Min: 260, Max: 1400, Q25: 500, Q75: 950},
		Rows:        sampleRows(),
	}
	require.NoError(t, WriteSummary(dir, s))

	md, err := os.ReadFile(filepath.Join(dir, "summary.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), s.RunID)
	assert.Contains(t, string(md), "Strongest window per statistic")
	assert.Contains(t, string(md), "| OBP | 4 | 0.091234 |")

	html, err := os.ReadFile(filepath.Join(dir, "summary.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<table>")
	assert.Contains(t, string(html), s.RunID)
}
