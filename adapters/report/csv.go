// Package report renders the correlation table produced by the core pipeline
// into its output artifacts: CSV, an xlsx workbook, PNG plots and a
// markdown/HTML run summary. Missing correlation cells stay empty or become
// plot gaps; they are never rendered as zero.
package report

import (
	"encoding/csv"
	"math"
	"os"
	"strconv"

	"recentstats/internal/correlation"
	"recentstats/internal/errors"
)

var tableHeader = []string{"window", "avg_corr", "obp_corr", "slg_corr"}

// WriteCSV writes the correlation table. Output is deterministic: identical
// rows produce byte-identical files.
func WriteCSV(path string, rows []correlation.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.ReportFailed("creating correlation csv", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(tableHeader); err != nil {
		return errors.ReportFailed("writing correlation csv", err)
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.Window),
			formatCoefficient(row.AVG),
			formatCoefficient(row.OBP),
			formatCoefficient(row.SLG),
		}
		if err := w.Write(record); err != nil {
			return errors.ReportFailed("writing correlation csv", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.ReportFailed("flushing correlation csv", err)
	}
	return f.Close()
}

// formatCoefficient renders a coefficient with fixed precision; missing
// values become empty cells.
func formatCoefficient(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
