package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"recentstats/internal/correlation"
	"recentstats/internal/errors"
)

// PACountProfile summarizes the distribution of plate appearances per player.
type PACountProfile struct {
	Mean   float64
	Median float64
	Min    float64
	Max    float64
	Q25    float64
	Q75    float64
}

// Summary carries everything the run summary renders.
type Summary struct {
	RunID       string
	GeneratedAt time.Time
	DataFile    string
	Players     int
	Appearances int
	Profile     PACountProfile
	Rows        []correlation.Row
}

// WriteSummary renders the run summary as markdown and as HTML next to the
// other report artifacts.
func WriteSummary(dir string, s Summary) error {
	md := renderMarkdown(s)

	mdPath := filepath.Join(dir, "summary.md")
	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		return errors.ReportFailed("writing summary markdown", err)
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.CompletePage})
	html := markdown.ToHTML([]byte(md), p, renderer)

	htmlPath := filepath.Join(dir, "summary.html")
	if err := os.WriteFile(htmlPath, html, 0o644); err != nil {
		return errors.ReportFailed("writing summary html", err)
	}
	return nil
}

func renderMarkdown(s Summary) string {
	var b strings.Builder

	b.WriteString("# Rolling Plate-Appearance Correlation Run\n\n")
	fmt.Fprintf(&b, "- Run ID: `%s`\n", s.RunID)
	fmt.Fprintf(&b, "- Generated: %s\n", s.GeneratedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "- Dataset: `%s`\n", s.DataFile)
	fmt.Fprintf(&b, "- Players: %d\n", s.Players)
	fmt.Fprintf(&b, "- Plate appearances: %d\n\n", s.Appearances)

	b.WriteString("## Plate appearances per player\n\n")
	b.WriteString("| mean | median | min | max | q25 | q75 |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	fmt.Fprintf(&b, "| %.1f | %.1f | %.0f | %.0f | %.1f | %.1f |\n\n",
		s.Profile.Mean, s.Profile.Median, s.Profile.Min, s.Profile.Max, s.Profile.Q25, s.Profile.Q75)

	b.WriteString("## Strongest window per statistic\n\n")
	b.WriteString("| statistic | window | correlation |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, st := range []struct {
		name  string
		value func(correlation.Row) float64
	}{
		{"AVG", func(r correlation.Row) float64 { return r.AVG }},
		{"OBP", func(r correlation.Row) float64 { return r.OBP }},
		{"SLG", func(r correlation.Row) float64 { return r.SLG }},
	} {
		window, coeff, ok := strongestWindow(s.Rows, st.value)
		if !ok {
			fmt.Fprintf(&b, "| %s | - | no defined correlations |\n", st.name)
			continue
		}
		fmt.Fprintf(&b, "| %s | %d | %.6f |\n", st.name, window, coeff)
	}
	b.WriteString("\n")

	return b.String()
}

// strongestWindow returns the window with the largest absolute coefficient.
func strongestWindow(rows []correlation.Row, value func(correlation.Row) float64) (int, float64, bool) {
	best, bestWindow, found := 0.0, 0, false
	for _, row := range rows {
		v := value(row)
		if math.IsNaN(v) {
			continue
		}
		if !found || math.Abs(v) > math.Abs(best) {
			best, bestWindow, found = v, row.Window, true
		}
	}
	return bestWindow, best, found
}
