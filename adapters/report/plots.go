package report

import (
	"fmt"
	"image/color"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"recentstats/internal/correlation"
	"recentstats/internal/errors"
)

type series struct {
	name  string
	color color.Color
	value func(correlation.Row) float64
}

var plotSeries = []series{
	{"AVG", color.RGBA{B: 255, A: 255}, func(r correlation.Row) float64 { return r.AVG }},
	{"OBP", color.RGBA{G: 160, A: 255}, func(r correlation.Row) float64 { return r.OBP }},
	{"SLG", color.RGBA{R: 255, A: 255}, func(r correlation.Row) float64 { return r.SLG }},
}

// WritePlots renders correlation-versus-window-size charts at three zoom
// levels: the full range, windows 1-10 and windows 11-max. Returns the paths
// written.
func WritePlots(dir string, rows []correlation.Row) ([]string, error) {
	maxWindow := len(rows)

	type span struct{ lo, hi int }
	spans := []span{{1, maxWindow}}
	if maxWindow > 10 {
		spans = append(spans, span{1, 10}, span{11, maxWindow})
	}

	var written []string
	for _, sp := range spans {
		path := filepath.Join(dir, fmt.Sprintf("correlation_%d_%d.png", sp.lo, sp.hi))
		if err := writePlot(path, rows, sp.lo, sp.hi); err != nil {
			return nil, errors.ReportFailed(fmt.Sprintf("rendering plot %s", path), err)
		}
		written = append(written, path)
	}
	return written, nil
}

func writePlot(path string, rows []correlation.Row, lo, hi int) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Correlation vs Rolling Window (%d-%d)", lo, hi)
	p.X.Label.Text = "Number of Prior Plate Appearances (N)"
	p.Y.Label.Text = "Correlation with Next Outcome"
	p.X.Min = float64(lo)
	p.X.Max = float64(hi)
	p.Add(plotter.NewGrid())

	for _, s := range plotSeries {
		inLegend := false
		for _, seg := range segments(rows, s.value, lo, hi) {
			line, err := plotter.NewLine(seg)
			if err != nil {
				return err
			}
			line.Color = s.color
			p.Add(line)
			if !inLegend {
				p.Legend.Add(s.name, line)
				inLegend = true
			}
		}
	}

	return p.Save(10*vg.Inch, 6*vg.Inch, path)
}

// segments splits a series into runs of consecutive defined windows so that
// missing values render as gaps instead of interpolated lines.
func segments(rows []correlation.Row, value func(correlation.Row) float64, lo, hi int) []plotter.XYs {
	var segs []plotter.XYs
	var current plotter.XYs

	for _, row := range rows {
		if row.Window < lo || row.Window > hi {
			continue
		}
		if !row.Defined(value) {
			if len(current) > 0 {
				segs = append(segs, current)
				current = nil
			}
			continue
		}
		current = append(current, plotter.XY{X: float64(row.Window), Y: value(row)})
	}
	if len(current) > 0 {
		segs = append(segs, current)
	}
	return segs
}
