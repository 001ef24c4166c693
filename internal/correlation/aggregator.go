// Package correlation pools rolling-statistic/next-outcome pairs across all
// players for each window size and reduces them to one Pearson coefficient
// per statistic.
package correlation

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"recentstats/domain/batting"
	"recentstats/internal/rolling"
)

// Row is the correlation result for one window size. A coefficient is NaN
// when fewer than two valid pairs were pooled or the pooled values carry no
// variance; callers render NaN as a gap, never as zero.
type Row struct {
	Window   int
	AVG      float64
	OBP      float64
	SLG      float64
	AVGPairs int
	OBPPairs int
	SLGPairs int
}

// Defined reports whether the coefficient selected by sel is present.
func (r Row) Defined(sel func(Row) float64) bool {
	return !math.IsNaN(sel(r))
}

// accumulator pools paired observations for a single window size. Pairs with
// an undefined statistic are skipped for that statistic only.
type accumulator struct {
	avgX, avgY []float64
	obpX, obpY []float64
	slgX, slgY []float64
}

func (a *accumulator) add(rec rolling.Record) {
	if rec.AVGDefined {
		a.avgX = append(a.avgX, rec.AVG)
		a.avgY = append(a.avgY, rec.NextHit)
	}
	if rec.OBPDefined {
		a.obpX = append(a.obpX, rec.OBP)
		a.obpY = append(a.obpY, rec.NextOnBase)
	}
	if rec.SLGDefined {
		a.slgX = append(a.slgX, rec.SLG)
		a.slgY = append(a.slgY, rec.NextTotalBases)
	}
}

func (a *accumulator) row(window int) Row {
	return Row{
		Window:   window,
		AVG:      pearson(a.avgX, a.avgY),
		OBP:      pearson(a.obpX, a.obpY),
		SLG:      pearson(a.slgX, a.slgY),
		AVGPairs: len(a.avgX),
		OBPPairs: len(a.obpX),
		SLGPairs: len(a.slgX),
	}
}

// pearson reduces pooled pairs to a coefficient. gonum returns NaN on zero
// variance, which is exactly the missing-value contract.
func pearson(x, y []float64) float64 {
	if len(x) < 2 {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}

// Compute produces one Row per window size in [1, maxWindow]. Window sizes
// are independent passes over the shared read-only sequences, so they run in
// parallel up to the given worker limit. Sequence iteration order is fixed,
// which keeps reruns on identical input byte-identical downstream.
func Compute(ctx context.Context, sequences []*batting.PlayerSequence, maxWindow, workers int) ([]Row, error) {
	rows := make([]Row, maxWindow)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for w := 1; w <= maxWindow; w++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			acc := &accumulator{}
			for _, seq := range sequences {
				rolling.ForWindow(seq, w, acc.add)
			}
			rows[w-1] = acc.row(w)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}
