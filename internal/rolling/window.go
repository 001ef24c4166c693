// Package rolling derives, for a player sequence and a window size, the
// rolling AVG/OBP/SLG over the window immediately preceding each plate
// appearance together with that appearance's realized outcome. Records are
// produced via a callback and never materialized as a whole, so 250 window
// sizes over a full decade of data stay within a bounded footprint.
package rolling

import "recentstats/domain/batting"

// Record pairs the rolling statistics over the w appearances strictly before
// index i with the outcome of appearance i itself. A statistic whose window
// denominator is zero is marked undefined and excluded from aggregation
// downstream, never substituted with zero.
type Record struct {
	AVG        float64
	OBP        float64
	SLG        float64
	AVGDefined bool
	OBPDefined bool
	SLGDefined bool

	// Realized outcome of the labeled appearance. Each statistic correlates
	// with its natural counterpart: AVG with the hit flag, OBP with the
	// on-base flag, SLG with total bases.
	NextHit        float64
	NextOnBase     float64
	NextTotalBases float64
}

// ForWindow invokes fn once per index i in [window, Len) with the record for
// the half-open window [i-window, i). The window never includes appearance i,
// so the label is never part of its own predictor. Players with fewer than
// window+1 appearances contribute no records.
func ForWindow(seq *batting.PlayerSequence, window int, fn func(Record)) {
	if window < 1 {
		return
	}
	for i := window; i < seq.Len(); i++ {
		sums := seq.Sums(i-window, i)

		var rec Record
		if sums.AtBats > 0 {
			rec.AVG = float64(sums.Hits) / float64(sums.AtBats)
			rec.SLG = float64(sums.TotalBases) / float64(sums.AtBats)
			rec.AVGDefined = true
			rec.SLGDefined = true
		}
		if sums.OBPDenom > 0 {
			rec.OBP = float64(sums.OnBase) / float64(sums.OBPDenom)
			rec.OBPDefined = true
		}

		next := seq.Appearances[i].Outcome
		if next.IsHit() {
			rec.NextHit = 1
		}
		if next.IsOnBase() {
			rec.NextOnBase = 1
		}
		rec.NextTotalBases = float64(next.TotalBases())

		fn(rec)
	}
}
