package batting

// PlayerSequence holds one player's plate appearances in strict chronological
// order together with prefix sums of the per-appearance counting values, so
// any window sum is two slice lookups instead of a rescan.
//
// Sequences are read-only after construction; concurrent window passes share
// them without synchronization.
type PlayerSequence struct {
	PlayerID    int64
	Appearances []PlateAppearance

	// Prefix sums, length len(Appearances)+1; cum*[j] covers Appearances[:j].
	cumHits       []int
	cumAtBats     []int
	cumOnBase     []int
	cumOBPDenom   []int
	cumTotalBases []int
}

// WindowSums are the accumulated counting values over a half-open appearance
// range [lo, hi).
type WindowSums struct {
	Hits       int
	AtBats     int
	OnBase     int
	OBPDenom   int
	TotalBases int
}

// NewPlayerSequence builds a sequence from appearances already sorted by
// OrderKey. Callers own the ordering; the sequence builder sorts and
// deduplicates before constructing.
func NewPlayerSequence(playerID int64, appearances []PlateAppearance) *PlayerSequence {
	n := len(appearances)
	s := &PlayerSequence{
		PlayerID:      playerID,
		Appearances:   appearances,
		cumHits:       make([]int, n+1),
		cumAtBats:     make([]int, n+1),
		cumOnBase:     make([]int, n+1),
		cumOBPDenom:   make([]int, n+1),
		cumTotalBases: make([]int, n+1),
	}

	for i, pa := range appearances {
		hit, atBat, onBase, obpDenom := 0, 0, 0, 0
		if pa.Outcome.IsHit() {
			hit = 1
		}
		if pa.Outcome.IsAtBat() {
			atBat = 1
		}
		if pa.Outcome.IsOnBase() {
			onBase = 1
		}
		if pa.Outcome.InOBPDenominator() {
			obpDenom = 1
		}
		s.cumHits[i+1] = s.cumHits[i] + hit
		s.cumAtBats[i+1] = s.cumAtBats[i] + atBat
		s.cumOnBase[i+1] = s.cumOnBase[i] + onBase
		s.cumOBPDenom[i+1] = s.cumOBPDenom[i] + obpDenom
		s.cumTotalBases[i+1] = s.cumTotalBases[i] + pa.Outcome.TotalBases()
	}

	return s
}

// Len returns the number of plate appearances.
func (s *PlayerSequence) Len() int {
	return len(s.Appearances)
}

// Sums returns the accumulated counting values over [lo, hi).
func (s *PlayerSequence) Sums(lo, hi int) WindowSums {
	return WindowSums{
		Hits:       s.cumHits[hi] - s.cumHits[lo],
		AtBats:     s.cumAtBats[hi] - s.cumAtBats[lo],
		OnBase:     s.cumOnBase[hi] - s.cumOnBase[lo],
		OBPDenom:   s.cumOBPDenom[hi] - s.cumOBPDenom[lo],
		TotalBases: s.cumTotalBases[hi] - s.cumTotalBases[lo],
	}
}
