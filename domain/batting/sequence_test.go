package batting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func appearances(outcomes ...Outcome) []PlateAppearance {
	pas := make([]PlateAppearance, len(outcomes))
	for i, o := range outcomes {
		pas[i] = PlateAppearance{
			PlayerID: 1,
			Order:    OrderKey{GameDate: date(2021, 4, 1), GamePK: 1, AtBatNumber: i + 1},
			Outcome:  o,
		}
	}
	return pas
}

func TestPlayerSequence_PrefixSums(t *testing.T) {
	seq := NewPlayerSequence(1, appearances(
		OutcomeSingle,    // hit, AB, on base, 1 TB
		OutcomeWalk,      // on base, OBP denom only
		OutcomeOut,       // AB
		OutcomeHomeRun,   // hit, AB, on base, 4 TB
		OutcomeSacrifice, // OBP denom only
		OutcomeOther,     // counts nowhere
	))

	assert.Equal(t, 6, seq.Len())

	full := seq.Sums(0, 6)
	assert.Equal(t, WindowSums{Hits: 2, AtBats: 3, OnBase: 3, OBPDenom: 5, TotalBases: 5}, full)

	// Sums over sub-ranges match direct counting.
	assert.Equal(t, WindowSums{Hits: 1, AtBats: 1, OnBase: 2, OBPDenom: 2, TotalBases: 1}, seq.Sums(0, 2))
	assert.Equal(t, WindowSums{Hits: 1, AtBats: 2, OnBase: 1, OBPDenom: 3, TotalBases: 4}, seq.Sums(2, 5))
	assert.Equal(t, WindowSums{}, seq.Sums(3, 3))
}

func TestPlayerSequence_Empty(t *testing.T) {
	seq := NewPlayerSequence(7, nil)
	assert.Equal(t, 0, seq.Len())
	assert.Equal(t, WindowSums{}, seq.Sums(0, 0))
}
