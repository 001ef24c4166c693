package batting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyEvent_CountingRules(t *testing.T) {
	cases := []struct {
		event      string
		outcome    Outcome
		hit        bool
		atBat      bool
		onBase     bool
		obpDenom   bool
		totalBases int
	}{
		{"single", OutcomeSingle, true, true, true, true, 1},
		{"double", OutcomeDouble, true, true, true, true, 2},
		{"triple", OutcomeTriple, true, true, true, true, 3},
		{"home_run", OutcomeHomeRun, true, true, true, true, 4},
		{"walk", OutcomeWalk, false, false, true, true, 0},
		{"intent_walk", OutcomeWalk, false, false, true, true, 0},
		{"hit_by_pitch", OutcomeHitByPitch, false, false, true, true, 0},
		{"sac_fly", OutcomeSacrifice, false, false, false, true, 0},
		{"sac_bunt", OutcomeSacrifice, false, false, false, true, 0},
		{"strikeout", OutcomeOut, false, true, false, true, 0},
		{"field_out", OutcomeOut, false, true, false, true, 0},
		{"grounded_into_double_play", OutcomeOut, false, true, false, true, 0},
		{"field_error", OutcomeOut, false, true, false, true, 0},
		{"catcher_interf", OutcomeOther, false, false, false, false, 0},
		{"truncated_pa", OutcomeOther, false, false, false, false, 0},
	}

	for _, tc := range cases {
		outcome, ok := ClassifyEvent(tc.event)
		assert.True(t, ok, "event %q should classify", tc.event)
		assert.Equal(t, tc.outcome, outcome, "event %q", tc.event)
		assert.Equal(t, tc.hit, outcome.IsHit(), "IsHit for %q", tc.event)
		assert.Equal(t, tc.atBat, outcome.IsAtBat(), "IsAtBat for %q", tc.event)
		assert.Equal(t, tc.onBase, outcome.IsOnBase(), "IsOnBase for %q", tc.event)
		assert.Equal(t, tc.obpDenom, outcome.InOBPDenominator(), "InOBPDenominator for %q", tc.event)
		assert.Equal(t, tc.totalBases, outcome.TotalBases(), "TotalBases for %q", tc.event)
	}
}

func TestClassifyEvent_UnknownEventsRejected(t *testing.T) {
	for _, event := range []string{"", "wild_pitch", "stolen_base_2b", "pickoff_1b"} {
		_, ok := ClassifyEvent(event)
		assert.False(t, ok, "event %q should not classify as a plate appearance", event)
	}
}

func TestOrderKey_Ordering(t *testing.T) {
	d1 := date(2021, 4, 1)
	d2 := date(2021, 4, 2)

	a := OrderKey{GameDate: d1, GamePK: 100, AtBatNumber: 5}
	b := OrderKey{GameDate: d1, GamePK: 100, AtBatNumber: 9}
	c := OrderKey{GameDate: d1, GamePK: 101, AtBatNumber: 1}
	d := OrderKey{GameDate: d2, GamePK: 90, AtBatNumber: 1}

	assert.True(t, a.Less(b))
	assert.True(t, b.Less(c))
	assert.True(t, c.Less(d))
	assert.False(t, d.Less(a))
	assert.True(t, a.Equal(OrderKey{GameDate: d1, GamePK: 100, AtBatNumber: 5}))
	assert.False(t, a.Equal(b))
}
