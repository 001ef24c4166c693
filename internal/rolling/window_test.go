package rolling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recentstats/domain/batting"
)

func sequenceOf(outcomes ...batting.Outcome) *batting.PlayerSequence {
	pas := make([]batting.PlateAppearance, len(outcomes))
	for i, o := range outcomes {
		pas[i] = batting.PlateAppearance{
			PlayerID: 1,
			Order: batting.OrderKey{
				GameDate:    time.Date(2021, time.April, 1, 0, 0, 0, 0, time.UTC),
				GamePK:      1,
				AtBatNumber: i + 1,
			},
			Outcome: o,
		}
	}
	return batting.NewPlayerSequence(1, pas)
}

func collect(seq *batting.PlayerSequence, window int) []Record {
	var recs []Record
	ForWindow(seq, window, func(r Record) { recs = append(recs, r) })
	return recs
}

func TestForWindow_AlternatingOutHit(t *testing.T) {
	// out, hit, out, hit, ... Every window of two consecutive appearances
	// holds exactly one hit and two at-bats, so rolling AVG is 0.5 at every
	// eligible index while the label alternates with the appearance itself.
	outcomes := make([]batting.Outcome, 8)
	for i := range outcomes {
		if i%2 == 1 {
			outcomes[i] = batting.OutcomeSingle
		} else {
			outcomes[i] = batting.OutcomeOut
		}
	}

	recs := collect(sequenceOf(outcomes...), 2)
	require.Len(t, recs, 6) // indices 2..7

	for j, rec := range recs {
		i := j + 2 // labeled appearance index
		require.True(t, rec.AVGDefined)
		assert.Equal(t, 0.5, rec.AVG, "index %d", i)
		assert.Equal(t, 0.5, rec.SLG, "index %d", i)

		wantNext := 0.0
		if i%2 == 1 {
			wantNext = 1.0
		}
		assert.Equal(t, wantNext, rec.NextHit, "index %d", i)
		assert.Equal(t, wantNext, rec.NextTotalBases, "index %d", i)
	}
}

func TestForWindow_HandDerivedSequence(t *testing.T) {
	// out, out, single, home_run: window 2 yields records at i=2 and i=3.
	recs := collect(sequenceOf(
		batting.OutcomeOut,
		batting.OutcomeOut,
		batting.OutcomeSingle,
		batting.OutcomeHomeRun,
	), 2)
	require.Len(t, recs, 2)

	// i=2: window [0,2) = two outs.
	assert.Equal(t, 0.0, recs[0].AVG)
	assert.Equal(t, 0.0, recs[0].OBP)
	assert.Equal(t, 0.0, recs[0].SLG)
	assert.Equal(t, 1.0, recs[0].NextHit)
	assert.Equal(t, 1.0, recs[0].NextTotalBases)

	// i=3: window [1,3) = out, single.
	assert.Equal(t, 0.5, recs[1].AVG)
	assert.Equal(t, 0.5, recs[1].OBP)
	assert.Equal(t, 0.5, recs[1].SLG)
	assert.Equal(t, 1.0, recs[1].NextHit)
	assert.Equal(t, 4.0, recs[1].NextTotalBases)
}

func TestForWindow_SizeOneUsesImmediatelyPrecedingAppearance(t *testing.T) {
	recs := collect(sequenceOf(
		batting.OutcomeHomeRun,
		batting.OutcomeOut,
		batting.OutcomeWalk,
		batting.OutcomeSingle,
	), 1)
	require.Len(t, recs, 3)

	// i=1: window holds only the home run.
	require.True(t, recs[0].AVGDefined)
	assert.Equal(t, 1.0, recs[0].AVG)
	assert.Equal(t, 4.0, recs[0].SLG)

	// i=2: window holds only the out.
	assert.Equal(t, 0.0, recs[1].AVG)

	// i=3: window holds only the walk: no at-bats, AVG/SLG undefined,
	// OBP defined and 1.0.
	assert.False(t, recs[2].AVGDefined)
	assert.False(t, recs[2].SLGDefined)
	require.True(t, recs[2].OBPDefined)
	assert.Equal(t, 1.0, recs[2].OBP)
}

func TestForWindow_NoLookahead(t *testing.T) {
	// Everything before the final appearance is an out; the final one is a
	// home run. If the window ever leaked the labeled appearance, some
	// rolling statistic would be nonzero.
	outcomes := make([]batting.Outcome, 10)
	for i := range outcomes {
		outcomes[i] = batting.OutcomeOut
	}
	outcomes[9] = batting.OutcomeHomeRun

	for _, w := range []int{1, 3, 9} {
		for _, rec := range collect(sequenceOf(outcomes...), w) {
			assert.Equal(t, 0.0, rec.AVG, "window %d", w)
			assert.Equal(t, 0.0, rec.OBP, "window %d", w)
			assert.Equal(t, 0.0, rec.SLG, "window %d", w)
		}
	}
}

func TestForWindow_ShortSequencesContributeNothing(t *testing.T) {
	seq := sequenceOf(batting.OutcomeSingle, batting.OutcomeOut, batting.OutcomeSingle)

	assert.Empty(t, collect(seq, 3), "window equal to sequence length has no labeled appearance")
	assert.Empty(t, collect(seq, 4))
	assert.Empty(t, collect(seq, 250))
	assert.Len(t, collect(seq, 2), 1)
}

func TestForWindow_ValueRanges(t *testing.T) {
	recs := collect(sequenceOf(
		batting.OutcomeHomeRun,
		batting.OutcomeHomeRun,
		batting.OutcomeWalk,
		batting.OutcomeTriple,
		batting.OutcomeOut,
		batting.OutcomeSacrifice,
		batting.OutcomeSingle,
	), 3)

	require.NotEmpty(t, recs)
	for _, rec := range recs {
		if rec.AVGDefined {
			assert.GreaterOrEqual(t, rec.AVG, 0.0)
			assert.LessOrEqual(t, rec.AVG, 1.0)
		}
		if rec.OBPDefined {
			assert.GreaterOrEqual(t, rec.OBP, 0.0)
			assert.LessOrEqual(t, rec.OBP, 1.0)
		}
		if rec.SLGDefined {
			assert.GreaterOrEqual(t, rec.SLG, 0.0)
			assert.LessOrEqual(t, rec.SLG, 4.0)
		}
	}
}
