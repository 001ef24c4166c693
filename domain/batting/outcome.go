package batting

// Outcome classifies how a plate appearance ended.
type Outcome int

const (
	OutcomeOut Outcome = iota
	OutcomeSingle
	OutcomeDouble
	OutcomeTriple
	OutcomeHomeRun
	OutcomeWalk
	OutcomeHitByPitch
	OutcomeSacrifice
	OutcomeOther // non-counting events such as catcher's interference
)

// eventOutcomes maps Statcast `events` values to outcome classes. Rows with
// an empty or unknown events value are not plate-appearance outcomes and are
// dropped upstream.
var eventOutcomes = map[string]Outcome{
	"single":   OutcomeSingle,
	"double":   OutcomeDouble,
	"triple":   OutcomeTriple,
	"home_run": OutcomeHomeRun,

	"walk":         OutcomeWalk,
	"intent_walk":  OutcomeWalk,
	"hit_by_pitch": OutcomeHitByPitch,

	"sac_fly":              OutcomeSacrifice,
	"sac_fly_double_play":  OutcomeSacrifice,
	"sac_bunt":             OutcomeSacrifice,
	"sac_bunt_double_play": OutcomeSacrifice,

	"strikeout":                 OutcomeOut,
	"strikeout_double_play":     OutcomeOut,
	"field_out":                 OutcomeOut,
	"force_out":                 OutcomeOut,
	"grounded_into_double_play": OutcomeOut,
	"double_play":               OutcomeOut,
	"triple_play":               OutcomeOut,
	"fielders_choice":           OutcomeOut,
	"fielders_choice_out":       OutcomeOut,
	"field_error":               OutcomeOut, // reached on error: an at-bat, not a hit, not on base
	"other_out":                 OutcomeOut,

	"catcher_interf": OutcomeOther,
	"truncated_pa":   OutcomeOther,
}

// ClassifyEvent maps a raw event string to an Outcome. The second return is
// false for events that do not end a plate appearance.
func ClassifyEvent(event string) (Outcome, bool) {
	o, ok := eventOutcomes[event]
	return o, ok
}

// IsHit reports whether the outcome counts as a hit.
func (o Outcome) IsHit() bool {
	switch o {
	case OutcomeSingle, OutcomeDouble, OutcomeTriple, OutcomeHomeRun:
		return true
	}
	return false
}

// TotalBases returns the total bases credited for the outcome.
func (o Outcome) TotalBases() int {
	switch o {
	case OutcomeSingle:
		return 1
	case OutcomeDouble:
		return 2
	case OutcomeTriple:
		return 3
	case OutcomeHomeRun:
		return 4
	}
	return 0
}

// IsAtBat reports whether the outcome counts as an official at-bat
// (AVG and SLG denominators). Walks, hit-by-pitches, sacrifices and
// non-counting events are excluded.
func (o Outcome) IsAtBat() bool {
	switch o {
	case OutcomeWalk, OutcomeHitByPitch, OutcomeSacrifice, OutcomeOther:
		return false
	}
	return true
}

// IsOnBase reports whether the batter reached base (OBP numerator).
func (o Outcome) IsOnBase() bool {
	switch o {
	case OutcomeWalk, OutcomeHitByPitch:
		return true
	}
	return o.IsHit()
}

// InOBPDenominator reports whether the appearance counts toward the OBP
// denominator: at-bats plus walks, hit-by-pitches and sacrifices.
// Catcher's interference and similar events count nowhere.
func (o Outcome) InOBPDenominator() bool {
	return o != OutcomeOther
}

func (o Outcome) String() string {
	switch o {
	case OutcomeOut:
		return "out"
	case OutcomeSingle:
		return "single"
	case OutcomeDouble:
		return "double"
	case OutcomeTriple:
		return "triple"
	case OutcomeHomeRun:
		return "home_run"
	case OutcomeWalk:
		return "walk"
	case OutcomeHitByPitch:
		return "hit_by_pitch"
	case OutcomeSacrifice:
		return "sacrifice"
	case OutcomeOther:
		return "other"
	}
	return "unknown"
}
