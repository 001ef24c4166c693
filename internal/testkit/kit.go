// Package testkit provides deterministic synthetic plate-appearance data for
// tests. Generated seasons are seeded, so every test run sees identical
// events.
package testkit

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"recentstats/domain/batting"
	"recentstats/internal/sequence"
)

// GeneratorConfig controls the synthetic season generator.
type GeneratorConfig struct {
	Players      int
	GamesPerYear int
	PAsPerGame   int
	StartYear    int
	EndYear      int
	Seed         int64
}

// DefaultGeneratorConfig returns a small but non-trivial dataset.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Players:      5,
		GamesPerYear: 40,
		PAsPerGame:   4,
		StartYear:    2021,
		EndYear:      2022,
		Seed:         1,
	}
}

// outcomeWeights approximates league-wide outcome frequencies; exact values
// are irrelevant to the tests, determinism is not.
var outcomeWeights = []struct {
	event  string
	weight int
}{
	{"field_out", 40},
	{"strikeout", 22},
	{"single", 15},
	{"walk", 8},
	{"double", 5},
	{"home_run", 3},
	{"grounded_into_double_play", 2},
	{"triple", 1},
	{"hit_by_pitch", 1},
	{"sac_fly", 1},
	{"sac_bunt", 1},
	{"field_error", 1},
}

// GenerateEvents produces a shuffled synthetic event table. Shuffling
// exercises the builder's explicit sort: consumers must never rely on row
// order.
func GenerateEvents(cfg GeneratorConfig) []sequence.Event {
	rng := rand.New(rand.NewSource(cfg.Seed))

	total := 0
	for _, w := range outcomeWeights {
		total += w.weight
	}

	var events []sequence.Event
	gamePK := int64(100000)
	for year := cfg.StartYear; year <= cfg.EndYear; year++ {
		for game := 0; game < cfg.GamesPerYear; game++ {
			// Spread games across April through September.
			gameDate := time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC).
				AddDate(0, 0, game*180/maxInt(cfg.GamesPerYear, 1))
			gamePK++
			atBat := 0
			for pa := 0; pa < cfg.PAsPerGame; pa++ {
				for player := 0; player < cfg.Players; player++ {
					atBat++
					events = append(events, sequence.Event{
						PlayerID:    int64(1000 + player),
						GameDate:    gameDate,
						GamePK:      gamePK,
						AtBatNumber: atBat,
						EventType:   drawEvent(rng, total),
					})
				}
			}
		}
	}

	rng.Shuffle(len(events), func(i, j int) {
		events[i], events[j] = events[j], events[i]
	})

	return events
}

// BuildSequences runs the sequence builder over synthetic events with no
// minimum-appearance filter.
func BuildSequences(events []sequence.Event) []*batting.PlayerSequence {
	seqs, _ := sequence.Build(events, 0)
	return seqs
}

// CSVDocument renders events as a Statcast-shaped CSV document, including
// pitch-level rows with an empty events column so readers must filter them.
func CSVDocument(events []sequence.Event) string {
	var b strings.Builder
	b.WriteString("pitch_type,game_date,batter,events,game_pk,at_bat_number\n")
	for _, ev := range events {
		date := ev.GameDate.Format("2006-01-02")
		b.WriteString("FF," + date + "," + formatInt(ev.PlayerID) + "," + ev.EventType + "," +
			formatInt(ev.GamePK) + "," + formatInt(int64(ev.AtBatNumber)) + "\n")
		// Interleave a pitch row that did not end the plate appearance.
		b.WriteString("SL," + date + "," + formatInt(ev.PlayerID) + ",," +
			formatInt(ev.GamePK) + "," + formatInt(int64(ev.AtBatNumber)) + "\n")
	}
	return b.String()
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func drawEvent(rng *rand.Rand, total int) string {
	n := rng.Intn(total)
	for _, w := range outcomeWeights {
		if n < w.weight {
			return w.event
		}
		n -= w.weight
	}
	return outcomeWeights[0].event
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
