// Package sequence turns a raw plate-appearance event table into per-player
// chronological sequences with precomputed counting values. It is the first
// stage of the rolling-correlation pipeline and is agnostic to how the event
// table was obtained.
package sequence

import (
	"sort"
	"time"

	"recentstats/domain/batting"
)

// Event is one row of the in-memory event table: a plate-appearance-ending
// record with its ordering fields. Adapters produce these from the raw
// dataset; pitch-level rows never reach this layer.
type Event struct {
	PlayerID    int64
	GameDate    time.Time
	GamePK      int64
	AtBatNumber int
	EventType   string // raw outcome string, e.g. "single", "strikeout"
}

// BuildStats counts what happened during sequence construction.
type BuildStats struct {
	TotalEvents     int
	UnknownOutcome  int // outcome string not a plate-appearance outcome
	MissingOrderKey int // no usable chronological key
	DuplicateKey    int // collided with an earlier appearance for the player
	PlayersSkipped  int // below the minimum plate-appearance threshold
	PlayersKept     int
	AppearancesKept int
}

// Build groups events by player, classifies outcomes, establishes a strict
// chronological order and returns the resulting sequences sorted by player
// id. Unusable rows are dropped, never fatal.
func Build(events []Event, minPlayerPA int) ([]*batting.PlayerSequence, BuildStats) {
	stats := BuildStats{TotalEvents: len(events)}

	byPlayer := make(map[int64][]batting.PlateAppearance)
	for _, ev := range events {
		outcome, ok := batting.ClassifyEvent(ev.EventType)
		if !ok {
			stats.UnknownOutcome++
			continue
		}
		if ev.GameDate.IsZero() || ev.GamePK == 0 || ev.AtBatNumber == 0 {
			stats.MissingOrderKey++
			continue
		}
		byPlayer[ev.PlayerID] = append(byPlayer[ev.PlayerID], batting.PlateAppearance{
			PlayerID: ev.PlayerID,
			Order:    orderKey(ev),
			Outcome:  outcome,
		})
	}

	playerIDs := make([]int64, 0, len(byPlayer))
	for id := range byPlayer {
		playerIDs = append(playerIDs, id)
	}
	sort.Slice(playerIDs, func(i, j int) bool { return playerIDs[i] < playerIDs[j] })

	sequences := make([]*batting.PlayerSequence, 0, len(playerIDs))
	for _, id := range playerIDs {
		pas := byPlayer[id]
		sort.SliceStable(pas, func(i, j int) bool { return pas[i].Order.Less(pas[j].Order) })

		// Colliding order keys violate the per-player invariant; keep the
		// first record and drop the rest.
		deduped := pas[:0]
		for i, pa := range pas {
			if i > 0 && pa.Order.Equal(deduped[len(deduped)-1].Order) {
				stats.DuplicateKey++
				continue
			}
			deduped = append(deduped, pa)
		}

		if len(deduped) < minPlayerPA {
			stats.PlayersSkipped++
			continue
		}

		stats.PlayersKept++
		stats.AppearancesKept += len(deduped)
		sequences = append(sequences, batting.NewPlayerSequence(id, deduped))
	}

	return sequences, stats
}

func orderKey(ev Event) batting.OrderKey {
	return batting.OrderKey{
		GameDate:    ev.GameDate,
		GamePK:      ev.GamePK,
		AtBatNumber: ev.AtBatNumber,
	}
}
