// Package statcast fetches and parses pitch-level Statcast data from
// Baseball Savant. It is the thin I/O collaborator in front of the core
// pipeline: the core consumes the resulting event table and never touches
// the network or the CSV layout.
package statcast

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"recentstats/internal/errors"
	"recentstats/internal/sequence"
)

// requiredColumns are the dataset columns the pipeline needs. The Statcast
// export carries ~90 columns; everything else is ignored.
var requiredColumns = []string{"game_date", "batter", "events", "game_pk", "at_bat_number"}

// ReadStats counts what the reader saw.
type ReadStats struct {
	TotalRows     int
	PitchRows     int // rows that did not end a plate appearance (empty events)
	MalformedRows int
	EventRows     int
}

// ReadFile parses the cached dataset file into the in-memory event table.
func ReadFile(path string) ([]sequence.Event, ReadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadStats{}, errors.Wrapf(err, "opening dataset %s", path)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a Statcast CSV stream. A missing or column-deficient header is
// fatal; individual rows that fail to parse are dropped and counted.
func Read(r io.Reader) ([]sequence.Event, ReadStats, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, ReadStats{}, errors.DatasetInvalid("dataset has no readable header")
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, ReadStats{}, errors.DatasetInvalid("dataset missing required column " + col)
		}
	}

	var (
		events []sequence.Event
		stats  ReadStats
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			stats.MalformedRows++
			continue
		}
		stats.TotalRows++

		ev, kind := parseRow(rec, idx)
		switch kind {
		case rowPitch:
			stats.PitchRows++
		case rowMalformed:
			stats.MalformedRows++
		case rowEvent:
			stats.EventRows++
			events = append(events, ev)
		}
	}

	return events, stats, nil
}

type rowKind int

const (
	rowEvent rowKind = iota
	rowPitch
	rowMalformed
)

func parseRow(rec []string, idx map[string]int) (sequence.Event, rowKind) {
	field := func(name string) (string, bool) {
		i := idx[name]
		if i >= len(rec) {
			return "", false
		}
		return rec[i], true
	}

	eventType, ok := field("events")
	if !ok {
		return sequence.Event{}, rowMalformed
	}
	// Statcast emits one row per pitch; only the final pitch of a plate
	// appearance carries an events value.
	if eventType == "" || eventType == "null" {
		return sequence.Event{}, rowPitch
	}

	dateStr, ok1 := field("game_date")
	batterStr, ok2 := field("batter")
	gamePKStr, ok3 := field("game_pk")
	atBatStr, ok4 := field("at_bat_number")
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return sequence.Event{}, rowMalformed
	}

	gameDate, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return sequence.Event{}, rowMalformed
	}
	batter, err := strconv.ParseInt(batterStr, 10, 64)
	if err != nil {
		return sequence.Event{}, rowMalformed
	}
	gamePK, err := strconv.ParseInt(gamePKStr, 10, 64)
	if err != nil {
		return sequence.Event{}, rowMalformed
	}
	atBat, err := strconv.Atoi(atBatStr)
	if err != nil {
		return sequence.Event{}, rowMalformed
	}

	return sequence.Event{
		PlayerID:    batter,
		GameDate:    gameDate,
		GamePK:      gamePK,
		AtBatNumber: atBat,
		EventType:   eventType,
	}, rowEvent
}
