package batting

import "time"

// OrderKey establishes a strict chronological order for one player's plate
// appearances across seasons. Row order in the source table is never trusted.
type OrderKey struct {
	GameDate    time.Time
	GamePK      int64 // MLB game identifier, monotonic tiebreak within a date
	AtBatNumber int   // at-bat sequence number within the game
}

// Less reports whether k sorts strictly before other.
func (k OrderKey) Less(other OrderKey) bool {
	if !k.GameDate.Equal(other.GameDate) {
		return k.GameDate.Before(other.GameDate)
	}
	if k.GamePK != other.GamePK {
		return k.GamePK < other.GamePK
	}
	return k.AtBatNumber < other.AtBatNumber
}

// Equal reports whether two keys collide. Colliding keys for the same player
// violate the sequence invariant and the later record is dropped.
func (k OrderKey) Equal(other OrderKey) bool {
	return k.GameDate.Equal(other.GameDate) &&
		k.GamePK == other.GamePK &&
		k.AtBatNumber == other.AtBatNumber
}

// PlateAppearance is one realized batter event.
type PlateAppearance struct {
	PlayerID int64
	Order    OrderKey
	Outcome  Outcome
}
