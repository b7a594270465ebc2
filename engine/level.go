package engine

import "math"

// LevelState is the full breakdown of a user's position on the level
// curve, derived from lifetime XP alone.
type LevelState struct {
	Level          int   `json:"level"`
	XPForNextLevel int64 `json:"xp_for_next_level"`
	Progress       int64 `json:"progress"`
	TotalToNext    int64 `json:"total_to_next"`
	Percent        int   `json:"percent"`
}

// CalculateLevel maps cumulative lifetime XP to a level using an
// inverse-quadratic curve: level = floor(sqrt(xp) / k). Each level spans
// quadratically more XP than the last — fast early levels, long late
// grind, no lookup table. Negative XP clamps to zero; k <= 0 falls back
// to DefaultLevelScale.
func CalculateLevel(totalXP int64, k int) LevelState {
	if k <= 0 {
		k = DefaultLevelScale
	}
	safeXP := totalXP
	if safeXP < 0 {
		safeXP = 0
	}

	level := int(math.Sqrt(float64(safeXP))) / k

	floorXP := int64(level*k) * int64(level*k)
	nextXP := int64((level+1)*k) * int64((level+1)*k)

	progress := safeXP - floorXP
	totalToNext := nextXP - floorXP

	percent := int(progress * 100 / totalToNext)
	if percent > 100 {
		percent = 100
	}

	return LevelState{
		Level:          level,
		XPForNextLevel: nextXP,
		Progress:       progress,
		TotalToNext:    totalToNext,
		Percent:        percent,
	}
}
