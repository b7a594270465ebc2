// Package engine is the deterministic scoring core of the habit game.
// Every function here is pure: plain data in, plain data out, no I/O and
// no shared state. History is authoritative — callers re-run these
// functions over the event log instead of trusting stored counters.
package engine

import "math"

// Tuning constants. Changing these changes scoring retroactively on the
// next recompute, which is the intended event-sourced behavior.
const (
	StreakBonusPerDay   = 0.05
	MaxStreakMultiplier = 2.0
	DefaultLevelScale   = 10
)

// DiminishingReturns is the per-day repetition factor for one action:
// 1st occurrence 100%, 2nd 60%, 3rd 30%, 4th and beyond 10%.
var DiminishingReturns = []float64{1.0, 0.6, 0.3, 0.1}

// CalculateXP returns the XP yield for a single logged occurrence.
// countToday is 1-indexed and includes this occurrence.
//
// Penalty actions (baseXP < 0) bypass diminishing returns and the
// multiplier entirely: no streak should blunt a penalty and repetition
// should not soften it.
func CalculateXP(baseXP int, countToday int, streakMultiplier float64, intensity int) int {
	if intensity <= 0 {
		intensity = 1
	}
	if baseXP < 0 {
		return baseXP * intensity
	}

	idx := countToday - 1
	if idx < 0 {
		idx = 0
	}
	if idx > len(DiminishingReturns)-1 {
		idx = len(DiminishingReturns) - 1
	}

	raw := float64(baseXP) * float64(intensity) * DiminishingReturns[idx] * streakMultiplier
	return int(math.Floor(raw + 0.5))
}

// CalculateCoins returns the coin yield for a single logged occurrence.
// Coins gate the shop, so the farming cutoff is a hard cliff rather than
// XP's smooth decay: full value for the first two occurrences, nothing
// from the third on.
func CalculateCoins(baseCoin int, countToday int) int {
	if baseCoin <= 0 {
		return 0
	}
	if countToday > 2 {
		return 0
	}
	return baseCoin
}

// CalculateMultiplier maps a streak length to the XP multiplier:
// 1.0 + 5% per consecutive day, capped at 2x.
func CalculateMultiplier(streakDays int) float64 {
	if streakDays < 0 {
		streakDays = 0
	}
	m := 1.0 + float64(streakDays)*StreakBonusPerDay
	if m > MaxStreakMultiplier {
		return MaxStreakMultiplier
	}
	return m
}
