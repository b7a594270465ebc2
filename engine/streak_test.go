package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func dayOffset(today string, days int) string {
	d, _ := ParseDayKey(today)
	return DayKeyFor(d.AddDate(0, 0, days), time.UTC)
}

func TestCalculateStreakEmpty(t *testing.T) {
	assert.Equal(t, 0, CalculateStreak(map[string]int{}, "2026-09-01", 1))
	assert.Equal(t, 0, CalculateStreak(nil, "2026-09-01", 1))
}

func TestCalculateStreakToday(t *testing.T) {
	today := "2026-09-01"
	assert.Equal(t, 1, CalculateStreak(map[string]int{today: 1}, today, 1))
}

func TestCalculateStreakGraceDay(t *testing.T) {
	// Nothing logged today yet: streak from yesterday backwards still counts.
	today := "2026-09-01"
	tally := map[string]int{
		dayOffset(today, -1): 1,
		dayOffset(today, -2): 1,
	}
	assert.Equal(t, 2, CalculateStreak(tally, today, 1))
}

func TestCalculateStreakBrokenBeforeYesterday(t *testing.T) {
	today := "2026-09-01"
	tally := map[string]int{
		dayOffset(today, -2): 3,
		dayOffset(today, -3): 3,
	}
	assert.Equal(t, 0, CalculateStreak(tally, today, 1))
}

func TestCalculateStreakGapBreaksChain(t *testing.T) {
	// Today and two-days-ago but not yesterday: only today counts.
	today := "2026-09-01"
	tally := map[string]int{
		today:                1,
		dayOffset(today, -2): 1,
	}
	assert.Equal(t, 1, CalculateStreak(tally, today, 1))
}

func TestCalculateStreakThresholdActsAsGap(t *testing.T) {
	today := "2026-09-01"
	tally := map[string]int{
		today:                2,
		dayOffset(today, -1): 1, // below threshold → gap
		dayOffset(today, -2): 2,
	}
	assert.Equal(t, 1, CalculateStreak(tally, today, 2))
}

func TestCalculateStreakLongChain(t *testing.T) {
	today := "2026-09-01"
	tally := map[string]int{}
	for i := 0; i < 14; i++ {
		tally[dayOffset(today, -i)] = 1
	}
	assert.Equal(t, 14, CalculateStreak(tally, today, 1))
}

func TestCalculateStreakAcrossMonthBoundary(t *testing.T) {
	today := "2026-03-02"
	tally := map[string]int{
		"2026-03-02": 1,
		"2026-03-01": 1,
		"2026-02-28": 1,
		"2026-02-27": 1,
	}
	assert.Equal(t, 4, CalculateStreak(tally, today, 1))
}

func TestCalculateStreakIgnoresMapOrderAndBadKeys(t *testing.T) {
	today := "2026-09-01"
	tally := map[string]int{
		dayOffset(today, -2): 1,
		"not-a-date":         9,
		today:                1,
		dayOffset(today, -1): 1,
	}
	assert.Equal(t, 3, CalculateStreak(tally, today, 1))
}

func TestCalculateStreakInvalidToday(t *testing.T) {
	assert.Equal(t, 0, CalculateStreak(map[string]int{"2026-09-01": 1}, "bogus", 1))
}

func TestCalculateStreakWithFreezes(t *testing.T) {
	today := "2026-09-01"
	tally := map[string]int{
		today:                1,
		dayOffset(today, -2): 1,
		dayOffset(today, -3): 1,
	}
	frozen := map[string]bool{dayOffset(today, -1): true}

	// The frozen day bridges the gap without counting itself.
	assert.Equal(t, 3, CalculateStreakWithFreezes(tally, frozen, today, 1))
	// Without the freeze the same tally collapses to just today.
	assert.Equal(t, 1, CalculateStreakWithFreezes(tally, nil, today, 1))
}

func TestCalculateStreakFrozenYesterdayKeepsChainAlive(t *testing.T) {
	// Nothing logged today, yesterday covered by a freeze: the chain
	// below the freeze still stands.
	today := "2026-09-01"
	tally := map[string]int{
		dayOffset(today, -2): 1,
		dayOffset(today, -3): 1,
	}
	frozen := map[string]bool{dayOffset(today, -1): true}

	assert.Equal(t, 2, CalculateStreakWithFreezes(tally, frozen, today, 1))
	// The freeze protects exactly that; without it the streak is dead.
	assert.Equal(t, 0, CalculateStreakWithFreezes(tally, nil, today, 1))
}

func TestCalculateStreakFrozenRunBridgesToEarlierDays(t *testing.T) {
	// Two consecutive freezes carry the grace window back two days.
	today := "2026-09-01"
	tally := map[string]int{
		dayOffset(today, -3): 1,
		dayOffset(today, -4): 1,
	}
	frozen := map[string]bool{
		dayOffset(today, -1): true,
		dayOffset(today, -2): true,
	}

	assert.Equal(t, 2, CalculateStreakWithFreezes(tally, frozen, today, 1))
	// A hole in the frozen run still breaks the chain.
	delete(frozen, dayOffset(today, -2))
	assert.Equal(t, 0, CalculateStreakWithFreezes(tally, frozen, today, 1))
}

func TestCalculateStreakIdempotent(t *testing.T) {
	today := "2026-09-01"
	tally := map[string]int{
		today:                1,
		dayOffset(today, -1): 2,
		dayOffset(today, -2): 1,
	}
	first := CalculateStreak(tally, today, 1)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, CalculateStreak(tally, today, 1))
	}
}
