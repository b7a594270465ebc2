package engine

import (
	"sort"
	"time"
)

// CalculateStreak returns the current consecutive-day streak from a
// day-key → event-count tally. A day qualifies when its count meets
// threshold (minimum 1). The streak survives one day of total
// inactivity: it is alive if the latest qualifying day is today or
// yesterday. Input order is irrelevant — the tally is sorted internally.
func CalculateStreak(dailyCounts map[string]int, today string, threshold int) int {
	return CalculateStreakWithFreezes(dailyCounts, nil, today, threshold)
}

// CalculateStreakWithFreezes is CalculateStreak with streak-freeze
// support: a day key present in frozenDays may stand in for a missing
// day during the backward walk. Frozen days keep the chain connected
// but do not count toward its length.
func CalculateStreakWithFreezes(dailyCounts map[string]int, frozenDays map[string]bool, today string, threshold int) int {
	if threshold < 1 {
		threshold = 1
	}

	todayDate, err := ParseDayKey(today)
	if err != nil {
		return 0
	}

	var qualifying []time.Time
	for key, count := range dailyCounts {
		if count < threshold {
			continue
		}
		d, err := ParseDayKey(key)
		if err != nil {
			continue
		}
		qualifying = append(qualifying, d)
	}
	if len(qualifying) == 0 {
		return 0
	}

	sort.Slice(qualifying, func(i, j int) bool {
		return qualifying[i].After(qualifying[j])
	})

	// Broken if the latest activity predates yesterday. Frozen days
	// extend the grace window: a freeze covering yesterday (and any
	// frozen run below it) keeps the chain alive before today's first
	// log lands.
	latest := qualifying[0]
	grace := todayDate.AddDate(0, 0, -1)
	for latest.Before(grace) && frozenDays[DayKeyFor(grace, time.UTC)] {
		grace = grace.AddDate(0, 0, -1)
	}
	if latest.Before(grace) {
		return 0
	}

	streak := 0
	expect := latest
	for _, day := range qualifying {
		// Frozen days fill gaps between the expected day and the
		// next real entry without extending the count.
		for day.Before(expect) && frozenDays[DayKeyFor(expect, time.UTC)] {
			expect = expect.AddDate(0, 0, -1)
		}
		if !day.Equal(expect) {
			break
		}
		streak++
		expect = expect.AddDate(0, 0, -1)
	}

	return streak
}
