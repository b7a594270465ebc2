package engine

import "time"

// Day keys are YYYY-MM-DD strings. The event log stores the day an event
// counts toward explicitly, derived once at ingestion under a single
// timezone policy — readers never re-truncate timestamps, so a roaming
// client cannot split one calendar day across two keys.
const dayKeyLayout = "2006-01-02"

// DayKeyFor returns the day key for t under the given location.
// A nil location means UTC.
func DayKeyFor(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(dayKeyLayout)
}

// ParseDayKey parses a day key into a UTC midnight time.
func ParseDayKey(key string) (time.Time, error) {
	return time.ParseInLocation(dayKeyLayout, key, time.UTC)
}
