package models

import "time"

// EventLog is one logged occurrence of an action — an immutable fact.
// Rows are created exactly once and never mutated or deleted; all
// aggregates (streak, level, quest progress) are recomputed from these
// rows rather than trusted as stored counters.
//
// ClientID is the caller-supplied idempotency token: the unique index on
// (user_id, client_id) makes a retried submission a no-op instead of a
// double score.
type EventLog struct {
	ID       string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID   string    `gorm:"index;not null;uniqueIndex:idx_event_user_client" json:"user_id"`
	ActionID string    `gorm:"index;not null" json:"action_id"`
	TS       time.Time `gorm:"column:ts;index;not null" json:"ts"`

	// DayKey is the calendar date this event counts toward, derived once
	// at ingestion under the profile's timezone policy. Authoritative:
	// readers never re-truncate TS.
	DayKey string `gorm:"index;not null;type:varchar(10)" json:"day_key"`

	Value    int    `gorm:"not null;default:1" json:"value"` // intensity
	ClientID string `gorm:"not null;uniqueIndex:idx_event_user_client" json:"client_id"`

	// Snapshot of engine output at insertion time, kept so history
	// renders stably even after rule changes.
	FinalXP   int `gorm:"not null" json:"final_xp"`
	FinalCoin int `gorm:"not null" json:"final_coin"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
