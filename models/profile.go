package models

import (
	"time"

	"gorm.io/gorm"
)

// PlayerProfile is the local snapshot of a user plus cached lifetime
// projections. Identity is owned by the profile service behind the
// gateway; the sync worker keeps the mirror columns fresh.
//
// TotalXP and TotalActions are derived projections over event_logs —
// refreshed on every log and reconciled by the scheduler sweep, never
// treated as the source of truth.
type PlayerProfile struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex;not null" json:"external_user_id"` // profile service UUID
	Username       string `gorm:"index" json:"username"`
	Email          string `json:"email,omitempty"`

	// Per-user engine parameters.
	Timezone        string `gorm:"type:varchar(64);default:'UTC'" json:"timezone"`
	StreakThreshold int    `gorm:"default:1" json:"streak_threshold"`
	LevelScale      int    `gorm:"default:10" json:"level_scale"`

	// Cached projections (derived, invalidatable).
	TotalXP      int64 `gorm:"default:0" json:"total_xp"`
	TotalActions int64 `gorm:"default:0" json:"total_actions"`

	LastLevelUpAt *time.Time `json:"last_level_up_at,omitempty"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// RemoteUser mirrors the profile service's users payload (read-only).
// Used by the sync worker to refresh local PlayerProfile rows.
type RemoteUser struct {
	ExternalID string     `json:"external_id"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	Timezone   string     `json:"timezone"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at"` // soft-delete marker
}
