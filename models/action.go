package models

import "time"

// ActionCategory is the fixed set of life areas an action belongs to.
type ActionCategory string

const (
	CategoryHealth ActionCategory = "health"
	CategoryMind   ActionCategory = "mind"
	CategoryHustle ActionCategory = "hustle"
)

// Action is an immutable catalog entry describing a loggable habit.
// Seeded once at boot, rarely mutated, never deleted while any event
// references it. Negative XPBase marks a penalty action.
type Action struct {
	ID            string         `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Key           string         `gorm:"uniqueIndex;not null" json:"key"` // e.g., "gym_workout"
	Name          string         `gorm:"not null" json:"name"`
	Category      ActionCategory `gorm:"type:varchar(16);not null" json:"category"`
	XPBase        int            `gorm:"not null" json:"xp_base"`
	CoinBase      int            `gorm:"not null;default:0" json:"coin_base"`
	CooldownHours *int           `json:"cooldown_hours,omitempty"`
	MaxPerDay     *int           `json:"max_per_day,omitempty"`
	IsNegative    bool           `gorm:"default:false" json:"is_negative"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func intPtr(v int) *int { return &v }

// SeedActions is the built-in action catalog, upserted by key at boot.
var SeedActions = []Action{
	// Health
	{Key: "gym_workout", Name: "Gym Workout", Category: CategoryHealth, XPBase: 50, CoinBase: 5, CooldownHours: intPtr(4), MaxPerDay: intPtr(2)},
	{Key: "run_5k", Name: "Run 5km", Category: CategoryHealth, XPBase: 60, CoinBase: 6, CooldownHours: intPtr(12), MaxPerDay: intPtr(1)},
	{Key: "pushups_20", Name: "20 Pushups", Category: CategoryHealth, XPBase: 10, CoinBase: 1, CooldownHours: intPtr(1), MaxPerDay: intPtr(5)},
	{Key: "drink_water", Name: "Drink Water (500ml)", Category: CategoryHealth, XPBase: 5, CoinBase: 0, CooldownHours: intPtr(1), MaxPerDay: intPtr(8)},
	{Key: "cold_shower", Name: "Cold Shower", Category: CategoryHealth, XPBase: 25, CoinBase: 3, CooldownHours: intPtr(6), MaxPerDay: intPtr(2)},

	// Mind
	{Key: "meditate_10m", Name: "Meditate 10m", Category: CategoryMind, XPBase: 20, CoinBase: 2, CooldownHours: intPtr(4), MaxPerDay: intPtr(3)},
	{Key: "read_10p", Name: "Read 10 Pages", Category: CategoryMind, XPBase: 15, CoinBase: 2, CooldownHours: intPtr(1), MaxPerDay: intPtr(10)},
	{Key: "journal", Name: "Journaling", Category: CategoryMind, XPBase: 15, CoinBase: 1, CooldownHours: intPtr(12), MaxPerDay: intPtr(1)},

	// Hustle
	{Key: "learn_code", Name: "Code Session (1h)", Category: CategoryHustle, XPBase: 40, CoinBase: 5, CooldownHours: intPtr(2), MaxPerDay: intPtr(4)},
	{Key: "deep_work", Name: "Deep Work (1h)", Category: CategoryHustle, XPBase: 50, CoinBase: 5, CooldownHours: intPtr(2), MaxPerDay: intPtr(4)},

	// Bad habits (penalties — no coins, no cooldowns, honesty is the point)
	{Key: "smoke", Name: "Smoke Cigarette", Category: CategoryHealth, XPBase: -20, IsNegative: true},
	{Key: "alcohol", Name: "Drink Alcohol", Category: CategoryHealth, XPBase: -30, IsNegative: true},
	{Key: "junk_food", Name: "Eat Junk Food", Category: CategoryHealth, XPBase: -25, IsNegative: true},
	{Key: "doomscroll", Name: "Doomscroll (>30m)", Category: CategoryMind, XPBase: -15, IsNegative: true},
	{Key: "skip_workout", Name: "Skip Planned Workout", Category: CategoryHealth, XPBase: -40, IsNegative: true},
	{Key: "procrastinate", Name: "Procrastinate", Category: CategoryHustle, XPBase: -20, IsNegative: true},
	{Key: "stay_up_late", Name: "Stay Up Late (>1am)", Category: CategoryHealth, XPBase: -30, IsNegative: true},
}
