package models

import (
	"time"

	"habit-game-system/engine"
)

// AchievementType: static catalog entry (seeded at boot, never mutated
// at runtime).
type AchievementType struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Key         string `gorm:"uniqueIndex;not null" json:"key"` // e.g., "first_step"
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Icon        string `gorm:"size:10" json:"icon"`

	RuleType   engine.AchievementRuleType `gorm:"type:varchar(8);not null" json:"rule_type"`
	RuleTarget int                        `gorm:"not null" json:"rule_target"`

	RewardXP   int       `gorm:"not null" json:"reward_xp"`
	RewardCoin int       `gorm:"not null" json:"reward_coin"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Def returns the engine-facing definition.
func (a *AchievementType) Def() engine.AchievementDef {
	return engine.AchievementDef{
		Key:         a.Key,
		Name:        a.Name,
		Description: a.Description,
		Icon:        a.Icon,
		RewardXP:    a.RewardXP,
		RewardCoin:  a.RewardCoin,
		Rule:        engine.AchievementRule{Type: a.RuleType, Target: a.RuleTarget},
	}
}

// UserAchievement: a one-time unlock fact. The unique index on
// (external_user_id, achievement_key) is what makes unlocks exactly-once
// under concurrent evaluation — the write serializes, not the check.
type UserAchievement struct {
	ID             string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string    `gorm:"not null;uniqueIndex:idx_user_achievement" json:"external_user_id"`
	AchievementKey string    `gorm:"not null;uniqueIndex:idx_user_achievement" json:"achievement_key"`
	UnlockedAt     time.Time `gorm:"autoCreateTime" json:"unlocked_at"`
}

// SeedAchievements is the built-in achievement catalog.
var SeedAchievements = []AchievementType{
	{Key: "first_step", Name: "First Step", Description: "Log your first action.", Icon: "👣", RewardXP: 50, RewardCoin: 10, RuleType: engine.RuleCount, RuleTarget: 1},
	{Key: "century_club", Name: "Century Club", Description: "Log 100 actions.", Icon: "💯", RewardXP: 300, RewardCoin: 60, RuleType: engine.RuleCount, RuleTarget: 100},
	{Key: "consistent_3", Name: "Consistent", Description: "Maintain a 3-day streak.", Icon: "🔥", RewardXP: 100, RewardCoin: 20, RuleType: engine.RuleStreak, RuleTarget: 3},
	{Key: "disciplined_7", Name: "Disciplined", Description: "Maintain a 7-day streak.", Icon: "🛡️", RewardXP: 500, RewardCoin: 100, RuleType: engine.RuleStreak, RuleTarget: 7},
	{Key: "relentless_30", Name: "Relentless", Description: "Maintain a 30-day streak.", Icon: "⚡", RewardXP: 2000, RewardCoin: 400, RuleType: engine.RuleStreak, RuleTarget: 30},
	{Key: "hustler_level_1", Name: "Starting Hustle", Description: "Reach Level 5.", Icon: "💼", RewardXP: 200, RewardCoin: 40, RuleType: engine.RuleLevel, RuleTarget: 5},
	{Key: "grinder_level_10", Name: "Grinder", Description: "Reach Level 10.", Icon: "⚙️", RewardXP: 500, RewardCoin: 100, RuleType: engine.RuleLevel, RuleTarget: 10},
}
