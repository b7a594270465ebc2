package models

import (
	"time"

	"habit-game-system/engine"
)

// QuestType is the cadence of a quest instance.
type QuestType string

const (
	QuestDaily  QuestType = "daily"
	QuestWeekly QuestType = "weekly"
	QuestBoss   QuestType = "boss"
)

// QuestStatus is the lifecycle of a quest instance. The engine never
// touches status; only the quest service and the expiry sweep do.
type QuestStatus string

const (
	QuestActive  QuestStatus = "active"
	QuestDone    QuestStatus = "done"
	QuestExpired QuestStatus = "expired"
)

// Quest is a per-user generated instance of a template. The rule is
// stored flattened (one discriminator + count) rather than as loose
// JSON, so evaluation inputs are validated at generation time.
type Quest struct {
	ID     string      `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID string      `gorm:"index;not null" json:"user_id"`
	Type   QuestType   `gorm:"type:varchar(8);not null;index" json:"type"`
	Title  string      `gorm:"not null" json:"title"`
	Status QuestStatus `gorm:"type:varchar(8);not null;default:'active';index" json:"status"`

	// Rule: exactly one of ActionKey/Category is set.
	ActionKey   string `gorm:"type:varchar(64)" json:"action_key,omitempty"`
	Category    string `gorm:"type:varchar(16)" json:"category,omitempty"`
	TargetCount int    `gorm:"not null;default:1" json:"target_count"`

	RewardXP   int `gorm:"not null" json:"reward_xp"`
	RewardCoin int `gorm:"not null" json:"reward_coin"`

	// Active window as day keys, inclusive.
	StartDay string `gorm:"type:varchar(10);not null;index" json:"start_day"`
	EndDay   string `gorm:"type:varchar(10);not null;index" json:"end_day"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`

	Timestamps
}

// Rule returns the engine-facing evaluation rule.
func (q *Quest) Rule() engine.QuestRule {
	return engine.QuestRule{ActionKey: q.ActionKey, Category: q.Category, Count: q.TargetCount}
}

// QuestTemplate is a catalog entry quests are generated from.
type QuestTemplate struct {
	Type       QuestType
	Title      string
	Rule       engine.QuestRule
	RewardXP   int
	RewardCoin int
}

// DailyQuestTemplates is the pool the daily rotation draws 3 from.
var DailyQuestTemplates = []QuestTemplate{
	{Type: QuestDaily, Title: "Hit the Gym", RewardXP: 100, RewardCoin: 10, Rule: engine.QuestRule{ActionKey: "gym_workout", Count: 1}},
	{Type: QuestDaily, Title: "Stay Hydrated", RewardXP: 20, RewardCoin: 2, Rule: engine.QuestRule{ActionKey: "drink_water", Count: 3}},
	{Type: QuestDaily, Title: "Read a bit", RewardXP: 30, RewardCoin: 5, Rule: engine.QuestRule{ActionKey: "read_10p", Count: 1}},
	{Type: QuestDaily, Title: "Meditate", RewardXP: 30, RewardCoin: 5, Rule: engine.QuestRule{ActionKey: "meditate_10m", Count: 1}},
	{Type: QuestDaily, Title: "Pushup Master", RewardXP: 40, RewardCoin: 5, Rule: engine.QuestRule{ActionKey: "pushups_20", Count: 2}},
	{Type: QuestDaily, Title: "Focus Time", RewardXP: 60, RewardCoin: 10, Rule: engine.QuestRule{ActionKey: "deep_work", Count: 1}},
}

// WeeklyQuestTemplates is the pool the weekly rotation draws 1 from.
var WeeklyQuestTemplates = []QuestTemplate{
	{Type: QuestWeekly, Title: "Weekly Warrior (Gym)", RewardXP: 300, RewardCoin: 50, Rule: engine.QuestRule{ActionKey: "gym_workout", Count: 3}},
	{Type: QuestWeekly, Title: "Bookworm", RewardXP: 200, RewardCoin: 30, Rule: engine.QuestRule{ActionKey: "read_10p", Count: 5}},
	{Type: QuestWeekly, Title: "Zen Master", RewardXP: 200, RewardCoin: 30, Rule: engine.QuestRule{ActionKey: "meditate_10m", Count: 5}},
}
