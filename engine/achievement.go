package engine

// AchievementRuleType discriminates which lifetime stat an achievement
// rule tests.
type AchievementRuleType string

const (
	RuleCount  AchievementRuleType = "count"
	RuleStreak AchievementRuleType = "streak"
	RuleLevel  AchievementRuleType = "level"
)

// AchievementRule is a single stat threshold.
type AchievementRule struct {
	Type   AchievementRuleType `json:"type"`
	Target int                 `json:"target"`
}

// AchievementDef is one catalog entry. The catalog is fixed at runtime;
// instances of unlocks live in storage, not here.
type AchievementDef struct {
	Key         string          `json:"key"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	RewardXP    int             `json:"reward_xp"`
	RewardCoin  int             `json:"reward_coin"`
	Rule        AchievementRule `json:"rule"`
}

// PlayerStats is the aggregate snapshot achievement rules are tested
// against. TotalActions comes from an authoritative lifetime count, not
// from a truncated recent-history window.
type PlayerStats struct {
	TotalActions int64
	Streak       int
	Level        int
}

// EvaluateUnlocks returns the keys of catalog entries newly satisfied by
// stats, in catalog order. Unlocks are monotonic: keys already in
// unlocked are skipped and never re-granted, even if the underlying stat
// later regresses. Persisting the unlock rows is the caller's job.
func EvaluateUnlocks(unlocked map[string]bool, catalog []AchievementDef, stats PlayerStats) []string {
	var newKeys []string
	for _, def := range catalog {
		if unlocked[def.Key] {
			continue
		}

		met := false
		switch def.Rule.Type {
		case RuleCount:
			met = stats.TotalActions >= int64(def.Rule.Target)
		case RuleStreak:
			met = stats.Streak >= def.Rule.Target
		case RuleLevel:
			met = stats.Level >= def.Rule.Target
		}

		if met {
			newKeys = append(newKeys, def.Key)
		}
	}
	return newKeys
}
