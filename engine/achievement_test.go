package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCatalog() []AchievementDef {
	return []AchievementDef{
		{Key: "first_step", Rule: AchievementRule{Type: RuleCount, Target: 1}},
		{Key: "consistent_3", Rule: AchievementRule{Type: RuleStreak, Target: 3}},
		{Key: "disciplined_7", Rule: AchievementRule{Type: RuleStreak, Target: 7}},
		{Key: "hustler_level_1", Rule: AchievementRule{Type: RuleLevel, Target: 5}},
	}
}

func TestEvaluateUnlocksByRuleType(t *testing.T) {
	stats := PlayerStats{TotalActions: 10, Streak: 3, Level: 2}

	keys := EvaluateUnlocks(nil, testCatalog(), stats)
	assert.Equal(t, []string{"first_step", "consistent_3"}, keys, "catalog order preserved")
}

func TestEvaluateUnlocksSkipsAlreadyUnlocked(t *testing.T) {
	stats := PlayerStats{TotalActions: 100, Streak: 10, Level: 9}
	unlocked := map[string]bool{"first_step": true, "consistent_3": true}

	keys := EvaluateUnlocks(unlocked, testCatalog(), stats)
	assert.Equal(t, []string{"disciplined_7", "hustler_level_1"}, keys)
	assert.NotContains(t, keys, "first_step", "unlocks are monotonic")
}

func TestEvaluateUnlocksNeverRevokes(t *testing.T) {
	// Stat regressed below target, but the key stays unlocked — and is
	// not re-granted either.
	stats := PlayerStats{TotalActions: 0, Streak: 0, Level: 0}
	unlocked := map[string]bool{"consistent_3": true}

	keys := EvaluateUnlocks(unlocked, testCatalog(), stats)
	assert.Empty(t, keys)
}

func TestEvaluateUnlocksNothingQualifies(t *testing.T) {
	keys := EvaluateUnlocks(nil, testCatalog(), PlayerStats{})
	assert.Empty(t, keys)
}

func TestEvaluateUnlocksUnknownRuleTypeIgnored(t *testing.T) {
	catalog := []AchievementDef{
		{Key: "mystery", Rule: AchievementRule{Type: "combo", Target: 1}},
	}
	keys := EvaluateUnlocks(nil, catalog, PlayerStats{TotalActions: 999, Streak: 999, Level: 999})
	assert.Empty(t, keys)
}

func TestEvaluateUnlocksIdempotent(t *testing.T) {
	stats := PlayerStats{TotalActions: 5, Streak: 4, Level: 6}
	first := EvaluateUnlocks(nil, testCatalog(), stats)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, EvaluateUnlocks(nil, testCatalog(), stats))
	}
}
