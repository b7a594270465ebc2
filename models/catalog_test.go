package models

import (
	"testing"
	"time"

	"habit-game-system/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedActionsConsistent(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range SeedActions {
		assert.False(t, seen[a.Key], "duplicate action key %s", a.Key)
		seen[a.Key] = true

		if a.IsNegative {
			assert.Less(t, a.XPBase, 0, "%s: negative actions must carry a penalty", a.Key)
			assert.Zero(t, a.CoinBase, "%s: penalties never pay coins", a.Key)
			assert.Nil(t, a.CooldownHours, "%s: penalties have no cooldown", a.Key)
			assert.Nil(t, a.MaxPerDay, "%s: penalties have no daily cap", a.Key)
		} else {
			assert.Greater(t, a.XPBase, 0, "%s: positive actions must yield XP", a.Key)
		}
	}
}

func TestQuestTemplatesReferenceSeededActions(t *testing.T) {
	keys := map[string]bool{}
	for _, a := range SeedActions {
		keys[a.Key] = true
	}

	for _, tmpl := range append(append([]QuestTemplate{}, DailyQuestTemplates...), WeeklyQuestTemplates...) {
		require.NotEmpty(t, tmpl.Title)
		assert.Greater(t, tmpl.Rule.Count, 0, "%s: target must be positive", tmpl.Title)
		assert.Greater(t, tmpl.RewardXP, 0, "%s: quests must pay XP", tmpl.Title)
		if tmpl.Rule.ActionKey != "" {
			assert.True(t, keys[tmpl.Rule.ActionKey], "%s: unknown action %s", tmpl.Title, tmpl.Rule.ActionKey)
		}
	}
}

func TestSeedAchievementsConsistent(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range SeedAchievements {
		assert.False(t, seen[a.Key], "duplicate achievement key %s", a.Key)
		seen[a.Key] = true

		assert.Greater(t, a.RuleTarget, 0, "%s", a.Key)
		def := a.Def()
		assert.Equal(t, a.Key, def.Key)
		assert.Equal(t, engine.AchievementRule{Type: a.RuleType, Target: a.RuleTarget}, def.Rule)
	}
}

func TestShopItemByKey(t *testing.T) {
	item := ShopItemByKey("xp_boost_2x")
	require.NotNil(t, item)
	assert.Equal(t, int64(100), item.Cost)

	assert.Nil(t, ShopItemByKey("nonexistent"))
}

func TestPurchaseIsActive(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)
	earlier := now.Add(-time.Hour)

	active := Purchase{ActiveUntil: &later}
	assert.True(t, active.IsActive(now))

	expired := Purchase{ActiveUntil: &earlier}
	assert.False(t, expired.IsActive(now))

	consumed := Purchase{ActiveUntil: &later, ConsumedAt: &earlier}
	assert.False(t, consumed.IsActive(now))

	consumable := Purchase{} // no effect window at all
	assert.False(t, consumable.IsActive(now))
}
