package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateQuestProgressByActionKey(t *testing.T) {
	events := []QuestEvent{
		{ActionKey: "gym_workout", Category: "health"},
		{ActionKey: "read_10p", Category: "mind"},
		{ActionKey: "gym_workout", Category: "health"},
	}

	p := EvaluateQuestProgress(QuestRule{ActionKey: "gym_workout", Count: 5}, events)
	assert.Equal(t, 2, p.Current)
	assert.Equal(t, 5, p.Target)
	assert.Equal(t, 40, p.Percent)
}

func TestEvaluateQuestProgressByCategory(t *testing.T) {
	events := []QuestEvent{
		{ActionKey: "gym_workout", Category: "health"},
		{ActionKey: "drink_water", Category: "health"},
		{ActionKey: "read_10p", Category: "mind"},
	}

	p := EvaluateQuestProgress(QuestRule{Category: "health", Count: 3}, events)
	assert.Equal(t, 2, p.Current)
	assert.Equal(t, 66, p.Percent, "percent floors, never rounds")
}

func TestEvaluateQuestProgressCompletionCaps(t *testing.T) {
	events := []QuestEvent{
		{ActionKey: "drink_water", Category: "health"},
		{ActionKey: "drink_water", Category: "health"},
		{ActionKey: "drink_water", Category: "health"},
		{ActionKey: "drink_water", Category: "health"},
	}

	p := EvaluateQuestProgress(QuestRule{ActionKey: "drink_water", Count: 3}, events)
	assert.Equal(t, 4, p.Current)
	assert.Equal(t, 100, p.Percent, "percent caps at 100 past the target")
}

func TestEvaluateQuestProgressZeroTargetDefaultsToOne(t *testing.T) {
	events := []QuestEvent{{ActionKey: "meditate_10m", Category: "mind"}}

	p := EvaluateQuestProgress(QuestRule{ActionKey: "meditate_10m"}, events)
	assert.Equal(t, 1, p.Target)
	assert.Equal(t, 100, p.Percent)
}

func TestEvaluateQuestProgressNoDiscriminator(t *testing.T) {
	events := []QuestEvent{{ActionKey: "gym_workout", Category: "health"}}

	p := EvaluateQuestProgress(QuestRule{Count: 2}, events)
	assert.Equal(t, 0, p.Current)
	assert.Equal(t, 0, p.Percent)
}

func TestEvaluateQuestProgressEmptyEvents(t *testing.T) {
	p := EvaluateQuestProgress(QuestRule{Category: "hustle", Count: 4}, nil)
	assert.Equal(t, QuestProgress{Current: 0, Target: 4, Percent: 0}, p)
}
