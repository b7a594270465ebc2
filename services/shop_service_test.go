package services

import (
	"testing"

	"habit-game-system/models"

	"github.com/stretchr/testify/assert"
)

func TestEffectMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, EffectMultiplier(nil))

	boost := models.Purchase{ItemKey: "xp_boost_2x"}
	freeze := models.Purchase{ItemKey: "streak_freeze"}

	assert.Equal(t, 2.0, EffectMultiplier([]models.Purchase{boost}))
	assert.Equal(t, 1.0, EffectMultiplier([]models.Purchase{freeze}))

	// Boosts stack multiplicatively; freezes never contribute.
	assert.Equal(t, 4.0, EffectMultiplier([]models.Purchase{boost, freeze, boost}))
}
