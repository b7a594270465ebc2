package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateXPDiminishingReturns(t *testing.T) {
	cases := []struct {
		name       string
		countToday int
		want       int
	}{
		{"first occurrence full value", 1, 100},
		{"second occurrence 60%", 2, 60},
		{"third occurrence 30%", 3, 30},
		{"fourth occurrence 10%", 4, 10},
		{"tenth occurrence stays at 10%", 10, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CalculateXP(100, tc.countToday, 1.0, 1))
		})
	}
}

func TestCalculateXPRoundsHalfUp(t *testing.T) {
	// 25 * 0.3 = 7.5 → 8
	assert.Equal(t, 8, CalculateXP(25, 3, 1.0, 1))
	// 9 * 0.6 = 5.4 → 5
	assert.Equal(t, 5, CalculateXP(9, 2, 1.0, 1))
}

func TestCalculateXPAppliesMultiplierAndIntensity(t *testing.T) {
	assert.Equal(t, 150, CalculateXP(100, 1, 1.5, 1))
	assert.Equal(t, 200, CalculateXP(100, 1, 1.0, 2))
	// 50 * 2 * 0.6 * 1.25 = 75
	assert.Equal(t, 75, CalculateXP(50, 2, 1.25, 2))
}

func TestCalculateXPPenaltyIgnoresEverything(t *testing.T) {
	// Negative actions take raw damage: no diminishing, no streak buff.
	assert.Equal(t, -50, CalculateXP(-50, 5, 2.0, 1))
	assert.Equal(t, -100, CalculateXP(-50, 1, 1.0, 2))
}

func TestCalculateCoinsHardCliff(t *testing.T) {
	assert.Equal(t, 5, CalculateCoins(5, 1))
	assert.Equal(t, 5, CalculateCoins(5, 2))
	assert.Equal(t, 0, CalculateCoins(5, 3))
	assert.Equal(t, 0, CalculateCoins(5, 9))
	assert.Equal(t, 0, CalculateCoins(0, 1))
	assert.Equal(t, 0, CalculateCoins(-3, 1))
}

func TestCalculateMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, CalculateMultiplier(0))
	assert.Equal(t, 1.25, CalculateMultiplier(5))
	assert.Equal(t, 2.0, CalculateMultiplier(20))
	assert.Equal(t, 2.0, CalculateMultiplier(365), "bonus caps at 2x")
	assert.Equal(t, 1.0, CalculateMultiplier(-3))
}

func TestCalculateXPIsIdempotent(t *testing.T) {
	first := CalculateXP(40, 2, 1.35, 1)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CalculateXP(40, 2, 1.35, 1))
	}
}
