package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateLevelBasics(t *testing.T) {
	zero := CalculateLevel(0, 10)
	assert.Equal(t, 0, zero.Level)
	assert.Equal(t, int64(100), zero.XPForNextLevel)
	assert.Equal(t, int64(0), zero.Progress)
	assert.Equal(t, 0, zero.Percent)

	ls := CalculateLevel(150, 10)
	assert.Equal(t, 1, ls.Level)
	assert.Equal(t, int64(400), ls.XPForNextLevel)
	assert.Equal(t, int64(50), ls.Progress)
	assert.Equal(t, int64(300), ls.TotalToNext)
	assert.Equal(t, 16, ls.Percent, "percent floors, never rounds")
}

func TestCalculateLevelQuadraticBoundaries(t *testing.T) {
	assert.Equal(t, 10, CalculateLevel(10000, 10).Level)
	assert.Equal(t, 9, CalculateLevel(9999, 10).Level)
	assert.Equal(t, 1, CalculateLevel(100, 10).Level)
	assert.Equal(t, 0, CalculateLevel(99, 10).Level)
}

func TestCalculateLevelClampsNegativeXP(t *testing.T) {
	ls := CalculateLevel(-500, 10)
	assert.Equal(t, 0, ls.Level)
	assert.Equal(t, int64(0), ls.Progress)
}

func TestCalculateLevelDefaultScale(t *testing.T) {
	assert.Equal(t, CalculateLevel(150, DefaultLevelScale), CalculateLevel(150, 0))
	assert.Equal(t, CalculateLevel(150, DefaultLevelScale), CalculateLevel(150, -4))
}

func TestCalculateLevelMonotonic(t *testing.T) {
	prev := 0
	for xp := int64(0); xp <= 50000; xp += 37 {
		lvl := CalculateLevel(xp, 10).Level
		assert.GreaterOrEqual(t, lvl, prev, "level must never decrease as XP grows (xp=%d)", xp)
		prev = lvl
	}
}

func TestCalculateLevelPercentBounds(t *testing.T) {
	for xp := int64(0); xp <= 5000; xp += 13 {
		ls := CalculateLevel(xp, 10)
		assert.GreaterOrEqual(t, ls.Percent, 0)
		assert.LessOrEqual(t, ls.Percent, 100)
	}
}
