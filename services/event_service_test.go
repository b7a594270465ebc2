package services

import (
	"errors"
	"testing"
	"time"

	"habit-game-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestCooldownError(t *testing.T) {
	err := &CooldownError{Remaining: 90 * time.Second}
	assert.Equal(t, "cooldown active, wait 2 mins", err.Error())

	// Exact minute boundaries don't round up past themselves.
	err = &CooldownError{Remaining: 60 * time.Minute}
	assert.Equal(t, "cooldown active, wait 60 mins", err.Error())

	var cdErr *CooldownError
	assert.True(t, errors.As(error(err), &cdErr))
	assert.Equal(t, 60*time.Minute, cdErr.Remaining)
}

func TestCheckDailyCap(t *testing.T) {
	capped := &models.Action{Name: "Gym Workout", MaxPerDay: intPtr(2)}

	assert.NoError(t, checkDailyCap(capped, 0))
	assert.NoError(t, checkDailyCap(capped, 1))

	err := checkDailyCap(capped, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDailyLimitReached)
	assert.Contains(t, err.Error(), "Gym Workout")

	// Penalties and uncapped actions never hit the limit.
	uncapped := &models.Action{Name: "Smoke Cigarette"}
	assert.NoError(t, checkDailyCap(uncapped, 500))
}

func TestCheckCooldown(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	action := &models.Action{Name: "Gym Workout", CooldownHours: intPtr(4)}

	// No prior event → no cooldown.
	assert.NoError(t, checkCooldown(action, time.Time{}, now))

	// Window elapsed exactly → allowed again.
	assert.NoError(t, checkCooldown(action, now.Add(-4*time.Hour), now))

	// One hour in: three hours remain.
	err := checkCooldown(action, now.Add(-time.Hour), now)
	var cdErr *CooldownError
	require.ErrorAs(t, err, &cdErr)
	assert.Equal(t, 3*time.Hour, cdErr.Remaining)

	// Actions without a cooldown never reject.
	free := &models.Action{Name: "Drink Water (500ml)"}
	assert.NoError(t, checkCooldown(free, now.Add(-time.Second), now))
}
