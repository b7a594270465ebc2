package services

import (
	"testing"
	"time"

	"habit-game-system/models"

	"github.com/stretchr/testify/assert"
)

func TestRankName(t *testing.T) {
	assert.Equal(t, "Novice", RankName(0))
	assert.Equal(t, "Novice", RankName(9))
	assert.Equal(t, "Grinder", RankName(10))
	assert.Equal(t, "Grinder", RankName(19))
	assert.Equal(t, "Disciplined", RankName(20))
	assert.Equal(t, "Elite", RankName(30))
	assert.Equal(t, "Elite", RankName(49))
	assert.Equal(t, "Giga Chad", RankName(50))
	assert.Equal(t, "Giga Chad", RankName(120))
}

func TestDefaultTimezone(t *testing.T) {
	t.Setenv("DEFAULT_TIMEZONE", "")
	assert.Equal(t, "UTC", defaultTimezone())

	t.Setenv("DEFAULT_TIMEZONE", "Europe/Berlin")
	assert.Equal(t, "Europe/Berlin", defaultTimezone())
}

func TestLocationFor(t *testing.T) {
	t.Setenv("DEFAULT_TIMEZONE", "")

	loc := LocationFor(&models.PlayerProfile{ExternalUserID: "u1", Timezone: "Europe/Berlin"})
	assert.Equal(t, "Europe/Berlin", loc.String())

	// Unknown zones never break the request path.
	loc = LocationFor(&models.PlayerProfile{ExternalUserID: "u1", Timezone: "Mars/Olympus"})
	assert.Equal(t, time.UTC, loc)

	// Empty zone falls through to the service default.
	t.Setenv("DEFAULT_TIMEZONE", "America/New_York")
	loc = LocationFor(&models.PlayerProfile{ExternalUserID: "u1"})
	assert.Equal(t, "America/New_York", loc.String())
}
