package services

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"habit-game-system/engine"
	"habit-game-system/models"

	"gorm.io/gorm"
)

// SummaryService derives dashboard state from the event log. Nothing it
// returns is read from a stored counter: streak, level and today's
// totals are recomputed from history on every call, with the profile's
// cached projections used only as a write-through cache it refreshes.
type SummaryService struct {
	DB   *gorm.DB
	Shop *ShopService
}

func NewSummaryService(db *gorm.DB, shop *ShopService) *SummaryService {
	return &SummaryService{DB: db, Shop: shop}
}

// DaySummary is the dashboard payload.
type DaySummary struct {
	DayKey        string            `json:"day_key"`
	XPToday       int               `json:"xp_today"`
	CoinsToday    int               `json:"coins_today"`
	Streak        int               `json:"streak"`
	Multiplier    float64           `json:"multiplier"`
	Level         engine.LevelState `json:"level"`
	Rank          string            `json:"rank"`
	TotalXP       int64             `json:"total_xp"`
	TotalActions  int64             `json:"total_actions"`
	WalletBalance int64             `json:"wallet_balance"`
	ActionsToday  map[string]int    `json:"actions_today"` // action key → count
}

// EnsureProfile returns the local profile row for a user, creating a
// default one on first sight (the sync worker fills identity fields in
// later).
func (s *SummaryService) EnsureProfile(userID string) (*models.PlayerProfile, error) {
	var profile models.PlayerProfile
	err := s.DB.Where("external_user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.PlayerProfile{
			ExternalUserID:  userID,
			Timezone:        defaultTimezone(),
			StreakThreshold: 1,
			LevelScale:      engine.DefaultLevelScale,
		}
		if err := s.DB.Create(&profile).Error; err != nil {
			return nil, err
		}
		return &profile, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func defaultTimezone() string {
	if tz := os.Getenv("DEFAULT_TIMEZONE"); tz != "" {
		return tz
	}
	return "UTC"
}

// LocationFor resolves the profile's timezone, falling back to the
// service default, then UTC. Day keys are always derived through this.
func LocationFor(profile *models.PlayerProfile) *time.Location {
	tz := profile.Timezone
	if tz == "" {
		tz = defaultTimezone()
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("⚠️ [SUMMARY] Unknown timezone %q for %s, falling back to UTC", tz, profile.ExternalUserID)
		return time.UTC
	}
	return loc
}

// LifetimeTotals sums lifetime XP and action count from the immutable
// fact tables: event snapshots plus quest and achievement rewards.
// This is the authoritative aggregate; profile columns only cache it.
func (s *SummaryService) LifetimeTotals(userID string) (totalXP int64, totalActions int64, err error) {
	row := struct {
		XP  int64
		Cnt int64
	}{}
	if err = s.DB.Model(&models.EventLog{}).
		Select("COALESCE(SUM(final_xp), 0) AS xp, COUNT(*) AS cnt").
		Where("user_id = ?", userID).
		Scan(&row).Error; err != nil {
		return 0, 0, fmt.Errorf("sum events: %w", err)
	}
	totalXP, totalActions = row.XP, row.Cnt

	var questXP int64
	if err = s.DB.Model(&models.Quest{}).
		Select("COALESCE(SUM(reward_xp), 0)").
		Where("user_id = ? AND status = ?", userID, models.QuestDone).
		Scan(&questXP).Error; err != nil {
		return 0, 0, fmt.Errorf("sum quest rewards: %w", err)
	}
	totalXP += questXP

	var achievementXP int64
	if err = s.DB.Model(&models.UserAchievement{}).
		Select("COALESCE(SUM(achievement_types.reward_xp), 0)").
		Joins("JOIN achievement_types ON achievement_types.key = user_achievements.achievement_key").
		Where("user_achievements.external_user_id = ?", userID).
		Scan(&achievementXP).Error; err != nil {
		return 0, 0, fmt.Errorf("sum achievement rewards: %w", err)
	}
	totalXP += achievementXP

	return totalXP, totalActions, nil
}

// DailyTally groups the recent event log into day_key → count.
func (s *SummaryService) DailyTally(userID string, days int, now time.Time, loc *time.Location) (map[string]int, error) {
	cutoff := engine.DayKeyFor(now.AddDate(0, 0, -days), loc)

	var rows []struct {
		DayKey string
		Cnt    int
	}
	if err := s.DB.Model(&models.EventLog{}).
		Select("day_key, COUNT(*) AS cnt").
		Where("user_id = ? AND day_key >= ?", userID, cutoff).
		Group("day_key").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	tally := make(map[string]int, len(rows))
	for _, r := range rows {
		tally[r.DayKey] = r.Cnt
	}
	return tally, nil
}

// CurrentStreak recomputes the user's streak from the last 30 days of
// history, honoring streak-freeze purchases.
func (s *SummaryService) CurrentStreak(profile *models.PlayerProfile, now time.Time) (int, error) {
	loc := LocationFor(profile)

	tally, err := s.DailyTally(profile.ExternalUserID, 30, now, loc)
	if err != nil {
		return 0, err
	}
	frozen, err := s.Shop.FrozenDayKeys(profile.ExternalUserID, loc)
	if err != nil {
		return 0, err
	}

	today := engine.DayKeyFor(now, loc)
	return engine.CalculateStreakWithFreezes(tally, frozen, today, profile.StreakThreshold), nil
}

// joinedEvent is an event row with its action's catalog fields.
type joinedEvent struct {
	models.EventLog
	ActionKey string
	Category  string
	XPBase    int
	CoinBase  int
}

func (s *SummaryService) eventsForDay(userID, dayKey string) ([]joinedEvent, error) {
	var rows []joinedEvent
	err := s.DB.Model(&models.EventLog{}).
		Select("event_logs.*, actions.key AS action_key, actions.category, actions.xp_base, actions.coin_base").
		Joins("JOIN actions ON actions.id = event_logs.action_id").
		Where("event_logs.user_id = ? AND event_logs.day_key = ?", userID, dayKey).
		Scan(&rows).Error
	return rows, err
}

// GetDaySummary builds the dashboard: today's yields re-derived from
// today's events in timestamp order, streak, level from lifetime XP,
// rank and wallet balance.
func (s *SummaryService) GetDaySummary(userID string, now time.Time) (*DaySummary, error) {
	profile, err := s.EnsureProfile(userID)
	if err != nil {
		return nil, err
	}
	loc := LocationFor(profile)
	today := engine.DayKeyFor(now, loc)

	streak, err := s.CurrentStreak(profile, now)
	if err != nil {
		return nil, err
	}
	multiplier := engine.CalculateMultiplier(streak)

	todayEvents, err := s.eventsForDay(userID, today)
	if err != nil {
		return nil, err
	}
	// Diminishing returns depend on occurrence order within the day.
	sort.Slice(todayEvents, func(i, j int) bool {
		return todayEvents[i].TS.Before(todayEvents[j].TS)
	})

	xpToday, coinsToday := 0, 0
	actionsToday := make(map[string]int)
	for _, e := range todayEvents {
		actionsToday[e.ActionKey]++
		xpToday += engine.CalculateXP(e.XPBase, actionsToday[e.ActionKey], multiplier, e.Value)
		coinsToday += engine.CalculateCoins(e.CoinBase, actionsToday[e.ActionKey])
	}

	totalXP, totalActions, err := s.LifetimeTotals(userID)
	if err != nil {
		return nil, err
	}
	level := engine.CalculateLevel(totalXP, profile.LevelScale)

	wallet, err := s.Shop.EnsureWallet(userID)
	if err != nil {
		return nil, err
	}

	return &DaySummary{
		DayKey:        today,
		XPToday:       xpToday,
		CoinsToday:    coinsToday,
		Streak:        streak,
		Multiplier:    multiplier,
		Level:         level,
		Rank:          RankName(level.Level),
		TotalXP:       totalXP,
		TotalActions:  totalActions,
		WalletBalance: wallet.CoinsBalance,
		ActionsToday:  actionsToday,
	}, nil
}

// HistoryEntry is one event in the user-facing history feed.
type HistoryEntry struct {
	ID         string    `json:"id"`
	ActionKey  string    `json:"action_key"`
	ActionName string    `json:"action_name"`
	Category   string    `json:"category"`
	TS         time.Time `json:"ts"`
	DayKey     string    `json:"day_key"`
	FinalXP    int       `json:"final_xp"`
	FinalCoin  int       `json:"final_coin"`
}

// GetHistory returns the user's recent events, newest first.
func (s *SummaryService) GetHistory(userID string, days int, now time.Time) ([]HistoryEntry, error) {
	if days <= 0 || days > 365 {
		days = 30
	}
	profile, err := s.EnsureProfile(userID)
	if err != nil {
		return nil, err
	}
	cutoff := engine.DayKeyFor(now.AddDate(0, 0, -days), LocationFor(profile))

	var entries []HistoryEntry
	err = s.DB.Model(&models.EventLog{}).
		Select("event_logs.id, actions.key AS action_key, actions.name AS action_name, actions.category, event_logs.ts, event_logs.day_key, event_logs.final_xp, event_logs.final_coin").
		Joins("JOIN actions ON actions.id = event_logs.action_id").
		Where("event_logs.user_id = ? AND event_logs.day_key >= ?", userID, cutoff).
		Order("event_logs.ts DESC").
		Scan(&entries).Error
	return entries, err
}

// RankName maps a level to its display rank.
func RankName(level int) string {
	switch {
	case level >= 50:
		return "Giga Chad"
	case level >= 30:
		return "Elite"
	case level >= 20:
		return "Disciplined"
	case level >= 10:
		return "Grinder"
	default:
		return "Novice"
	}
}

// RefreshProjections recomputes the profile's cached lifetime columns
// from the fact tables and overwrites them. Called after every log and
// by the nightly reconciliation sweep — cache drift never survives a
// recompute.
func (s *SummaryService) RefreshProjections(userID string) error {
	totalXP, totalActions, err := s.LifetimeTotals(userID)
	if err != nil {
		return err
	}
	return s.DB.Model(&models.PlayerProfile{}).
		Where("external_user_id = ?", userID).
		Updates(map[string]interface{}{
			"total_xp":      totalXP,
			"total_actions": totalActions,
		}).Error
}
