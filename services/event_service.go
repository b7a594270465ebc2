package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"habit-game-system/engine"
	"habit-game-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDailyLimitReached signals an action at its max_per_day cap.
var ErrDailyLimitReached = errors.New("daily limit reached")

// CooldownError carries the remaining wait for a cooldown rejection.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("cooldown active, wait %d mins", int(math.Ceil(e.Remaining.Minutes())))
}

// checkDailyCap rejects the next occurrence once the action's
// max_per_day cap is met. countToday is the number already logged.
func checkDailyCap(action *models.Action, countToday int64) error {
	if action.MaxPerDay != nil && countToday >= int64(*action.MaxPerDay) {
		return fmt.Errorf("%w for %s", ErrDailyLimitReached, action.Name)
	}
	return nil
}

// checkCooldown rejects a log attempt inside the action's cooldown
// window. lastTS is the user's most recent event for this action; a
// zero time means no prior event.
func checkCooldown(action *models.Action, lastTS, now time.Time) error {
	if action.CooldownHours == nil || lastTS.IsZero() {
		return nil
	}
	cooldown := time.Duration(*action.CooldownHours) * time.Hour
	if elapsed := now.Sub(lastTS); elapsed < cooldown {
		return &CooldownError{Remaining: cooldown - elapsed}
	}
	return nil
}

// EventService owns the log-action flow: constraint checks, engine
// scoring, the idempotent insert, and the post-log quest/achievement
// evaluation. The insert path is the only place yields are computed and
// snapshotted; everything downstream re-derives from the event log.
type EventService struct {
	DB           *gorm.DB
	Actions      *ActionService
	Summary      *SummaryService
	Shop         *ShopService
	Quests       *QuestService
	Achievements *AchievementService
}

func NewEventService(db *gorm.DB, actions *ActionService, summary *SummaryService, shop *ShopService, quests *QuestService, achievements *AchievementService) *EventService {
	return &EventService{
		DB:           db,
		Actions:      actions,
		Summary:      summary,
		Shop:         shop,
		Quests:       quests,
		Achievements: achievements,
	}
}

// LogResult is the outcome of one log attempt.
type LogResult struct {
	Duplicate    bool                     `json:"duplicate,omitempty"`
	Event        *models.EventLog         `json:"event,omitempty"`
	XPAwarded    int                      `json:"xp_awarded"`
	CoinsAwarded int                      `json:"coins_awarded"`
	Streak       int                      `json:"streak"`
	Multiplier   float64                  `json:"multiplier"`
	Level        engine.LevelState        `json:"level"`
	LeveledUp    bool                     `json:"leveled_up"`
	Quests       []models.Quest           `json:"completed_quests,omitempty"`
	Achievements []models.AchievementType `json:"unlocked_achievements,omitempty"`
}

// LogAction records one occurrence of an action for a user.
//
// clientID is the idempotency token: a retried submission with the same
// token returns Duplicate without re-scoring. value is the intensity
// (0 → 1).
func (s *EventService) LogAction(userID, actionKey, clientID string, value int, now time.Time) (*LogResult, error) {
	if clientID == "" {
		clientID = uuid.NewString() // no token → no dedup, but the column stays unique
	}
	if value <= 0 {
		value = 1
	}

	profile, err := s.Summary.EnsureProfile(userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Shop.EnsureWallet(userID); err != nil {
		return nil, err
	}

	action, err := s.Actions.GetByKey(actionKey)
	if err != nil {
		return nil, err
	}

	loc := LocationFor(profile)
	today := engine.DayKeyFor(now, loc)

	// Same-day occurrence count drives diminishing returns and the
	// max-per-day cap.
	var countToday int64
	if err := s.DB.Model(&models.EventLog{}).
		Where("user_id = ? AND action_id = ? AND day_key = ?", userID, action.ID, today).
		Count(&countToday).Error; err != nil {
		return nil, err
	}
	if err := checkDailyCap(action, countToday); err != nil {
		return nil, err
	}

	if action.CooldownHours != nil {
		var last models.EventLog
		err := s.DB.Where("user_id = ? AND action_id = ?", userID, action.ID).
			Order("ts DESC").First(&last).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err == nil {
			if err := checkCooldown(action, last.TS, now); err != nil {
				return nil, err
			}
		}
	}

	// Streak going into this event — computed before the insert, so the
	// multiplier reflects the streak the user walked in with.
	streak, err := s.Summary.CurrentStreak(profile, now)
	if err != nil {
		return nil, err
	}
	multiplier := engine.CalculateMultiplier(streak)

	effects, err := s.Shop.ActiveEffects(userID, now)
	if err != nil {
		return nil, err
	}
	multiplier *= EffectMultiplier(effects)

	occurrence := int(countToday) + 1
	finalXP := engine.CalculateXP(action.XPBase, occurrence, multiplier, value)
	finalCoin := engine.CalculateCoins(action.CoinBase, occurrence)

	event := models.EventLog{
		UserID:    userID,
		ActionID:  action.ID,
		TS:        now,
		DayKey:    today,
		Value:     value,
		ClientID:  clientID,
		FinalXP:   finalXP,
		FinalCoin: finalCoin,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		if finalCoin > 0 {
			if err := tx.Model(&models.Wallet{}).
				Where("user_id = ?", userID).
				Update("coins_balance", gorm.Expr("coins_balance + ?", finalCoin)).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Retried submission — already scored once, report success.
		log.Printf("♻️ [EVENT] Duplicate client_id %s for %s, skipping", clientID, userID)
		return &LogResult{Duplicate: true}, nil
	}
	if err != nil {
		return nil, err
	}

	log.Printf("🎮 [EVENT] %s logged %s (#%d today): %+d XP, +%d coins (streak=%d, x%.2f)",
		userID, action.Key, occurrence, finalXP, finalCoin, streak, multiplier)

	return s.afterLog(profile, event, streak, multiplier, today, now)
}

// afterLog refreshes projections and runs the quest/achievement passes.
func (s *EventService) afterLog(profile *models.PlayerProfile, event models.EventLog, streak int, multiplier float64, today string, now time.Time) (*LogResult, error) {
	userID := profile.ExternalUserID

	oldLevel := engine.CalculateLevel(profile.TotalXP, profile.LevelScale).Level

	completed, err := s.Quests.CheckCompletions(userID, today, now)
	if err != nil {
		return nil, err
	}

	totalXP, totalActions, err := s.Summary.LifetimeTotals(userID)
	if err != nil {
		return nil, err
	}
	level := engine.CalculateLevel(totalXP, profile.LevelScale)

	// Logging today may have extended the streak; achievements see the
	// post-insert value.
	newStreak, err := s.Summary.CurrentStreak(profile, now)
	if err != nil {
		return nil, err
	}

	unlocked, err := s.Achievements.CheckAndUnlock(userID, engine.PlayerStats{
		TotalActions: totalActions,
		Streak:       newStreak,
		Level:        level.Level,
	})
	if err != nil {
		return nil, err
	}

	// Achievement XP may move the level again; recompute before caching.
	if len(unlocked) > 0 || len(completed) > 0 {
		totalXP, totalActions, err = s.Summary.LifetimeTotals(userID)
		if err != nil {
			return nil, err
		}
		level = engine.CalculateLevel(totalXP, profile.LevelScale)
	}

	leveledUp := level.Level > oldLevel
	updates := map[string]interface{}{
		"total_xp":      totalXP,
		"total_actions": totalActions,
	}
	if leveledUp {
		updates["last_level_up_at"] = now
		log.Printf("⬆️ [EVENT] %s leveled up: %d → %d", userID, oldLevel, level.Level)
	}
	if err := s.DB.Model(&models.PlayerProfile{}).
		Where("external_user_id = ?", userID).
		Updates(updates).Error; err != nil {
		return nil, err
	}

	return &LogResult{
		Event:        &event,
		XPAwarded:    event.FinalXP,
		CoinsAwarded: event.FinalCoin,
		Streak:       newStreak,
		Multiplier:   multiplier,
		Level:        level,
		LeveledUp:    leveledUp,
		Quests:       completed,
		Achievements: unlocked,
	}, nil
}
