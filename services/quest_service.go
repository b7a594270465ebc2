package services

import (
	"errors"
	"log"
	"math/rand"
	"time"

	"habit-game-system/engine"
	"habit-game-system/models"

	"gorm.io/gorm"
)

const (
	dailyQuestCount  = 3
	weeklyQuestCount = 1
	weeklySpanDays   = 7
)

var (
	// ErrQuestNotFound signals an unknown or inactive quest.
	ErrQuestNotFound = errors.New("quest not found")
	// ErrNoRerollAvailable signals a reroll attempt without an unused
	// quest_reroll purchase.
	ErrNoRerollAvailable = errors.New("no quest reroll available")
)

// QuestService generates quest instances from the template pools,
// evaluates their progress through the engine and marks completions.
// The engine only ever reports percentages; all status transitions and
// reward credits happen here.
type QuestService struct {
	DB      *gorm.DB
	Summary *SummaryService
	Shop    *ShopService

	rng *rand.Rand
}

func NewQuestService(db *gorm.DB, summary *SummaryService, shop *ShopService) *QuestService {
	return &QuestService{
		DB:      db,
		Summary: summary,
		Shop:    shop,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRandSeed pins quest selection for tests.
func (s *QuestService) SetRandSeed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// QuestWithProgress is a quest instance annotated with live progress.
type QuestWithProgress struct {
	models.Quest
	Progress engine.QuestProgress `json:"progress"`
}

// EnsureQuests lazily generates the user's current daily and weekly
// quests if this period has none yet, then returns all active quests
// with progress. Random selection is unweighted draw-without-replacement
// within one generation; there is no cross-day anti-repeat memory.
func (s *QuestService) EnsureQuests(userID string, now time.Time) ([]QuestWithProgress, error) {
	profile, err := s.Summary.EnsureProfile(userID)
	if err != nil {
		return nil, err
	}
	loc := LocationFor(profile)
	today := engine.DayKeyFor(now, loc)

	var dailies int64
	if err := s.DB.Model(&models.Quest{}).
		Where("user_id = ? AND type = ? AND start_day = ?", userID, models.QuestDaily, today).
		Count(&dailies).Error; err != nil {
		return nil, err
	}
	if dailies == 0 {
		if err := s.generate(userID, models.DailyQuestTemplates, dailyQuestCount, today, today); err != nil {
			return nil, err
		}
	}

	var weeklies int64
	if err := s.DB.Model(&models.Quest{}).
		Where("user_id = ? AND type = ? AND status = ? AND end_day >= ?", userID, models.QuestWeekly, models.QuestActive, today).
		Count(&weeklies).Error; err != nil {
		return nil, err
	}
	if weeklies == 0 {
		endDay := engine.DayKeyFor(now.AddDate(0, 0, weeklySpanDays), loc)
		if err := s.generate(userID, models.WeeklyQuestTemplates, weeklyQuestCount, today, endDay); err != nil {
			return nil, err
		}
	}

	return s.ListWithProgress(userID, today)
}

// generate draws n distinct templates from the pool and inserts quest
// rows for the window.
func (s *QuestService) generate(userID string, pool []models.QuestTemplate, n int, startDay, endDay string) error {
	shuffled := make([]models.QuestTemplate, len(pool))
	copy(shuffled, pool)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}

	for _, tmpl := range shuffled[:n] {
		quest := models.Quest{
			UserID:      userID,
			Type:        tmpl.Type,
			Title:       tmpl.Title,
			Status:      models.QuestActive,
			ActionKey:   tmpl.Rule.ActionKey,
			Category:    tmpl.Rule.Category,
			TargetCount: tmpl.Rule.Count,
			RewardXP:    tmpl.RewardXP,
			RewardCoin:  tmpl.RewardCoin,
			StartDay:    startDay,
			EndDay:      endDay,
		}
		if err := s.DB.Create(&quest).Error; err != nil {
			return err
		}
	}

	log.Printf("🗺️ [QUEST] Generated %d %s quest(s) for %s (%s → %s)", n, pool[0].Type, userID, startDay, endDay)
	return nil
}

// candidateEvents loads the engine-facing events inside a quest window.
// The windowing happens here on day keys; the evaluator itself stays
// calendar-free.
func (s *QuestService) candidateEvents(userID, startDay, endDay string) ([]engine.QuestEvent, error) {
	var rows []struct {
		ActionKey string
		Category  string
	}
	if err := s.DB.Model(&models.EventLog{}).
		Select("actions.key AS action_key, actions.category").
		Joins("JOIN actions ON actions.id = event_logs.action_id").
		Where("event_logs.user_id = ? AND event_logs.day_key BETWEEN ? AND ?", userID, startDay, endDay).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	events := make([]engine.QuestEvent, len(rows))
	for i, r := range rows {
		events[i] = engine.QuestEvent{ActionKey: r.ActionKey, Category: r.Category}
	}
	return events, nil
}

// ListWithProgress returns the user's quests whose window covers today,
// each annotated with recomputed progress.
func (s *QuestService) ListWithProgress(userID, today string) ([]QuestWithProgress, error) {
	var quests []models.Quest
	if err := s.DB.Where("user_id = ? AND start_day <= ? AND end_day >= ?", userID, today, today).
		Order("type, created_at").Find(&quests).Error; err != nil {
		return nil, err
	}

	result := make([]QuestWithProgress, 0, len(quests))
	for _, q := range quests {
		events, err := s.candidateEvents(userID, q.StartDay, q.EndDay)
		if err != nil {
			return nil, err
		}
		result = append(result, QuestWithProgress{
			Quest:    q,
			Progress: engine.EvaluateQuestProgress(q.Rule(), events),
		})
	}
	return result, nil
}

// CheckCompletions re-evaluates the user's active quests covering today
// and marks the finished ones done, crediting coin rewards to the
// wallet in the same transaction. XP rewards flow into lifetime totals
// through the quest row itself (see SummaryService.LifetimeTotals).
// Returns the quests completed by this pass.
func (s *QuestService) CheckCompletions(userID, today string, now time.Time) ([]models.Quest, error) {
	var active []models.Quest
	if err := s.DB.Where("user_id = ? AND status = ? AND start_day <= ? AND end_day >= ?",
		userID, models.QuestActive, today, today).Find(&active).Error; err != nil {
		return nil, err
	}

	var completed []models.Quest
	for _, quest := range active {
		events, err := s.candidateEvents(userID, quest.StartDay, quest.EndDay)
		if err != nil {
			return nil, err
		}
		if engine.EvaluateQuestProgress(quest.Rule(), events).Percent < 100 {
			continue
		}

		q := quest
		err = s.DB.Transaction(func(tx *gorm.DB) error {
			// Guard against a concurrent completion of the same row.
			res := tx.Model(&models.Quest{}).
				Where("id = ? AND status = ?", q.ID, models.QuestActive).
				Updates(map[string]interface{}{"status": models.QuestDone, "completed_at": now})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return nil // someone else finished it
			}

			if q.RewardCoin > 0 {
				if err := tx.Model(&models.Wallet{}).
					Where("user_id = ?", userID).
					Update("coins_balance", gorm.Expr("coins_balance + ?", q.RewardCoin)).Error; err != nil {
					return err
				}
			}

			q.Status = models.QuestDone
			q.CompletedAt = &now
			completed = append(completed, q)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	for _, q := range completed {
		log.Printf("🏁 [QUEST] Completed: %s → %s (+%d XP, +%d coins)", q.Title, userID, q.RewardXP, q.RewardCoin)
	}
	return completed, nil
}

// ExpireOldQuests marks active quests whose window closed before today
// as expired. Run by the scheduler sweep.
func (s *QuestService) ExpireOldQuests(today string) (int64, error) {
	res := s.DB.Model(&models.Quest{}).
		Where("status = ? AND end_day < ?", models.QuestActive, today).
		Update("status", models.QuestExpired)
	return res.RowsAffected, res.Error
}

// RerollDailyQuest swaps one active daily quest for a template not in
// today's set, consuming a quest_reroll purchase.
func (s *QuestService) RerollDailyQuest(userID, questID string, now time.Time) (*models.Quest, error) {
	reroll, err := s.Shop.FindUnusedConsumable(userID, "quest_reroll")
	if err != nil {
		return nil, err
	}
	if reroll == nil {
		return nil, ErrNoRerollAvailable
	}

	var quest models.Quest
	if err := s.DB.Where("id = ? AND user_id = ? AND type = ? AND status = ?",
		questID, userID, models.QuestDaily, models.QuestActive).First(&quest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestNotFound
		}
		return nil, err
	}

	var siblings []models.Quest
	if err := s.DB.Where("user_id = ? AND type = ? AND start_day = ?",
		userID, models.QuestDaily, quest.StartDay).Find(&siblings).Error; err != nil {
		return nil, err
	}
	inUse := make(map[string]bool, len(siblings))
	for _, sib := range siblings {
		inUse[sib.Title] = true
	}

	var candidates []models.QuestTemplate
	for _, tmpl := range models.DailyQuestTemplates {
		if !inUse[tmpl.Title] {
			candidates = append(candidates, tmpl)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoRerollAvailable
	}
	tmpl := candidates[s.rng.Intn(len(candidates))]

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Shop.Consume(tx, reroll, now); err != nil {
			return err
		}
		return tx.Model(&models.Quest{}).Where("id = ?", quest.ID).
			Updates(map[string]interface{}{
				"title":        tmpl.Title,
				"action_key":   tmpl.Rule.ActionKey,
				"category":     tmpl.Rule.Category,
				"target_count": tmpl.Rule.Count,
				"reward_xp":    tmpl.RewardXP,
				"reward_coin":  tmpl.RewardCoin,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🎲 [QUEST] Rerolled %s → %q for %s", questID, tmpl.Title, userID)
	if err := s.DB.First(&quest, "id = ?", quest.ID).Error; err != nil {
		return nil, err
	}
	return &quest, nil
}
