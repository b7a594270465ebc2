package services

import (
	"errors"
	"fmt"
	"log"

	"habit-game-system/engine"
	"habit-game-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AchievementService checks the fixed catalog against a stats snapshot
// and persists new unlocks. Which keys qualify is the engine's call;
// writing the unlock rows and crediting rewards is ours, serialized by
// the (user, key) unique index rather than by locking the evaluation.
type AchievementService struct {
	DB *gorm.DB
}

func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{DB: db}
}

// SeedCatalog upserts the built-in achievement catalog by key.
func (s *AchievementService) SeedCatalog() error {
	for _, ach := range models.SeedAchievements {
		a := ach
		if err := s.DB.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "description", "icon", "rule_type", "rule_target",
				"reward_xp", "reward_coin",
			}),
		}).Create(&a).Error; err != nil {
			return fmt.Errorf("seed achievement %s: %w", a.Key, err)
		}
	}
	log.Printf("🌱 [CATALOG] Seeded %d achievements", len(models.SeedAchievements))
	return nil
}

// Catalog returns the achievement definitions from storage.
func (s *AchievementService) Catalog() ([]models.AchievementType, error) {
	var catalog []models.AchievementType
	if err := s.DB.Order("created_at").Find(&catalog).Error; err != nil {
		return nil, err
	}
	return catalog, nil
}

// UnlockedKeys returns the user's unlocked achievement keys as a set.
func (s *AchievementService) UnlockedKeys(userID string) (map[string]bool, error) {
	var rows []models.UserAchievement
	if err := s.DB.Where("external_user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	keys := make(map[string]bool, len(rows))
	for _, r := range rows {
		keys[r.AchievementKey] = true
	}
	return keys, nil
}

// CheckAndUnlock evaluates the catalog against stats and persists the
// newly qualifying unlocks, crediting coin rewards. A duplicate-key
// conflict from a concurrent evaluation is swallowed: the other writer
// won, the unlock exists, nothing is double-credited.
func (s *AchievementService) CheckAndUnlock(userID string, stats engine.PlayerStats) ([]models.AchievementType, error) {
	catalog, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	unlocked, err := s.UnlockedKeys(userID)
	if err != nil {
		return nil, err
	}

	defs := make([]engine.AchievementDef, len(catalog))
	byKey := make(map[string]models.AchievementType, len(catalog))
	for i, a := range catalog {
		defs[i] = a.Def()
		byKey[a.Key] = a
	}

	newKeys := engine.EvaluateUnlocks(unlocked, defs, stats)

	var granted []models.AchievementType
	for _, key := range newKeys {
		ach := byKey[key]
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			ua := models.UserAchievement{ExternalUserID: userID, AchievementKey: key}
			if err := tx.Create(&ua).Error; err != nil {
				return err
			}
			if ach.RewardCoin > 0 {
				if err := tx.Model(&models.Wallet{}).
					Where("user_id = ?", userID).
					Update("coins_balance", gorm.Expr("coins_balance + ?", ach.RewardCoin)).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		if err != nil {
			return nil, err
		}

		granted = append(granted, ach)
		log.Printf("🏆 [ACHIEVEMENT] Unlocked: %s → %s (+%d XP, +%d coins)", ach.Name, userID, ach.RewardXP, ach.RewardCoin)
	}

	return granted, nil
}

// AchievementStatus is a catalog entry annotated with the user's unlock.
type AchievementStatus struct {
	models.AchievementType
	Unlocked   bool   `json:"unlocked"`
	UnlockedAt string `json:"unlocked_at,omitempty"`
}

// ListForUser returns the catalog with per-user unlock state.
func (s *AchievementService) ListForUser(userID string) ([]AchievementStatus, error) {
	catalog, err := s.Catalog()
	if err != nil {
		return nil, err
	}

	var rows []models.UserAchievement
	if err := s.DB.Where("external_user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	unlockedAt := make(map[string]string, len(rows))
	for _, r := range rows {
		unlockedAt[r.AchievementKey] = r.UnlockedAt.UTC().Format("2006-01-02T15:04:05Z")
	}

	statuses := make([]AchievementStatus, len(catalog))
	for i, a := range catalog {
		statuses[i] = AchievementStatus{AchievementType: a}
		if at, ok := unlockedAt[a.Key]; ok {
			statuses[i].Unlocked = true
			statuses[i].UnlockedAt = at
		}
	}
	return statuses, nil
}
