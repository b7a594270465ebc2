package services

import (
	"errors"
	"fmt"
	"log"

	"habit-game-system/models"

	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrActionNotFound signals an unknown action key.
var ErrActionNotFound = errors.New("action not found")

// ActionService owns the action catalog: seeding, lookup, admin creation.
type ActionService struct {
	DB *gorm.DB
}

func NewActionService(db *gorm.DB) *ActionService {
	return &ActionService{DB: db}
}

// SeedCatalog upserts the built-in action catalog by key (idempotent —
// safe to run on every boot).
func (s *ActionService) SeedCatalog() error {
	for _, action := range models.SeedActions {
		a := action
		if err := s.DB.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "category", "xp_base", "coin_base",
				"cooldown_hours", "max_per_day", "is_negative",
			}),
		}).Create(&a).Error; err != nil {
			return fmt.Errorf("seed action %s: %w", a.Key, err)
		}
	}
	log.Printf("🌱 [CATALOG] Seeded %d actions", len(models.SeedActions))
	return nil
}

// GetByKey returns the catalog entry for key.
func (s *ActionService) GetByKey(key string) (*models.Action, error) {
	var action models.Action
	if err := s.DB.Where("key = ?", key).First(&action).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActionNotFound
		}
		return nil, err
	}
	return &action, nil
}

// List returns the full catalog.
func (s *ActionService) List() ([]models.Action, error) {
	var actions []models.Action
	if err := s.DB.Order("category, key").Find(&actions).Error; err != nil {
		return nil, err
	}
	return actions, nil
}

var titleCaser = cases.Title(language.English)

// CreateAction adds an admin-defined action to the catalog. The key is
// slugged from the name ("Morning Yoga" → "morning-yoga") and the
// display name is title-cased.
func (s *ActionService) CreateAction(name string, category models.ActionCategory, xpBase, coinBase int, cooldownHours, maxPerDay *int, isNegative bool) (*models.Action, error) {
	switch category {
	case models.CategoryHealth, models.CategoryMind, models.CategoryHustle:
	default:
		return nil, fmt.Errorf("unknown category %q", category)
	}

	action := models.Action{
		Key:           slug.Make(name),
		Name:          titleCaser.String(name),
		Category:      category,
		XPBase:        xpBase,
		CoinBase:      coinBase,
		CooldownHours: cooldownHours,
		MaxPerDay:     maxPerDay,
		IsNegative:    isNegative,
	}
	if action.Key == "" {
		return nil, fmt.Errorf("action name %q produces an empty key", name)
	}

	if err := s.DB.Create(&action).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("action key %q already exists", action.Key)
		}
		return nil, err
	}

	log.Printf("🆕 [CATALOG] Action created: %s (%s)", action.Key, action.Category)
	return &action, nil
}
