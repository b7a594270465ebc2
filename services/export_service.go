package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"habit-game-system/models"
	"habit-game-system/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExportService serializes a user's full game history to JSON and
// uploads it to R2, returning the download URL.
type ExportService struct {
	DB      *gorm.DB
	Summary *SummaryService
}

func NewExportService(db *gorm.DB, summary *SummaryService) *ExportService {
	return &ExportService{DB: db, Summary: summary}
}

// exportPayload is the on-disk shape of a data export.
type exportPayload struct {
	GeneratedAt  time.Time                `json:"generated_at"`
	Profile      *models.PlayerProfile    `json:"profile"`
	Wallet       *models.Wallet           `json:"wallet"`
	Events       []HistoryEntry           `json:"events"`
	Quests       []models.Quest           `json:"quests"`
	Achievements []models.UserAchievement `json:"achievements"`
	Purchases    []models.Purchase        `json:"purchases"`
}

// ExportUserData gathers everything the service stores about a user and
// uploads it as one JSON object. The event history is the authoritative
// part — a re-import could rebuild every aggregate from it.
func (s *ExportService) ExportUserData(ctx context.Context, userID string, now time.Time) (string, error) {
	profile, err := s.Summary.EnsureProfile(userID)
	if err != nil {
		return "", err
	}

	var wallet models.Wallet
	if err := s.DB.Where("user_id = ?", userID).First(&wallet).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	events, err := s.Summary.GetHistory(userID, 365, now)
	if err != nil {
		return "", err
	}

	var quests []models.Quest
	if err := s.DB.Where("user_id = ?", userID).Order("created_at").Find(&quests).Error; err != nil {
		return "", err
	}
	var achievements []models.UserAchievement
	if err := s.DB.Where("external_user_id = ?", userID).Order("unlocked_at").Find(&achievements).Error; err != nil {
		return "", err
	}
	var purchases []models.Purchase
	if err := s.DB.Where("user_id = ?", userID).Order("created_at").Find(&purchases).Error; err != nil {
		return "", err
	}

	payload := exportPayload{
		GeneratedAt:  now.UTC(),
		Profile:      profile,
		Wallet:       &wallet,
		Events:       events,
		Quests:       quests,
		Achievements: achievements,
		Purchases:    purchases,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal export: %w", err)
	}

	key := fmt.Sprintf("exports/%s/%s.json", userID, uuid.NewString())
	url, err := utils.UploadBytesToR2(ctx, key, data, "application/json")
	if err != nil {
		return "", fmt.Errorf("upload export: %w", err)
	}

	log.Printf("📦 [EXPORT] %s → %s (%d events, %d bytes)", userID, key, len(events), len(data))
	return url, nil
}
