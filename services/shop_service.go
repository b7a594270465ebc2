package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"habit-game-system/engine"
	"habit-game-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrItemNotFound signals an unknown shop item key.
	ErrItemNotFound = errors.New("shop item not found")
	// ErrInsufficientFunds signals a wallet balance below the item cost.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// ShopService handles coin purchases and the buffs they grant.
type ShopService struct {
	DB *gorm.DB
}

func NewShopService(db *gorm.DB) *ShopService {
	return &ShopService{DB: db}
}

// PurchaseItem debits the wallet and records the purchase in one
// transaction. Timed items get an active window from now; consumables
// stay usable until consumed.
func (s *ShopService) PurchaseItem(userID, itemKey string, now time.Time) (*models.Purchase, error) {
	item := models.ShopItemByKey(itemKey)
	if item == nil {
		return nil, ErrItemNotFound
	}

	var purchase *models.Purchase
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var wallet models.Wallet
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&wallet).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInsufficientFunds
			}
			return err
		}
		if wallet.CoinsBalance < item.Cost {
			return ErrInsufficientFunds
		}

		wallet.CoinsBalance -= item.Cost
		if err := tx.Save(&wallet).Error; err != nil {
			return err
		}

		p := models.Purchase{
			UserID:  userID,
			ItemKey: item.Key,
			Cost:    item.Cost,
		}
		if item.DurationHours > 0 {
			until := now.Add(time.Duration(item.DurationHours) * time.Hour)
			p.ActiveUntil = &until
		}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}

		purchase = &p
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🛒 [SHOP] %s bought %s for %d coins", userID, item.Key, item.Cost)
	return purchase, nil
}

// History returns the user's purchases, newest first.
func (s *ShopService) History(userID string) ([]models.Purchase, error) {
	var purchases []models.Purchase
	if err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// ActiveEffects returns purchases whose effect window covers now.
func (s *ShopService) ActiveEffects(userID string, now time.Time) ([]models.Purchase, error) {
	var purchases []models.Purchase
	if err := s.DB.Where("user_id = ? AND consumed_at IS NULL AND active_until > ?", userID, now).
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// EffectMultiplier returns the XP factor contributed by active buffs.
func EffectMultiplier(effects []models.Purchase) float64 {
	multiplier := 1.0
	for _, e := range effects {
		if e.ItemKey == "xp_boost_2x" {
			multiplier *= 2.0
		}
	}
	return multiplier
}

// FrozenDayKeys returns the day keys covered by unconsumed streak-freeze
// purchases, in the given location. These days may stand in for missing
// days in the streak walk.
func (s *ShopService) FrozenDayKeys(userID string, loc *time.Location) (map[string]bool, error) {
	var freezes []models.Purchase
	if err := s.DB.Where("user_id = ? AND item_key = ? AND consumed_at IS NULL", userID, "streak_freeze").
		Find(&freezes).Error; err != nil {
		return nil, err
	}

	frozen := make(map[string]bool, len(freezes)*2)
	for _, f := range freezes {
		frozen[engine.DayKeyFor(f.CreatedAt, loc)] = true
		if f.ActiveUntil != nil {
			frozen[engine.DayKeyFor(*f.ActiveUntil, loc)] = true
		}
	}
	return frozen, nil
}

// FindUnusedConsumable returns the oldest unconsumed consumable purchase
// of the given item for the user, or nil if none exists.
func (s *ShopService) FindUnusedConsumable(userID, itemKey string) (*models.Purchase, error) {
	var p models.Purchase
	err := s.DB.Where("user_id = ? AND item_key = ? AND consumed_at IS NULL", userID, itemKey).
		Order("created_at ASC").First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Consume marks a consumable purchase used.
func (s *ShopService) Consume(tx *gorm.DB, purchase *models.Purchase, now time.Time) error {
	if purchase.ConsumedAt != nil {
		return fmt.Errorf("purchase %s already consumed", purchase.ID)
	}
	purchase.ConsumedAt = &now
	return tx.Save(purchase).Error
}

// EnsureWallet creates the wallet row for a user if missing.
func (s *ShopService) EnsureWallet(userID string) (*models.Wallet, error) {
	var wallet models.Wallet
	err := s.DB.Where("user_id = ?", userID).First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		wallet = models.Wallet{UserID: userID}
		if err := s.DB.Create(&wallet).Error; err != nil {
			return nil, err
		}
		return &wallet, nil
	}
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}
