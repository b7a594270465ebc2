package models

import "time"

// ShopItem is a static shop catalog entry. Timed items get an
// active_until window on purchase; consumables stay usable until
// consumed.
type ShopItem struct {
	Key           string `json:"key"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Cost          int64  `json:"cost"`
	DurationHours int    `json:"duration_hours,omitempty"`
	Consumable    bool   `json:"consumable,omitempty"`
	Icon          string `json:"icon"`
}

// ShopItems is the fixed shop catalog.
var ShopItems = []ShopItem{
	{Key: "streak_freeze", Name: "Streak Freeze", Description: "Protect your streak for one day of inactivity.", Cost: 50, DurationHours: 24, Icon: "❄️"},
	{Key: "xp_boost_2x", Name: "2x XP Potion", Description: "Double XP for 2 hours.", Cost: 100, DurationHours: 2, Icon: "🧪"},
	{Key: "quest_reroll", Name: "Quest Reroll", Description: "Reroll one active daily quest.", Cost: 20, Consumable: true, Icon: "🎲"},
}

// ShopItemByKey returns the catalog entry for key, or nil.
func ShopItemByKey(key string) *ShopItem {
	for i := range ShopItems {
		if ShopItems[i].Key == key {
			return &ShopItems[i]
		}
	}
	return nil
}

// Purchase is one shop transaction. ActiveUntil drives timed buffs;
// ConsumedAt marks used consumables.
type Purchase struct {
	ID          string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID      string     `gorm:"index;not null" json:"user_id"`
	ItemKey     string     `gorm:"not null;index" json:"item_key"`
	Cost        int64      `gorm:"not null" json:"cost"`
	ActiveUntil *time.Time `json:"active_until,omitempty"`
	ConsumedAt  *time.Time `json:"consumed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// IsActive reports whether the purchase's effect window covers now.
func (p *Purchase) IsActive(now time.Time) bool {
	if p.ConsumedAt != nil {
		return false
	}
	return p.ActiveUntil != nil && p.ActiveUntil.After(now)
}
