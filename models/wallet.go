package models

// Wallet holds a user's spendable coin balance. Mutated only inside DB
// transactions (credits from logs/quests/achievements, debits from shop
// purchases) so concurrent writers serialize on the row.
type Wallet struct {
	ID           string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID       string `gorm:"uniqueIndex;not null" json:"user_id"` // external user ID
	CoinsBalance int64  `gorm:"not null;default:0" json:"coins_balance"`

	Timestamps
}
