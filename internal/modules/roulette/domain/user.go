package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a player with a wallet balance
type User struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string          `gorm:"uniqueIndex;type:varchar(64);not null" json:"username"`
	Balance   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"balance"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// CanAfford reports whether the balance covers the stake
func (u *User) CanAfford(amount decimal.Decimal) bool {
	return u.Balance.GreaterThanOrEqual(amount)
}
