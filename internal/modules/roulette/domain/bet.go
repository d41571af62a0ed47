package domain

import (
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// BetStatus defines the settlement state of a bet
type BetStatus string

const (
	BetStatusPending BetStatus = "PENDING"
	BetStatusWon     BetStatus = "WON"
	BetStatusLost    BetStatus = "LOST"
)

// Bet represents a user's wagered stake on a color for a specific round.
// Winnings stays null until the bet is settled; after settlement it holds the
// signed balance delta (positive net gain, negative means the stake was lost).
type Bet struct {
	ID       int64               `gorm:"primaryKey" json:"id"`
	UserID   int64               `gorm:"not null;index:idx_bets_user_id" json:"user_id"`
	RoundID  int64               `gorm:"not null;index:idx_bets_round_id" json:"round_id"`
	Amount   decimal.Decimal     `gorm:"type:decimal(18,2);not null" json:"amount"`
	Color    Color               `gorm:"type:varchar(8);not null" json:"color"`
	Status   BetStatus           `gorm:"type:varchar(16);not null" json:"status"`
	Winnings decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"winnings"`
	PlacedAt time.Time           `gorm:"not null;index:idx_bets_placed_at" json:"placed_at"`
}

// TableName overrides the table name
func (Bet) TableName() string {
	return "bets"
}

var (
	node *snowflake.Node
	once sync.Once
)

func initSnowflake() {
	var err error
	// Single-instance deployment, NodeID 1 is fine. A clustered setup would
	// need a unique NodeID per instance.
	node, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
}

// NewBet creates a PENDING bet attached to the given round
func NewBet(roundID, userID int64, color Color, amount decimal.Decimal) *Bet {
	return &Bet{
		ID:       generateBetID(),
		UserID:   userID,
		RoundID:  roundID,
		Amount:   amount,
		Color:    color,
		Status:   BetStatusPending,
		PlacedAt: time.Now(),
	}
}

func generateBetID() int64 {
	once.Do(initSnowflake)
	return node.Generate().Int64()
}
