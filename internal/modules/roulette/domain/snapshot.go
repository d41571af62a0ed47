package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BetSnapshot is the read-only projection of a bet inside a round snapshot.
// Winnings is null until the bet is resolved.
type BetSnapshot struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"userId"`
	Amount    decimal.Decimal  `json:"amount"`
	Color     Color            `json:"color"`
	Status    BetStatus        `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	RoundID   int64            `json:"roundId"`
	Winnings  *decimal.Decimal `json:"winnings"`
}

// RoundSnapshot is the wire contract pushed to every live viewer.
// WinningColor is null until the round finishes; TimeRemaining is only set on
// periodic ticks during the betting window.
type RoundSnapshot struct {
	RoundID       int64         `json:"roundId"`
	Status        RoundStatus   `json:"status"`
	WinningColor  *Color        `json:"winningColor"`
	Bets          []BetSnapshot `json:"bets"`
	TimeRemaining *int64        `json:"timeRemaining,omitempty"`
}

// Broadcaster delivers a round snapshot to all live subscribers.
// Delivery is fire-and-forget: implementations must not block the caller and
// must isolate per-subscriber failures.
type Broadcaster interface {
	Publish(snapshot *RoundSnapshot)
}
