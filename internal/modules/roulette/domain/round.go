package domain

import (
	"time"
)

// Color represents a roulette pocket color
type Color string

const (
	ColorRed   Color = "RED"
	ColorBlack Color = "BLACK"
	ColorGreen Color = "GREEN"
)

// IsValid checks if the color is one of the bettable colors
func (c Color) IsValid() bool {
	return c == ColorRed || c == ColorBlack || c == ColorGreen
}

// RoundStatus defines the lifecycle phase of a round
type RoundStatus string

const (
	RoundStatusWaiting    RoundStatus = "WAITING"
	RoundStatusInProgress RoundStatus = "IN_PROGRESS"
	RoundStatusFinished   RoundStatus = "FINISHED"
)

// Round represents one timed betting cycle with a single resolved outcome
type Round struct {
	ID           int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	Status       RoundStatus `gorm:"type:varchar(16);not null" json:"status"`
	WinningColor *Color      `gorm:"type:varchar(8)" json:"winning_color"`
	StartTime    time.Time   `gorm:"not null" json:"start_time"`
	EndTime      *time.Time  `json:"end_time"`
}

// TableName overrides the table name
func (Round) TableName() string {
	return "rounds"
}

// NewRound creates a round in WAITING state
func NewRound() *Round {
	return &Round{
		Status:    RoundStatusWaiting,
		StartTime: time.Now(),
	}
}

// IsActive reports whether the round still owns the table (WAITING or IN_PROGRESS)
func (r *Round) IsActive() bool {
	return r.Status != RoundStatusFinished
}
