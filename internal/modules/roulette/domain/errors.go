package domain

import "errors"

var (
	// ErrUserNotFound is returned when a user id does not exist in the ledger
	ErrUserNotFound = errors.New("user not found")

	// ErrInsufficientBalance is returned when a stake exceeds the user's balance.
	// The bet is rejected before any state mutation.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrRoundNotFound is returned when a round id does not exist
	ErrRoundNotFound = errors.New("round not found")
)
