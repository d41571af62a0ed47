// Package usecase implements the application logic around the roulette
// machine: user management and round/bet queries.
package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/domain"
	"github.com/yuuhLKT/roulette-api/pkg/logger"
)

// UserUseCase handles user management
type UserUseCase struct {
	users domain.UserRepository
	bets  domain.BetRepository
}

// NewUserUseCase creates a new user use case
func NewUserUseCase(users domain.UserRepository, bets domain.BetRepository) *UserUseCase {
	return &UserUseCase{users: users, bets: bets}
}

// CreateUser creates a user with an initial balance
func (uc *UserUseCase) CreateUser(ctx context.Context, username string, initialBalance decimal.Decimal) (*domain.User, error) {
	if username == "" {
		return nil, fmt.Errorf("username must not be empty")
	}
	if initialBalance.IsNegative() {
		return nil, fmt.Errorf("initial balance must not be negative")
	}

	user := &domain.User{
		Username: username,
		Balance:  initialBalance,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Int64("user_id", user.ID).
		Str("username", username).
		Str("balance", initialBalance.String()).
		Msg("user created")

	return user, nil
}

// AddBalance credits the user's balance
func (uc *UserUseCase) AddBalance(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.User, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}

	user, err := uc.users.AdjustBalance(ctx, userID, amount)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Int64("user_id", userID).
		Str("amount", amount.String()).
		Str("balance", user.Balance.String()).
		Msg("balance credited")

	return user, nil
}

// GetUser retrieves a user by id
func (uc *UserUseCase) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

// GetAllUsers lists every user
func (uc *UserUseCase) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	return uc.users.GetAll(ctx)
}

// GetUserBets lists all bets placed by the user
func (uc *UserUseCase) GetUserBets(ctx context.Context, userID int64) ([]*domain.Bet, error) {
	if _, err := uc.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return uc.bets.FindByUser(ctx, userID)
}

// DeleteUser removes a user and all of their bets
func (uc *UserUseCase) DeleteUser(ctx context.Context, userID int64) error {
	if _, err := uc.users.GetByID(ctx, userID); err != nil {
		return err
	}
	if err := uc.bets.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := uc.users.Delete(ctx, userID); err != nil {
		return err
	}

	logger.Info(ctx).Int64("user_id", userID).Msg("user deleted")
	return nil
}
