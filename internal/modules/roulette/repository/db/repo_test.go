package db

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Round{}, &domain.Bet{}))
	return db
}

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user := &domain.User{Username: "alice", Balance: decimal.NewFromInt(100)}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(100)))

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	updated, err := repo.AdjustBalance(ctx, user.ID, decimal.NewFromInt(-30))
	require.NoError(t, err)
	assert.True(t, updated.Balance.Equal(decimal.NewFromInt(70)), "got %s", updated.Balance)

	_, err = repo.AdjustBalance(ctx, 999, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.Delete(ctx, user.ID))
	assert.ErrorIs(t, repo.Delete(ctx, user.ID), domain.ErrUserNotFound)
}

func TestRoundRepository(t *testing.T) {
	repo := NewRoundRepository(newTestDB(t))
	ctx := context.Background()

	round := domain.NewRound()
	require.NoError(t, repo.Create(ctx, round))
	require.NotZero(t, round.ID)

	winning := domain.ColorGreen
	round.Status = domain.RoundStatusFinished
	round.WinningColor = &winning
	require.NoError(t, repo.Update(ctx, round))

	got, err := repo.GetByID(ctx, round.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoundStatusFinished, got.Status)
	require.NotNil(t, got.WinningColor)
	assert.Equal(t, domain.ColorGreen, *got.WinningColor)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrRoundNotFound)

	second := domain.NewRound()
	require.NoError(t, repo.Create(ctx, second))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, round.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
}

func TestBetRepository(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewBetRepository(gdb)
	ctx := context.Background()

	first := domain.NewBet(1, 7, domain.ColorRed, decimal.NewFromInt(10))
	second := domain.NewBet(1, 7, domain.ColorBlack, decimal.NewFromInt(20))
	other := domain.NewBet(2, 8, domain.ColorRed, decimal.NewFromInt(5))
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, other))

	byRound, err := repo.FindByRound(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byRound, 2)
	assert.Equal(t, first.ID, byRound[0].ID)
	assert.Equal(t, second.ID, byRound[1].ID)

	first.Status = domain.BetStatusWon
	first.Winnings = decimal.NewNullDecimal(decimal.NewFromInt(20))
	require.NoError(t, repo.Update(ctx, first))

	byRound, err = repo.FindByRound(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.BetStatusWon, byRound[0].Status)
	require.True(t, byRound[0].Winnings.Valid)
	assert.True(t, byRound[0].Winnings.Decimal.Equal(decimal.NewFromInt(20)))
	assert.False(t, byRound[1].Winnings.Valid, "unsettled bet keeps null winnings")

	byUser, err := repo.FindByUser(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	require.NoError(t, repo.DeleteByUser(ctx, 7))
	byUser, err = repo.FindByUser(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, byUser)

	byUser, err = repo.FindByUser(ctx, 8)
	require.NoError(t, err)
	assert.Len(t, byUser, 1)
}
