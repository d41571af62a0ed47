package machine

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/domain"
)

func TestBuildSnapshotWireFormat(t *testing.T) {
	round := domain.NewRound()
	round.ID = 42

	bet := domain.NewBet(round.ID, 7, domain.ColorRed, decimal.NewFromInt(50))
	bet.ID = 1001
	bet.PlacedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	remaining := int64(25)
	payload, err := json.Marshal(BuildSnapshot(round, []*domain.Bet{bet}, &remaining))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.Equal(t, float64(42), decoded["roundId"])
	assert.Equal(t, "WAITING", decoded["status"])
	assert.Contains(t, decoded, "winningColor")
	assert.Nil(t, decoded["winningColor"])
	assert.Equal(t, float64(25), decoded["timeRemaining"])

	bets, ok := decoded["bets"].([]any)
	require.True(t, ok)
	require.Len(t, bets, 1)
	view := bets[0].(map[string]any)
	assert.Equal(t, float64(1001), view["id"])
	assert.Equal(t, float64(7), view["userId"])
	assert.Equal(t, "50", view["amount"])
	assert.Equal(t, "RED", view["color"])
	assert.Equal(t, "PENDING", view["status"])
	assert.Equal(t, float64(42), view["roundId"])
	assert.Contains(t, view, "winnings")
	assert.Nil(t, view["winnings"])
}

func TestBuildSnapshotOmitsCountdownWhenAbsent(t *testing.T) {
	round := domain.NewRound()
	round.ID = 1

	payload, err := json.Marshal(BuildSnapshot(round, nil, nil))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.NotContains(t, decoded, "timeRemaining")

	// Empty rounds still carry an empty bets array, not null.
	assert.Equal(t, []any{}, decoded["bets"])
}

func TestBuildSnapshotResolvedBet(t *testing.T) {
	winning := domain.ColorGreen
	now := time.Now()
	round := &domain.Round{
		ID:           9,
		Status:       domain.RoundStatusFinished,
		WinningColor: &winning,
		StartTime:    now.Add(-35 * time.Second),
		EndTime:      &now,
	}

	bet := domain.NewBet(round.ID, 3, domain.ColorGreen, decimal.NewFromInt(50))
	bet.Status = domain.BetStatusWon
	bet.Winnings = decimal.NewNullDecimal(decimal.NewFromInt(700))

	snapshot := BuildSnapshot(round, []*domain.Bet{bet}, nil)
	require.NotNil(t, snapshot.WinningColor)
	assert.Equal(t, domain.ColorGreen, *snapshot.WinningColor)
	require.Len(t, snapshot.Bets, 1)
	require.NotNil(t, snapshot.Bets[0].Winnings)
	assert.True(t, snapshot.Bets[0].Winnings.Equal(decimal.NewFromInt(700)))
}
