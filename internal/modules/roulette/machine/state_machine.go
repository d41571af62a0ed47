// Package machine owns the single active round's lifecycle: creation, bet
// acceptance, timed phase transitions and retirement. All mutations of the
// active round go through one mutex; scheduler callbacks re-check the round
// id they target so a stale timer is a benign no-op.
package machine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/domain"
	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/wheel"
	"github.com/yuuhLKT/roulette-api/pkg/logger"
)

// StateMachine manages the round lifecycle (NONE -> WAITING -> IN_PROGRESS ->
// FINISHED -> NONE). Rounds start lazily: the first bet after retirement
// creates the next round.
type StateMachine struct {
	mu      sync.Mutex
	current *domain.Round

	wheel       *wheel.Wheel
	users       domain.UserRepository
	rounds      domain.RoundRepository
	bets        domain.BetRepository
	settler     *Settler
	broadcaster domain.Broadcaster
	scheduler   *Scheduler
}

// NewStateMachine creates a state machine with no active round
func NewStateMachine(
	w *wheel.Wheel,
	users domain.UserRepository,
	rounds domain.RoundRepository,
	bets domain.BetRepository,
	broadcaster domain.Broadcaster,
	scheduler *Scheduler,
) *StateMachine {
	return &StateMachine{
		wheel:       w,
		users:       users,
		rounds:      rounds,
		bets:        bets,
		settler:     NewSettler(users, bets),
		broadcaster: broadcaster,
		scheduler:   scheduler,
	}
}

// EnsureActiveRound returns the active round, creating one if none exists.
// Idempotent while a round is active.
func (sm *StateMachine) EnsureActiveRound(ctx context.Context) (*domain.Round, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.ensureActiveRoundLocked(ctx)
}

func (sm *StateMachine) ensureActiveRoundLocked(ctx context.Context) (*domain.Round, error) {
	if sm.current != nil {
		return sm.current, nil
	}

	round := domain.NewRound()
	if err := sm.rounds.Create(ctx, round); err != nil {
		return nil, fmt.Errorf("failed to create round: %w", err)
	}
	sm.current = round
	sm.scheduler.ArmRound(sm, round.ID)

	logger.Info(ctx).
		Int64("round_id", round.ID).
		Msg("round started, betting window open")

	return round, nil
}

// PlaceBet validates the user and stake, debits the balance, records a
// PENDING bet on the active round and broadcasts a snapshot. Debit and bet
// creation happen inside the machine lock, so a bet is never recorded without
// its debit.
func (sm *StateMachine) PlaceBet(ctx context.Context, userID int64, amount decimal.Decimal, color domain.Color) (*domain.Bet, error) {
	if !color.IsValid() {
		return nil, fmt.Errorf("invalid color: %s", color)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("bet amount must be positive")
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	round, err := sm.ensureActiveRoundLocked(ctx)
	if err != nil {
		return nil, err
	}

	user, err := sm.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.CanAfford(amount) {
		logger.Warn(ctx).
			Int64("user_id", userID).
			Str("amount", amount.String()).
			Str("balance", user.Balance.String()).
			Msg("bet rejected, stake exceeds balance")
		return nil, domain.ErrInsufficientBalance
	}

	if _, err := sm.users.AdjustBalance(ctx, userID, amount.Neg()); err != nil {
		return nil, fmt.Errorf("failed to debit user %d: %w", userID, err)
	}

	bet := domain.NewBet(round.ID, userID, color, amount)
	if err := sm.bets.Create(ctx, bet); err != nil {
		// Undo the debit so the ledger stays consistent with the bet set.
		if _, rbErr := sm.users.AdjustBalance(ctx, userID, amount); rbErr != nil {
			logger.Error(ctx).Err(rbErr).
				Int64("user_id", userID).
				Str("amount", amount.String()).
				Msg("failed to refund debit after bet persistence failure")
		}
		return nil, fmt.Errorf("failed to save bet: %w", err)
	}

	logger.Info(ctx).
		Int64("round_id", round.ID).
		Int64("user_id", userID).
		Int64("bet_id", bet.ID).
		Str("color", string(color)).
		Str("amount", amount.String()).
		Msg("bet placed")

	sm.broadcastLocked(ctx, round, nil)

	return bet, nil
}

// AdvanceToInProgress moves the round into its spin phase. Invoked by the
// scheduler at startTime + betting window. No-op if the round was retired.
func (sm *StateMachine) AdvanceToInProgress(ctx context.Context, roundID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.isActiveLocked(roundID) {
		return
	}
	round := sm.current

	round.Status = domain.RoundStatusInProgress
	if err := sm.rounds.Update(ctx, round); err != nil {
		logger.Error(ctx).Err(err).Int64("round_id", roundID).Msg("failed to persist IN_PROGRESS transition")
	}

	logger.Info(ctx).Int64("round_id", roundID).Msg("betting closed, wheel spinning")

	sm.broadcastLocked(ctx, round, nil)
	sm.scheduler.ArmFinish(sm, roundID)
}

// FinishRound draws the winning color, settles every bet of the round,
// broadcasts the final snapshot and retires the round. Invoked by the
// scheduler at the end of the spin phase. No-op if the round was retired.
func (sm *StateMachine) FinishRound(ctx context.Context, roundID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.isActiveLocked(roundID) {
		return
	}
	round := sm.current

	winning := sm.wheel.Draw()
	now := time.Now()
	round.Status = domain.RoundStatusFinished
	round.WinningColor = &winning
	round.EndTime = &now
	if err := sm.rounds.Update(ctx, round); err != nil {
		logger.Error(ctx).Err(err).Int64("round_id", roundID).Msg("failed to persist FINISHED transition")
	}

	bets, err := sm.bets.FindByRound(ctx, roundID)
	if err != nil {
		logger.Error(ctx).Err(err).Int64("round_id", roundID).Msg("failed to load bets for settlement")
		bets = nil
	}
	sm.settler.Resolve(ctx, bets, winning)

	logger.Info(ctx).
		Int64("round_id", roundID).
		Str("winning_color", string(winning)).
		Int("total_bets", len(bets)).
		Msg("round finished")

	sm.broadcastLocked(ctx, round, nil)
	sm.current = nil
}

// BroadcastTick publishes a snapshot annotated with the remaining betting
// time. Returns false once the round is no longer active so the scheduler can
// stop its tick loop.
func (sm *StateMachine) BroadcastTick(ctx context.Context, roundID int64) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.isActiveLocked(roundID) {
		return false
	}
	round := sm.current

	elapsed := int64(time.Since(round.StartTime).Seconds())
	remaining := int64(sm.scheduler.BetWindow.Seconds()) - elapsed
	if remaining <= 0 {
		// The one-shot transition handles the boundary.
		return true
	}

	sm.broadcastLocked(ctx, round, &remaining)
	return true
}

// CurrentRound returns a copy of the active round, or nil when the machine is
// between rounds.
func (sm *StateMachine) CurrentRound() *domain.Round {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.current == nil {
		return nil
	}
	r := *sm.current
	return &r
}

func (sm *StateMachine) isActiveLocked(roundID int64) bool {
	return sm.current != nil && sm.current.ID == roundID
}

// broadcastLocked assembles the round+bets projection and pushes it to the
// broadcast channel. Publishing happens under the machine lock so every
// subscriber observes phase snapshots in order.
func (sm *StateMachine) broadcastLocked(ctx context.Context, round *domain.Round, timeRemaining *int64) {
	bets, err := sm.bets.FindByRound(ctx, round.ID)
	if err != nil {
		logger.Error(ctx).Err(err).Int64("round_id", round.ID).Msg("failed to load bets for snapshot")
	}
	sm.broadcaster.Publish(BuildSnapshot(round, bets, timeRemaining))
}
