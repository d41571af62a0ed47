package machine

import (
	"context"
	"time"
)

// Scheduler drives phase transitions and periodic tick broadcasts on
// wall-clock timers. Rounds never overlap, so a single logical timeline per
// round is enough; every callback revalidates the round id inside the
// machine lock before acting.
type Scheduler struct {
	BetWindow    time.Duration // WAITING phase length
	SpinTime     time.Duration // IN_PROGRESS phase length
	TickInterval time.Duration // periodic snapshot cadence
}

// NewScheduler creates a scheduler with production timings
func NewScheduler() *Scheduler {
	return &Scheduler{
		BetWindow:    30 * time.Second,
		SpinTime:     5 * time.Second,
		TickInterval: 10 * time.Second,
	}
}

// ArmRound arms the betting-window timer and starts the tick loop for a
// freshly created round.
func (s *Scheduler) ArmRound(sm *StateMachine, roundID int64) {
	time.AfterFunc(s.BetWindow, func() {
		sm.AdvanceToInProgress(context.Background(), roundID)
	})
	go s.tickLoop(sm, roundID)
}

// ArmFinish arms the spin timer once the round enters IN_PROGRESS
func (s *Scheduler) ArmFinish(sm *StateMachine, roundID int64) {
	time.AfterFunc(s.SpinTime, func() {
		sm.FinishRound(context.Background(), roundID)
	})
}

// tickLoop broadcasts a countdown snapshot immediately and then every
// TickInterval until the round is retired.
func (s *Scheduler) tickLoop(sm *StateMachine, roundID int64) {
	if !sm.BroadcastTick(context.Background(), roundID) {
		return
	}

	ticker := time.NewTicker(s.TickInterval)
	defer ticker.Stop()
	for range ticker.C {
		if !sm.BroadcastTick(context.Background(), roundID) {
			return
		}
	}
}
