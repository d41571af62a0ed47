// Package redis publishes round snapshots to a Redis channel so other
// processes (bots, dashboards) can follow the table without a WebSocket
// connection. The latest snapshot is also cached under a state key.
package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/domain"
	"github.com/yuuhLKT/roulette-api/pkg/logger"
)

const (
	// SnapshotChannel is the pub/sub channel snapshots are published on
	SnapshotChannel = "roulette:snapshots"
	// StateKey caches the most recent snapshot
	StateKey = "roulette:round:state"

	publishTimeout = 2 * time.Second
	stateTTL       = time.Minute
	queueSize      = 256
)

// Broadcaster implements domain.Broadcaster over Redis. Publishing is
// decoupled from the caller through a bounded queue so a slow Redis can never
// stall the round engine; overflow is dropped and logged.
type Broadcaster struct {
	client *redis.Client
	queue  chan []byte
}

// NewBroadcaster creates a redis broadcaster and starts its worker
func NewBroadcaster(client *redis.Client) *Broadcaster {
	b := &Broadcaster{
		client: client,
		queue:  make(chan []byte, queueSize),
	}
	go b.run()
	return b
}

// Publish implements domain.Broadcaster
func (b *Broadcaster) Publish(snapshot *domain.RoundSnapshot) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		logger.ErrorGlobal().Err(err).Int64("round_id", snapshot.RoundID).Msg("failed to serialize snapshot")
		return
	}

	select {
	case b.queue <- payload:
	default:
		logger.WarnGlobal().Int64("round_id", snapshot.RoundID).Msg("redis snapshot queue full, dropping")
	}
}

// Close stops the worker after draining queued snapshots
func (b *Broadcaster) Close() {
	close(b.queue)
}

func (b *Broadcaster) run() {
	for payload := range b.queue {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := b.client.Set(ctx, StateKey, payload, stateTTL).Err(); err != nil {
			logger.WarnGlobal().Err(err).Msg("failed to cache snapshot state in redis")
		}
		if err := b.client.Publish(ctx, SnapshotChannel, payload).Err(); err != nil {
			logger.WarnGlobal().Err(err).Msg("failed to publish snapshot to redis")
		}
		cancel()
	}
}
