// Package local adapts the ws manager onto the roulette broadcast contract.
package local

import (
	"encoding/json"

	"github.com/yuuhLKT/roulette-api/internal/modules/gateway/ws"
	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/domain"
	"github.com/yuuhLKT/roulette-api/pkg/logger"
)

// Broadcaster serializes round snapshots and fans them out to all live
// WebSocket viewers.
type Broadcaster struct {
	manager *ws.Manager
}

// NewBroadcaster creates a ws-backed broadcaster
func NewBroadcaster(manager *ws.Manager) *Broadcaster {
	return &Broadcaster{manager: manager}
}

// Publish implements domain.Broadcaster
func (b *Broadcaster) Publish(snapshot *domain.RoundSnapshot) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		logger.ErrorGlobal().Err(err).Int64("round_id", snapshot.RoundID).Msg("failed to serialize snapshot")
		return
	}
	b.manager.Broadcast(payload)
}

// Multi fans a snapshot out to several broadcast sinks
type Multi struct {
	sinks []domain.Broadcaster
}

// NewMulti creates a broadcaster that publishes to every given sink
func NewMulti(sinks ...domain.Broadcaster) *Multi {
	return &Multi{sinks: sinks}
}

// Publish implements domain.Broadcaster
func (m *Multi) Publish(snapshot *domain.RoundSnapshot) {
	for _, sink := range m.sinks {
		sink.Publish(snapshot)
	}
}
