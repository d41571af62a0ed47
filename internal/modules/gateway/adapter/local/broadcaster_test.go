package local

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/domain"
	"github.com/yuuhLKT/roulette-api/pkg/logger"
)

func init() {
	logger.Init(logger.Config{Level: "error"})
}

type recordingSink struct {
	mu        sync.Mutex
	published []*domain.RoundSnapshot
}

func (r *recordingSink) Publish(s *domain.RoundSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, s)
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.published)
}

func TestMultiFansOutToEverySink(t *testing.T) {
	first := &recordingSink{}
	second := &recordingSink{}
	multi := NewMulti(first, second)

	snapshot := &domain.RoundSnapshot{RoundID: 1, Status: domain.RoundStatusWaiting}
	multi.Publish(snapshot)
	multi.Publish(snapshot)

	assert.Equal(t, 2, first.count())
	assert.Equal(t, 2, second.count())
}

func TestMultiWithNoSinks(t *testing.T) {
	multi := NewMulti()
	assert.NotPanics(t, func() {
		multi.Publish(&domain.RoundSnapshot{RoundID: 1})
	})
}
