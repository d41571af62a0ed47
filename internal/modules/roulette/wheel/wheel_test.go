package wheel

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/domain"
)

func TestDrawReturnsValidColor(t *testing.T) {
	w := New()
	for i := 0; i < 1000; i++ {
		assert.True(t, w.Draw().IsValid())
	}
}

func TestDrawDistribution(t *testing.T) {
	w := NewWithSource(rand.NewSource(42))

	const draws = 100000
	counts := map[domain.Color]int{}
	for i := 0; i < draws; i++ {
		counts[w.Draw()]++
	}

	// Expected ratios: 12/25 red, 12/25 black, 1/25 green.
	assert.InDelta(t, draws*12/25, counts[domain.ColorRed], draws*0.01)
	assert.InDelta(t, draws*12/25, counts[domain.ColorBlack], draws*0.01)
	assert.InDelta(t, draws*1/25, counts[domain.ColorGreen], draws*0.005)

	require.Positive(t, counts[domain.ColorGreen], "green must be drawable")
}

func TestDrawDeterministicWithSeed(t *testing.T) {
	w1 := NewWithSource(rand.NewSource(7))
	w2 := NewWithSource(rand.NewSource(7))

	for i := 0; i < 100; i++ {
		assert.Equal(t, w1.Draw(), w2.Draw())
	}
}
