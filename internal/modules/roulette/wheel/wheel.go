// Package wheel models the roulette wheel draw.
package wheel

import (
	"math/rand"
	"time"

	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/domain"
)

// pocketCount is the total number of pockets: 12 RED, 12 BLACK, 1 GREEN.
const pocketCount = 25

// Wheel maps a uniform random draw to a winning color.
// The rand source is injectable so tests can seed it deterministically.
type Wheel struct {
	rnd *rand.Rand
}

// New creates a wheel seeded from the wall clock
func New() *Wheel {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource creates a wheel with an explicit rand source
func NewWithSource(src rand.Source) *Wheel {
	return &Wheel{rnd: rand.New(src)}
}

// Draw spins the wheel once and returns the winning color
func (w *Wheel) Draw() domain.Color {
	switch p := w.rnd.Intn(pocketCount); {
	case p < 12:
		return domain.ColorRed
	case p < 24:
		return domain.ColorBlack
	default:
		return domain.ColorGreen
	}
}
