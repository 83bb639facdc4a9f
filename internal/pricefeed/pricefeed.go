package pricefeed

import (
	"math/rand/v2"
	"sync"
	"time"
)

const (
	// MaxChange bounds the relative move of one step to [-MaxChange, +MaxChange).
	MaxChange = 0.05
	// MinPrice is the floor that keeps prices strictly positive.
	MinPrice = 0.000001
)

// NextPrice applies one bounded random-walk step to current.
func NextPrice(rng *rand.Rand, current float64) float64 {
	delta := (rng.Float64() - 0.5) * 2 * MaxChange
	return max(MinPrice, current*(1+delta))
}

// Simulator serializes access to a random source so it can be shared
// between the tick loop and manual ticks.
type Simulator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulator(rng *rand.Rand) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	}
	return &Simulator{rng: rng}
}

func (s *Simulator) Next(current float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return NextPrice(s.rng, current)
}
