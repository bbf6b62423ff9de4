// Package random provides the seedable random source used for event rolls
// and forecasts.
package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source is a math/rand generator safe for concurrent use
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a source. A zero seed draws one from the clock.
func New(seed int64) *Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

func (s *Source) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *Source) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
