package campaign

import (
	"math/rand"
	"sync"
	"time"
)

// NoiseSource draws uniform integers in [0, n). *rand.Rand satisfies it.
type NoiseSource interface {
	Intn(n int) int
}

// NewSeededSource returns a deterministic source for reproducible runs
func NewSeededSource(seed int64) NoiseSource {
	return rand.New(rand.NewSource(seed))
}

// lockedSource serialises access to a source shared by concurrent callers
type lockedSource struct {
	mu  sync.Mutex
	src NoiseSource
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Intn(n)
}

func newDefaultSource() NoiseSource {
	return &lockedSource{src: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// perturb applies multiplicative noise of at most level percent. The factor
// is drawn in per-mille steps from [-level/100, level/100), so the lower
// bound can be hit and the upper bound cannot.
func perturb(v float64, level int, src NoiseSource) float64 {
	if level <= 0 {
		return v
	}
	spread := level * 10
	r := float64(src.Intn(spread*2)-spread) / 1000
	return v + v*r
}
