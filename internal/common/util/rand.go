package util

import (
	"math/rand"
	"sync"
)

// LockedSource is a rand.Source64 guarded by a mutex so it can be shared
// across goroutines.
type LockedSource struct {
	mu  sync.Mutex
	src rand.Source64
}

func (s *LockedSource) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Int63()
}

func (s *LockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

func (s *LockedSource) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Seed(seed)
}

// NewThreadsafeRand returns a *rand.Rand that is safe to share across
// multiple goroutines.
func NewThreadsafeRand(seed int64) *rand.Rand {
	// The source returned by rand.NewSource also implements Source64.
	return rand.New(&LockedSource{
		src: rand.NewSource(seed).(rand.Source64),
	})
}
