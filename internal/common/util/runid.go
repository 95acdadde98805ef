package util

import (
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid"
)

var (
	runIDEntropy = ulid.Monotonic(NewThreadsafeRand(time.Now().UnixNano()), 0)
	runIDMu      sync.Mutex
)

// NewRunID returns a lowercase ULID used to tag all log lines of one run.
// The monotonic reader is not goroutine safe, hence the mutex.
func NewRunID() string {
	runIDMu.Lock()
	defer runIDMu.Unlock()
	return strings.ToLower(ulid.MustNew(ulid.Now(), runIDEntropy).String())
}
