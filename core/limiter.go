package core

import (
	"fmt"
	"sync"
)

// IterationLimitError is returned when a run exhausts its iteration bound
// without reaching a final answer.
type IterationLimitError struct {
	Max int
}

func (e *IterationLimitError) Error() string {
	return fmt.Sprintf("agent reached max iterations: %d", e.Max)
}

// IterationLimiter enforces a maximum number of model requests per run.
type IterationLimiter struct {
	max   int
	count int
	mu    sync.Mutex
}

// NewIterationLimiter creates a new limiter with a max number of iterations.
// If max <= 0, unlimited iterations are allowed.
func NewIterationLimiter(max int) *IterationLimiter {
	return &IterationLimiter{max: max}
}

// Increment records the start of an iteration. It returns an
// *IterationLimitError once the bound is exceeded, so with max = N exactly N
// increments succeed.
func (l *IterationLimiter) Increment() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.count++
	if l.max > 0 && l.count > l.max {
		return &IterationLimitError{Max: l.max}
	}

	return nil
}

// Count returns the number of iterations started so far.
func (l *IterationLimiter) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.max > 0 && l.count > l.max {
		return l.max
	}

	return l.count
}

// Remaining returns how many iterations are left before hitting the limit.
func (l *IterationLimiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.max <= 0 {
		return -1 // unlimited
	}
	if l.count >= l.max {
		return 0
	}

	return l.max - l.count
}
