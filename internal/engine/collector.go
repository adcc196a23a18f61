package engine

import (
	"errors"
	"sync"
)

// errCapReached signals that the collector holds as many solutions as
// the caller asked for. The search engine treats it as a normal stop,
// not a failure.
var errCapReached = errors.New("solution cap reached")

// Collector accumulates distinct solutions in discovery order. It is
// the only state shared between parallel branch workers, so all access
// is mutex-guarded.
type Collector struct {
	mu   sync.Mutex
	max  int // 0 = unbounded
	seen map[string]bool
	sols [][]int
}

// NewCollector returns a collector capped at max solutions; max 0 means
// unbounded.
func NewCollector(max int) *Collector {
	return &Collector{
		max:  max,
		seen: make(map[string]bool),
	}
}

// Add records a copy of sol unless it duplicates a solution already
// collected. Returns errCapReached once the cap is met, both when the
// call fills the last slot and on every call after.
func (c *Collector) Add(sol []int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.max > 0 && len(c.sols) >= c.max {
		return errCapReached
	}
	key := solutionKey(sol)
	if !c.seen[key] {
		c.seen[key] = true
		cp := make([]int, len(sol))
		copy(cp, sol)
		c.sols = append(c.sols, cp)
	}
	if c.max > 0 && len(c.sols) >= c.max {
		return errCapReached
	}
	return nil
}

// Full reports whether the cap has been reached.
func (c *Collector) Full() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.max > 0 && len(c.sols) >= c.max
}

// Len returns the number of solutions collected so far.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sols)
}

// Results returns the collected solutions in discovery order. The
// slice is a copy; the solutions themselves are not re-copied.
func (c *Collector) Results() [][]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]int, len(c.sols))
	copy(out, c.sols)
	return out
}

// solutionKey folds a solution into its 81-digit string form, used for
// deduplication.
func solutionKey(sol []int) string {
	b := make([]byte, len(sol))
	for i, v := range sol {
		b[i] = byte('0' + v)
	}
	return string(b)
}
