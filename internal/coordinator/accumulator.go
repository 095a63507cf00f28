package coordinator

import "sync"

// Accumulator is the hit total shared by all workers of one run. The lock is
// held only for the addition itself.
type Accumulator struct {
	mu    sync.Mutex
	total int64
	adds  int
}

// Add adds a worker's local hit count to the total.
func (a *Accumulator) Add(hits int64) {
	a.mu.Lock()
	a.total += hits
	a.adds++
	a.mu.Unlock()
}

// Total returns the current total.
func (a *Accumulator) Total() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total
}

// contributions returns how many additions have been recorded.
func (a *Accumulator) contributions() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.adds
}
