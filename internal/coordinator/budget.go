package coordinator

import (
	"fmt"
	"strings"
)

// Budget is the immutable sample budget of a single run.
type Budget struct {
	// Samples is the total number of (x, y) draws requested.
	Samples int64
	// Workers is the number of parallel workers.
	Workers int
}

// Validate checks that both fields are positive.
func (b Budget) Validate() error {
	if b.Samples <= 0 {
		return &ConfigurationError{Field: "number of samples", Value: b.Samples, Reason: "must be positive"}
	}
	if b.Workers <= 0 {
		return &ConfigurationError{Field: "number of workers", Value: int64(b.Workers), Reason: "must be positive"}
	}
	return nil
}

// RemainderPolicy decides what happens to the samples left over when the
// budget does not divide evenly across workers.
type RemainderPolicy int

const (
	// RemainderDrop discards up to Workers-1 samples, matching plain floor
	// division of the budget.
	RemainderDrop RemainderPolicy = iota
	// RemainderAssign gives the remainder to the last worker so that every
	// requested sample is drawn.
	RemainderAssign
)

// String returns the name used on the command line and in run files.
func (p RemainderPolicy) String() string {
	switch p {
	case RemainderDrop:
		return "drop"
	case RemainderAssign:
		return "assign"
	default:
		return fmt.Sprintf("RemainderPolicy(%d)", int(p))
	}
}

// ParseRemainderPolicy converts "drop" or "assign" into a RemainderPolicy.
func ParseRemainderPolicy(s string) (RemainderPolicy, error) {
	switch strings.ToLower(s) {
	case "drop", "":
		return RemainderDrop, nil
	case "assign":
		return RemainderAssign, nil
	default:
		return RemainderDrop, fmt.Errorf("invalid remainder policy %q: must be 'drop' or 'assign'", s)
	}
}

// Partition is the per-worker split of a budget.
type Partition struct {
	// PerWorker is Samples / Workers, rounded down.
	PerWorker int64
	// Quotas holds the number of samples assigned to each worker, by index.
	Quotas []int64
	// Effective is the sum of Quotas: the samples that will actually be drawn.
	Effective int64
	// Dropped is the number of requested samples no worker will draw.
	Dropped int64
}

// NewPartition splits the budget across its workers. It fails with a
// ConfigurationError if the budget is invalid or if it has fewer samples than
// workers, since at least one worker would then have nothing to draw. The
// check runs before any per-worker state is allocated.
func NewPartition(b Budget, policy RemainderPolicy) (*Partition, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	workers := int64(b.Workers)
	if b.Samples < workers {
		return nil, &ConfigurationError{
			Field:  "number of samples",
			Value:  b.Samples,
			Reason: fmt.Sprintf("must be at least the number of workers (%d)", b.Workers),
		}
	}

	perWorker := b.Samples / workers
	remainder := b.Samples % workers

	quotas := make([]int64, b.Workers)
	for i := range quotas {
		quotas[i] = perWorker
	}

	p := &Partition{PerWorker: perWorker, Quotas: quotas}
	switch policy {
	case RemainderAssign:
		quotas[len(quotas)-1] += remainder
	default:
		p.Dropped = remainder
	}
	p.Effective = b.Samples - p.Dropped
	return p, nil
}
