package coordinator

import (
	"math"
	"time"
)

// Result is the read-only outcome of a completed run.
type Result struct {
	// Estimate is 4 × Hits / EffectiveSamples.
	Estimate float64
	// AbsError is |Estimate − π|.
	AbsError float64
	// Elapsed is the monotonic wall-clock duration of partition, sampling and join.
	Elapsed time.Duration
	// Hits is the joined accumulator total.
	Hits int64
	// Samples is the requested budget.
	Samples int64
	// EffectiveSamples is the number of samples actually drawn.
	EffectiveSamples int64
	// Workers is the number of workers that contributed.
	Workers int
}

// Seconds returns Elapsed in seconds.
func (r *Result) Seconds() float64 {
	return r.Elapsed.Seconds()
}

func newResult(hits int64, b Budget, p *Partition, elapsed time.Duration) *Result {
	estimate := 4 * float64(hits) / float64(p.Effective)
	return &Result{
		Estimate:         estimate,
		AbsError:         math.Abs(estimate - math.Pi),
		Elapsed:          elapsed,
		Hits:             hits,
		Samples:          b.Samples,
		EffectiveSamples: p.Effective,
		Workers:          b.Workers,
	}
}
