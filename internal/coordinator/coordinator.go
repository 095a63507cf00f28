// Package coordinator runs one Monte Carlo estimation of π across a fixed pool
// of parallel workers.
//
// The coordinator partitions the sample budget, allocates an independent
// stream for every worker, launches all workers at once and waits for every
// one of them to terminate. Each worker adds its local hit count to a shared
// Accumulator exactly once, under the accumulator's lock; nothing else is
// shared. A run either yields a complete Result or fails without one.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vk/burstpi/internal/ctxlog"
	"github.com/vk/burstpi/internal/sampler"
)

// Coordinator owns the budget, the worker pool lifecycle and the shared
// accumulator of a single run. It is not reusable.
type Coordinator struct {
	budget  Budget
	policy  RemainderPolicy
	streams sampler.StreamFactory
	now     func() time.Time

	state atomic.Int32
	acc   Accumulator
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithStreams sets the factory used to allocate each worker's stream.
func WithStreams(f sampler.StreamFactory) Option {
	return func(c *Coordinator) { c.streams = f }
}

// WithRemainder sets the remainder policy. The default is RemainderDrop.
func WithRemainder(p RemainderPolicy) Option {
	return func(c *Coordinator) { c.policy = p }
}

// WithClock replaces the wall clock used to time the run.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// New creates an Idle coordinator for the budget. The budget is validated
// here so that configuration errors surface before anything runs.
func New(b Budget, opts ...Option) (*Coordinator, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	c := &Coordinator{
		budget: b,
		policy: RemainderDrop,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.streams == nil {
		c.streams = sampler.NewEntropyFactory()
	}
	return c, nil
}

// State returns the coordinator's current lifecycle state.
func (c *Coordinator) State() State {
	return State(c.state.Load())
}

func (c *Coordinator) transition(ctx context.Context, to State) {
	from := State(c.state.Swap(int32(to)))
	ctxlog.FromContext(ctx).Debug("Coordinator state changed.", "from", from, "to", to)
}

// Run executes the estimation to completion and returns its Result. The
// context carries the logger only; a started run is never cancelled.
func (c *Coordinator) Run(ctx context.Context) (*Result, error) {
	if !c.state.CompareAndSwap(int32(Idle), int32(Partitioned)) {
		return nil, fmt.Errorf("%w (state: %s)", ErrAlreadyRun, c.State())
	}
	logger := ctxlog.FromContext(ctx)

	part, err := NewPartition(c.budget, c.policy)
	if err != nil {
		c.transition(ctx, Aborted)
		return nil, err
	}
	start := c.now()
	logger.Debug("Sample budget partitioned.",
		"samples", c.budget.Samples,
		"workers", c.budget.Workers,
		"per_worker", part.PerWorker,
		"effective", part.Effective,
		"dropped", part.Dropped,
		"remainder", c.policy,
	)
	if part.Dropped > 0 {
		logger.Warn("Remainder samples dropped by floor division.", "dropped", part.Dropped, "effective", part.Effective)
	}

	samplers, err := c.allocate(part)
	if err != nil {
		c.transition(ctx, Aborted)
		return nil, err
	}

	c.transition(ctx, Running)
	var g errgroup.Group
	errs := make([]error, len(samplers))
	for i, s := range samplers {
		quota := part.Quotas[i]
		g.Go(func() error {
			hits, err := sample(s, quota)
			if err != nil {
				errs[i] = &WorkerError{Worker: i, Err: err}
				return errs[i]
			}
			c.acc.Add(hits)
			logger.Debug("Worker finished.", "worker", i, "quota", quota, "hits", hits)
			return nil
		})
	}
	// Wait only reports the first failure; every failed worker is reported.
	if g.Wait() != nil {
		c.transition(ctx, Aborted)
		return nil, fmt.Errorf("worker pool failed: %w", errors.Join(errs...))
	}
	c.transition(ctx, Joined)

	elapsed := c.now().Sub(start)
	res := newResult(c.acc.Total(), c.budget, part, elapsed)
	c.transition(ctx, Reported)

	logger.Info("Estimation finished.", "estimate", res.Estimate, "error", res.AbsError, "elapsed", elapsed)
	return res, nil
}

// allocate creates one sampler per worker before any of them starts. All
// failures are reported together.
func (c *Coordinator) allocate(part *Partition) ([]*sampler.Sampler, error) {
	samplers := make([]*sampler.Sampler, len(part.Quotas))
	var errs []error
	for i := range samplers {
		stream, err := c.streams.NewStream(i)
		if err == nil && stream == nil {
			err = errors.New("factory returned a nil stream")
		}
		if err != nil {
			errs = append(errs, &AllocationError{Worker: i, Err: err})
			continue
		}
		samplers[i] = sampler.New(stream)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return samplers, nil
}

// sample runs one worker's quota. A panic raised by the worker's stream is
// returned as an error so that it aborts the run instead of the process.
func sample(s *sampler.Sampler, quota int64) (hits int64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sampler panicked: %v", r)
		}
	}()
	return s.Sample(quota), nil
}
