package testutil

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vk/burstpi/internal/sampler"
)

// SequenceStream replays a fixed list of draws. It panics when exhausted so
// that a test consuming more randomness than expected fails loudly.
type SequenceStream struct {
	values []float64
	next   int
}

// NewSequenceStream returns a stream yielding values in order.
func NewSequenceStream(values ...float64) *SequenceStream {
	return &SequenceStream{values: values}
}

// Float64 implements sampler.Stream.
func (s *SequenceStream) Float64() float64 {
	if s.next >= len(s.values) {
		panic(fmt.Sprintf("testutil: sequence stream exhausted after %d draws", len(s.values)))
	}
	v := s.values[s.next]
	s.next++
	return v
}

// Consumed returns the number of values drawn so far.
func (s *SequenceStream) Consumed() int {
	return s.next
}

// SequenceFactory hands each worker its own SequenceStream.
type SequenceFactory map[int][]float64

// NewStream implements sampler.StreamFactory.
func (f SequenceFactory) NewStream(worker int) (sampler.Stream, error) {
	values, ok := f[worker]
	if !ok {
		return nil, fmt.Errorf("no sequence for worker %d", worker)
	}
	return NewSequenceStream(values...), nil
}

// ErrInjected is the error returned by FailingFactory for failing workers.
var ErrInjected = errors.New("injected allocation failure")

// FailingFactory fails allocation for the listed workers and delegates every
// other request to Next. It records which workers were requested.
type FailingFactory struct {
	Next sampler.StreamFactory
	Fail map[int]bool

	mu        sync.Mutex
	requested []int
}

// NewStream implements sampler.StreamFactory.
func (f *FailingFactory) NewStream(worker int) (sampler.Stream, error) {
	f.mu.Lock()
	f.requested = append(f.requested, worker)
	f.mu.Unlock()

	if f.Fail[worker] {
		return nil, ErrInjected
	}
	return f.Next.NewStream(worker)
}

// Requested returns the worker indices passed to NewStream, in call order.
func (f *FailingFactory) Requested() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.requested...)
}
