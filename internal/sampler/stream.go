package sampler

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"
)

// StreamFactory allocates the pseudorandom stream for one worker. Each call
// must return a stream that is not shared with any other worker.
type StreamFactory interface {
	NewStream(worker int) (Stream, error)
}

// golden is the 64-bit golden ratio increment, used to spread worker indices
// across the second PCG seed word.
const golden = 0x9e3779b97f4a7c15

// SeededFactory builds PCG streams from a single base seed. Streams for
// different worker indices never share a seed pair, so workers started in
// the same instant still draw from distinct sequences.
type SeededFactory struct {
	Base uint64
}

// NewStream implements StreamFactory.
func (f SeededFactory) NewStream(worker int) (Stream, error) {
	if worker < 0 {
		return nil, fmt.Errorf("invalid worker index %d", worker)
	}
	return rand.New(rand.NewPCG(f.Base, uint64(worker+1)*golden)), nil
}

// NewEntropyFactory returns a SeededFactory whose base seed mixes the process
// id with the current wall-clock time. Two runs started in the same second by
// different processes, or in the same process at different nanoseconds,
// receive different bases.
func NewEntropyFactory() SeededFactory {
	return SeededFactory{Base: EntropySeed(os.Getpid(), time.Now())}
}

// EntropySeed combines a process id and a timestamp into a base seed.
func EntropySeed(pid int, now time.Time) uint64 {
	return (100*uint64(pid) + uint64(now.Unix())) ^ (uint64(now.UnixNano()) * golden)
}

// ExplicitSeeds assigns one caller-chosen seed to each worker, by index. The
// worker index is mixed into the stream as well, so two workers given the
// same seed still draw distinct sequences. Requesting a stream for an index
// without a seed is an allocation failure.
type ExplicitSeeds []uint64

// NewStream implements StreamFactory.
func (s ExplicitSeeds) NewStream(worker int) (Stream, error) {
	if worker < 0 || worker >= len(s) {
		return nil, fmt.Errorf("no explicit seed for worker %d (%d seeds configured)", worker, len(s))
	}
	return rand.New(rand.NewPCG(s[worker], uint64(worker+1)*golden)), nil
}
