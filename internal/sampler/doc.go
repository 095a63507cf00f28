// Package sampler implements the leaf of the estimation pipeline: a single
// worker's sampling loop over its own pseudorandom stream.
//
// A Sampler owns exactly one Stream. It draws (x, y) pairs uniformly from
// [0,1)² and counts the pairs that fall strictly inside the unit quarter-disk.
// It performs no I/O, takes no locks and cannot be cancelled; given a fixed
// seed and quota the hit count is fully deterministic.
//
// Streams are produced by a StreamFactory, one per worker index.
// NewEntropyFactory derives the base seed from process identity and
// wall-clock time. A SeededFactory with a fixed base, or ExplicitSeeds, gives
// reproducible streams for tests and repeatable runs.
package sampler
