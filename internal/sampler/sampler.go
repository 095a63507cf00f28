package sampler

// Stream is a source of uniformly distributed float64 values in [0,1).
// Implementations are owned by a single Sampler and need not be safe for
// concurrent use.
type Stream interface {
	Float64() float64
}

// Sampler counts quarter-disk hits over a quota of draws from its stream.
type Sampler struct {
	stream Stream
}

// New creates a Sampler that takes exclusive ownership of stream.
func New(stream Stream) *Sampler {
	return &Sampler{stream: stream}
}

// Sample draws quota (x, y) pairs and returns how many satisfy x²+y² < 1.
// Points on the boundary are excluded. A non-positive quota yields 0 and
// consumes no randomness.
func (s *Sampler) Sample(quota int64) int64 {
	var hits int64
	for i := int64(0); i < quota; i++ {
		x := s.stream.Float64()
		y := s.stream.Float64()
		if Inside(x, y) {
			hits++
		}
	}
	return hits
}

// Inside reports whether the point lies strictly inside the unit quarter-disk.
func Inside(x, y float64) bool {
	return x*x+y*y < 1
}
