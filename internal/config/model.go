package config

// Run is the unified representation of a run file. A nil field means the
// file left that setting unspecified.
type Run struct {
	Samples   *int64
	Workers   *int
	Quiet     *bool
	Seed      *uint64
	Seeds     []uint64
	Remainder *string
}

// Merge returns a copy of r with every field set in other taking precedence.
// A nil other leaves r unchanged.
func (r Run) Merge(other *Run) Run {
	if other == nil {
		return r
	}
	if other.Samples != nil {
		r.Samples = other.Samples
	}
	if other.Workers != nil {
		r.Workers = other.Workers
	}
	if other.Quiet != nil {
		r.Quiet = other.Quiet
	}
	if other.Seed != nil {
		r.Seed = other.Seed
	}
	if other.Seeds != nil {
		r.Seeds = other.Seeds
	}
	if other.Remainder != nil {
		r.Remainder = other.Remainder
	}
	return r
}
