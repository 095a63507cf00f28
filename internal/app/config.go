package app

import (
	"github.com/vk/burstpi/internal/coordinator"
	"github.com/vk/burstpi/internal/sampler"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Samples int64
	Workers int
	Quiet   bool

	// Seed, when set, makes the run reproducible from a single base seed.
	Seed *uint64
	// Seeds, when set, gives each worker its own explicit seed and takes
	// precedence over Seed.
	Seeds     []uint64
	Remainder coordinator.RemainderPolicy

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy. Non-positive sample or worker
// counts are reported as a *coordinator.ConfigurationError.
func NewConfig(cfg Config) (*Config, error) {
	if err := cfg.Budget().Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Budget returns the coordinator budget described by the configuration.
func (c *Config) Budget() coordinator.Budget {
	return coordinator.Budget{Samples: c.Samples, Workers: c.Workers}
}

// Streams returns the stream factory implied by the seeding settings.
func (c *Config) Streams() sampler.StreamFactory {
	switch {
	case c.Seeds != nil:
		return sampler.ExplicitSeeds(c.Seeds)
	case c.Seed != nil:
		return sampler.SeededFactory{Base: *c.Seed}
	default:
		return sampler.NewEntropyFactory()
	}
}

// seeding names the seeding mode for logs.
func (c *Config) seeding() string {
	switch {
	case c.Seeds != nil:
		return "explicit"
	case c.Seed != nil:
		return "base"
	default:
		return "entropy"
	}
}
