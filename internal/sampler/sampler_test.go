package sampler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/burstpi/internal/sampler"
	"github.com/vk/burstpi/internal/testutil"
)

func TestSample_FixedSequence(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// (0.1,0.1)→0.02 in, (0.9,0.9)→1.62 out, (0.5,0.5)→0.5 in, (0.99,0.99)→1.9602 out.
	stream := testutil.NewSequenceStream(0.1, 0.1, 0.9, 0.9, 0.5, 0.5, 0.99, 0.99)
	s := sampler.New(stream)

	// --- Act ---
	hits := s.Sample(4)

	// --- Assert ---
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, 8, stream.Consumed(), "each sample must consume exactly two draws")
}

func TestSample_ZeroQuotaConsumesNothing(t *testing.T) {
	t.Parallel()

	stream := testutil.NewSequenceStream()
	s := sampler.New(stream)

	assert.Equal(t, int64(0), s.Sample(0))
	assert.Equal(t, int64(0), s.Sample(-3))
	assert.Equal(t, 0, stream.Consumed())
}

func TestInside_BoundaryExcluded(t *testing.T) {
	testCases := []struct {
		name   string
		x, y   float64
		inside bool
	}{
		{name: "origin", x: 0, y: 0, inside: true},
		{name: "on x axis boundary", x: 1, y: 0, inside: false},
		{name: "on y axis boundary", x: 0, y: 1, inside: false},
		{name: "just inside", x: 0.7, y: 0.7, inside: true},
		{name: "just outside", x: 0.71, y: 0.71, inside: false},
		{name: "far corner", x: 0.9999, y: 0.9999, inside: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.inside, sampler.Inside(tc.x, tc.y))
		})
	}
}

func TestSample_HitsNeverExceedQuota(t *testing.T) {
	t.Parallel()

	stream, err := sampler.SeededFactory{Base: 7}.NewStream(0)
	require.NoError(t, err)
	s := sampler.New(stream)

	for _, quota := range []int64{1, 10, 1000, 100000} {
		hits := s.Sample(quota)
		assert.GreaterOrEqual(t, hits, int64(0))
		assert.LessOrEqual(t, hits, quota)
	}
}

func TestSample_DeterministicForFixedSeed(t *testing.T) {
	t.Parallel()

	run := func() int64 {
		stream, err := sampler.SeededFactory{Base: 12345}.NewStream(2)
		require.NoError(t, err)
		return sampler.New(stream).Sample(250000)
	}

	first := run()
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, run(), "identical seed and quota must give identical hits")
	}
}
