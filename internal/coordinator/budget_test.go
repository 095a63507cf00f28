package coordinator

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetValidate(t *testing.T) {
	testCases := []struct {
		name      string
		budget    Budget
		expectErr string
	}{
		{name: "valid", budget: Budget{Samples: 10, Workers: 1}},
		{name: "zero samples", budget: Budget{Samples: 0, Workers: 1}, expectErr: "number of samples must be positive (got: 0)"},
		{name: "negative samples", budget: Budget{Samples: -5, Workers: 1}, expectErr: "number of samples must be positive (got: -5)"},
		{name: "zero workers", budget: Budget{Samples: 10, Workers: 0}, expectErr: "number of workers must be positive (got: 0)"},
		{name: "negative workers", budget: Budget{Samples: 10, Workers: -3}, expectErr: "number of workers must be positive (got: -3)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.budget.Validate()
			if tc.expectErr == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, tc.expectErr)
			assert.True(t, errors.Is(err, ErrConfiguration))

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestNewPartition_FloorDivisionNeverExceedsBudget(t *testing.T) {
	for _, samples := range []int64{1, 2, 3, 7, 10, 99, 100, 1001, 10000007} {
		for _, workers := range []int{1, 2, 3, 4, 7, 16} {
			if samples < int64(workers) {
				continue
			}
			t.Run(fmt.Sprintf("S=%d/W=%d", samples, workers), func(t *testing.T) {
				p, err := NewPartition(Budget{Samples: samples, Workers: workers}, RemainderDrop)
				require.NoError(t, err)

				assert.Equal(t, samples/int64(workers), p.PerWorker)
				assert.LessOrEqual(t, p.PerWorker*int64(workers), samples)
				assert.Equal(t, p.PerWorker*int64(workers), p.Effective)
				assert.Equal(t, samples, p.Effective+p.Dropped)
				assert.Less(t, p.Dropped, int64(workers))
				require.Len(t, p.Quotas, workers)
				for _, q := range p.Quotas {
					assert.Equal(t, p.PerWorker, q)
				}
			})
		}
	}
}

func TestNewPartition_AssignGivesRemainderToLastWorker(t *testing.T) {
	p, err := NewPartition(Budget{Samples: 10, Workers: 4}, RemainderAssign)
	require.NoError(t, err)

	assert.Equal(t, []int64{2, 2, 2, 4}, p.Quotas)
	assert.Equal(t, int64(10), p.Effective)
	assert.Equal(t, int64(0), p.Dropped)
}

func TestNewPartition_FewerSamplesThanWorkers(t *testing.T) {
	for _, policy := range []RemainderPolicy{RemainderDrop, RemainderAssign} {
		t.Run(policy.String(), func(t *testing.T) {
			p, err := NewPartition(Budget{Samples: 3, Workers: 4}, policy)

			require.Error(t, err)
			assert.Nil(t, p)
			assert.True(t, errors.Is(err, ErrConfiguration))
			assert.Contains(t, err.Error(), "at least the number of workers (4)")
		})
	}

	p, err := NewPartition(Budget{Samples: 4, Workers: 4}, RemainderAssign)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 1, 1, 1}, p.Quotas)
}

func TestNewPartition_HugeWorkerCountIsConfigurationError(t *testing.T) {
	for _, policy := range []RemainderPolicy{RemainderDrop, RemainderAssign} {
		t.Run(policy.String(), func(t *testing.T) {
			var (
				p   *Partition
				err error
			)
			require.NotPanics(t, func() {
				p, err = NewPartition(Budget{Samples: 10, Workers: math.MaxInt}, policy)
			})

			require.Error(t, err)
			assert.Nil(t, p)
			assert.True(t, errors.Is(err, ErrConfiguration))
		})
	}
}

func TestParseRemainderPolicy(t *testing.T) {
	testCases := []struct {
		in        string
		expected  RemainderPolicy
		expectErr bool
	}{
		{in: "drop", expected: RemainderDrop},
		{in: "", expected: RemainderDrop},
		{in: "ASSIGN", expected: RemainderAssign},
		{in: "spread", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			p, err := ParseRemainderPolicy(tc.in)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, p)
			assert.Equal(t, p, mustParse(t, p.String()))
		})
	}
}

func mustParse(t *testing.T, s string) RemainderPolicy {
	t.Helper()
	p, err := ParseRemainderPolicy(s)
	require.NoError(t, err)
	return p
}
