package quota_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restokit/entitlement/pkg/quota"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		max     int64
		current int64
		want    quota.LimitResult
	}{
		{
			name:    "under the limit",
			max:     100,
			current: 40,
			want: quota.LimitResult{
				Resource: quota.ResourceProducts, Current: 40, Max: 100,
				Remaining: 60, Percentage: 40,
			},
		},
		{
			name:    "exactly at the limit counts as exceeded",
			max:     100,
			current: 100,
			want: quota.LimitResult{
				Resource: quota.ResourceProducts, Current: 100, Max: 100,
				Remaining: 0, Percentage: 100, Exceeded: true,
			},
		},
		{
			name:    "over the limit clamps remaining and percentage",
			max:     100,
			current: 150,
			want: quota.LimitResult{
				Resource: quota.ResourceProducts, Current: 150, Max: 100,
				Remaining: 0, Percentage: 100, Exceeded: true,
			},
		},
		{
			name:    "unlimited is a single code path",
			max:     quota.Unlimited,
			current: 500,
			want: quota.LimitResult{
				Resource: quota.ResourceProducts, Current: 500, Max: quota.Unlimited,
				Remaining: quota.Unlimited, Percentage: 0, Unlimited: true,
			},
		},
		{
			name:    "zero ceiling avoids division by zero",
			max:     0,
			current: 0,
			want: quota.LimitResult{
				Resource: quota.ResourceProducts, Current: 0, Max: 0,
				Remaining: 0, Percentage: 0, Exceeded: true,
			},
		},
		{
			name:    "negative usage snapshot clamps to zero",
			max:     10,
			current: -3,
			want: quota.LimitResult{
				Resource: quota.ResourceProducts, Current: 0, Max: 10,
				Remaining: 10, Percentage: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			def := quota.LimitDef{Resource: quota.ResourceProducts, Max: tt.max}
			got := quota.Check(def, tt.current)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckIsIdempotent(t *testing.T) {
	t.Parallel()

	def := quota.LimitDef{Resource: quota.ResourceUsers, Max: 7}
	first := quota.Check(def, 5)
	second := quota.Check(def, 5)
	assert.Equal(t, first, second)
}

func TestCheckInvariants(t *testing.T) {
	t.Parallel()

	maxes := []int64{quota.Unlimited, 0, 1, 2, 7, 100, 500}
	currents := []int64{-1, 0, 1, 5, 99, 100, 101, 10000}

	for _, max := range maxes {
		for _, current := range currents {
			r := quota.Check(quota.LimitDef{Resource: quota.ResourceBranches, Max: max}, current)

			assert.GreaterOrEqual(t, r.Percentage, 0.0)
			assert.LessOrEqual(t, r.Percentage, 100.0)

			if r.Unlimited {
				assert.False(t, r.Exceeded, "unlimited implies not exceeded")
				assert.Zero(t, r.Percentage, "unlimited implies zero percentage")
				assert.Equal(t, quota.Unlimited, r.Remaining)
			} else {
				assert.GreaterOrEqual(t, r.Remaining, int64(0), "remaining never negative")
			}
		}
	}
}

func TestCheckAll(t *testing.T) {
	t.Parallel()

	quotas := map[quota.Resource]int64{
		quota.ResourceUsers:    7,
		quota.ResourceProducts: 500,
		quota.ResourceBranches: quota.Unlimited,
	}
	usage := map[quota.Resource]int64{
		quota.ResourceUsers:    7,
		quota.ResourceProducts: 100,
		// branches intentionally absent: counts as zero
	}

	results := quota.CheckAll(quotas, usage)
	require.Len(t, results, 3)

	// sorted by resource name
	assert.Equal(t, quota.ResourceProducts, results[0].Resource)
	assert.Equal(t, quota.ResourceBranches, results[1].Resource)
	assert.Equal(t, quota.ResourceUsers, results[2].Resource)

	assert.True(t, results[1].Unlimited)
	assert.True(t, results[2].Exceeded)
	assert.Equal(t, int64(400), results[0].Remaining)
}
