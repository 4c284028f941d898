package kernel_test

import (
	"testing"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDisplayNumber(t *testing.T) {
	t.Run("accepts_bounds", func(t *testing.T) {
		for _, n := range []int{1, 2, 500, 998, 999} {
			dn, err := kernel.NewDisplayNumber(n)
			require.NoError(t, err)
			assert.Equal(t, n, dn.Value())
			require.NoError(t, dn.Validate())
		}
	})

	t.Run("rejects_out_of_range", func(t *testing.T) {
		for _, n := range []int{0, -1, 1000, 100000} {
			_, err := kernel.NewDisplayNumber(n)
			require.Error(t, err, "expected rejection of %d", n)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})
}

func TestDisplayNumber_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var dn kernel.DisplayNumber
		require.ErrorIs(t, dn.Validate(), errs.ErrValueIsOutOfRange)
	})
}

func TestDisplayNumber_IsEqual(t *testing.T) {
	a, err := kernel.NewDisplayNumber(42)
	require.NoError(t, err)
	b, err := kernel.NewDisplayNumber(42)
	require.NoError(t, err)
	c, err := kernel.NewDisplayNumber(43)
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}
