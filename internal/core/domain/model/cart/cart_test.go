package cart_test

import (
	"testing"

	"orderboard/internal/core/domain/model/cart"
	"orderboard/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLine(t *testing.T) {
	t.Run("valid_line", func(t *testing.T) {
		line, err := cart.NewLine(101, 2)

		require.NoError(t, err)
		assert.Equal(t, int64(101), line.MenuItemID())
		assert.Equal(t, 2, line.Quantity())
	})

	t.Run("missing_menu_item", func(t *testing.T) {
		_, err := cart.NewLine(0, 2)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("quantity_below_one", func(t *testing.T) {
		_, err := cart.NewLine(101, 0)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewSnapshot(t *testing.T) {
	t.Run("valid_snapshot", func(t *testing.T) {
		pizza, err := cart.NewLine(101, 2)
		require.NoError(t, err)
		cola, err := cart.NewLine(205, 1)
		require.NoError(t, err)

		snapshot, err := cart.NewSnapshot(42, []cart.Line{pizza, cola})

		require.NoError(t, err)
		assert.Equal(t, int64(42), snapshot.CustomerID())
		assert.Len(t, snapshot.Lines(), 2)
		assert.False(t, snapshot.IsEmpty())
	})

	t.Run("empty_snapshot_is_allowed", func(t *testing.T) {
		snapshot, err := cart.NewSnapshot(42, nil)

		require.NoError(t, err)
		assert.True(t, snapshot.IsEmpty())
		assert.Empty(t, snapshot.Lines())
	})

	t.Run("missing_customer", func(t *testing.T) {
		_, err := cart.NewSnapshot(0, nil)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("lines_are_copied", func(t *testing.T) {
		pizza, err := cart.NewLine(101, 2)
		require.NoError(t, err)
		source := []cart.Line{pizza}

		snapshot, err := cart.NewSnapshot(42, source)
		require.NoError(t, err)

		replacement, err := cart.NewLine(205, 1)
		require.NoError(t, err)
		source[0] = replacement

		assert.Equal(t, int64(101), snapshot.Lines()[0].MenuItemID())
	})
}
