package order_test

import (
	"testing"
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRefCode(t *testing.T) kernel.RefCode {
	t.Helper()
	code, err := kernel.GenerateRefCode()
	require.NoError(t, err)
	return code
}

func mustDisplayNumber(t *testing.T, n int) kernel.DisplayNumber {
	t.Helper()
	dn, err := kernel.NewDisplayNumber(n)
	require.NoError(t, err)
	return dn
}

func mustLines(t *testing.T, quantities ...int) []order.Line {
	t.Helper()
	lines := make([]order.Line, 0, len(quantities))
	for i, q := range quantities {
		line, err := order.NewLine(int64(i+1), q)
		require.NoError(t, err)
		lines = append(lines, line)
	}
	return lines
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		mustRefCode(t), mustDisplayNumber(t, 7), 1, "Alex", mustLines(t, 2, 1, 4), time.Now())
	require.NoError(t, err)
	return o
}

func TestNewLine(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		line, err := order.NewLine(5, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(5), line.MenuItemID())
		assert.Equal(t, 3, line.Quantity())
	})

	t.Run("rejects_missing_menu_item", func(t *testing.T) {
		_, err := order.NewLine(0, 1)
		require.Error(t, err)
	})

	t.Run("rejects_zero_quantity", func(t *testing.T) {
		_, err := order.NewLine(5, 0)
		require.Error(t, err)
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("starts_pending_with_creation_timestamps_only", func(t *testing.T) {
		now := time.Now()
		o, err := order.NewOrder(
			mustRefCode(t), mustDisplayNumber(t, 1), 42, "Sam", mustLines(t, 2, 1, 4), now)
		require.NoError(t, err)

		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, now, o.CreatedAt())
		assert.Equal(t, now, o.LastStatusChangeAt())
		assert.Nil(t, o.PreparingAt())
		assert.Nil(t, o.ReadyAt())
		assert.Nil(t, o.CompletedAt())
		assert.Zero(t, o.ID())
	})

	t.Run("preserves_line_quantities", func(t *testing.T) {
		o := newTestOrder(t)

		lines := o.Lines()
		require.Len(t, lines, 3)
		assert.Equal(t, 2, lines[0].Quantity())
		assert.Equal(t, 1, lines[1].Quantity())
		assert.Equal(t, 4, lines[2].Quantity())
	})

	t.Run("rejects_invalid_inputs", func(t *testing.T) {
		now := time.Now()
		ref := mustRefCode(t)
		dn := mustDisplayNumber(t, 1)
		lines := mustLines(t, 1)

		_, err := order.NewOrder(kernel.RefCode{}, dn, 1, "Sam", lines, now)
		require.Error(t, err)

		_, err = order.NewOrder(ref, kernel.DisplayNumber{}, 1, "Sam", lines, now)
		require.Error(t, err)

		_, err = order.NewOrder(ref, dn, 0, "Sam", lines, now)
		require.Error(t, err)

		_, err = order.NewOrder(ref, dn, 1, "", lines, now)
		require.Error(t, err)

		_, err = order.NewOrder(ref, dn, 1, "Sam", nil, now)
		require.Error(t, err)
	})
}

func TestOrder_SetID(t *testing.T) {
	o := newTestOrder(t)

	require.NoError(t, o.SetID(11))
	assert.Equal(t, int64(11), o.ID())

	require.ErrorIs(t, o.SetID(12), order.ErrIDAlreadyAssigned)
}

func TestOrder_Validate(t *testing.T) {
	require.NoError(t, newTestOrder(t).Validate())

	var zero order.Order
	require.ErrorIs(t, zero.Validate(), order.ErrOrderIsNotConstructed)
}

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("full_chain_stamps_monotonic_timestamps", func(t *testing.T) {
		o := newTestOrder(t)
		created := o.CreatedAt()

		t1 := created.Add(2 * time.Minute)
		require.NoError(t, o.TransitionTo(order.Preparing, t1))
		require.NotNil(t, o.PreparingAt())
		assert.Equal(t, t1, *o.PreparingAt())
		assert.Equal(t, t1, o.LastStatusChangeAt())

		t2 := t1.Add(5 * time.Minute)
		require.NoError(t, o.TransitionTo(order.Ready, t2))
		require.NotNil(t, o.ReadyAt())
		assert.Equal(t, t2, *o.ReadyAt())

		t3 := t2.Add(time.Minute)
		require.NoError(t, o.TransitionTo(order.Complete, t3))
		require.NotNil(t, o.CompletedAt())
		assert.Equal(t, t3, *o.CompletedAt())
		assert.Equal(t, order.Complete, o.Status())

		assert.False(t, o.PreparingAt().Before(created))
		assert.False(t, o.ReadyAt().Before(*o.PreparingAt()))
		assert.False(t, o.CompletedAt().Before(*o.ReadyAt()))
	})

	t.Run("skip_is_rejected_without_mutation", func(t *testing.T) {
		o := newTestOrder(t)
		before := o.LastStatusChangeAt()

		err := o.TransitionTo(order.Complete, time.Now())
		require.ErrorIs(t, err, order.ErrIllegalTransition)

		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.PreparingAt())
		assert.Nil(t, o.CompletedAt())
		assert.Equal(t, before, o.LastStatusChangeAt())
	})

	t.Run("reverse_is_rejected", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.TransitionTo(order.Preparing, time.Now()))

		err := o.TransitionTo(order.Pending, time.Now())
		require.ErrorIs(t, err, order.ErrIllegalTransition)
		assert.Equal(t, order.Preparing, o.Status())
	})

	t.Run("unknown_status_is_rejected", func(t *testing.T) {
		o := newTestOrder(t)
		err := o.TransitionTo(order.Status(77), time.Now())
		require.ErrorIs(t, err, order.ErrInvalidStatus)
	})

	t.Run("complete_is_final", func(t *testing.T) {
		o := newTestOrder(t)
		now := time.Now()
		require.NoError(t, o.TransitionTo(order.Preparing, now))
		require.NoError(t, o.TransitionTo(order.Ready, now))
		require.NoError(t, o.TransitionTo(order.Complete, now))

		err := o.TransitionTo(order.Pending, now)
		require.ErrorIs(t, err, order.ErrIllegalTransition)
	})
}

func TestRestoreOrder(t *testing.T) {
	ref := mustRefCode(t)
	dn := mustDisplayNumber(t, 3)
	lines := mustLines(t, 2)
	created := time.Now().Add(-time.Hour)
	prep := created.Add(5 * time.Minute)
	ready := prep.Add(10 * time.Minute)
	done := ready.Add(2 * time.Minute)

	t.Run("restores_completed_order", func(t *testing.T) {
		o, err := order.RestoreOrder(
			9, ref, dn, 1, "Sam", order.Complete, created, &prep, &ready, &done, done, lines)
		require.NoError(t, err)
		assert.Equal(t, int64(9), o.ID())
		assert.Equal(t, order.Complete, o.Status())
		require.NoError(t, o.Validate())
	})

	t.Run("rejects_timestamps_inconsistent_with_status", func(t *testing.T) {
		// ready order with no preparing timestamp
		_, err := order.RestoreOrder(
			9, ref, dn, 1, "Sam", order.Ready, created, nil, &ready, nil, ready, lines)
		require.Error(t, err)

		// pending order with a completed timestamp
		_, err = order.RestoreOrder(
			9, ref, dn, 1, "Sam", order.Pending, created, nil, nil, &done, created, lines)
		require.Error(t, err)
	})

	t.Run("rejects_missing_id", func(t *testing.T) {
		_, err := order.RestoreOrder(
			0, ref, dn, 1, "Sam", order.Pending, created, nil, nil, nil, created, lines)
		require.Error(t, err)
	})
}
