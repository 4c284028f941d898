package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"orderboard/internal/core/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestMarshal_OrderCreated(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	raw, err := events.Marshal(events.OrderCreated{
		OrderID:       7,
		RefCode:       "k3x09qm2a7fzp1wd",
		DisplayNumber: 12,
		CustomerID:    3,
		CustomerName:  "Sam",
		TotalValue:    23.5,
		TotalTickets:  4,
		ItemCount:     3,
		At:            at,
	})
	require.NoError(t, err)

	m := decode(t, raw)
	assert.Equal(t, "new_order", m["type"])
	assert.Equal(t, "2025-06-01T12:30:00Z", m["timestamp"])

	data := m["data"].(map[string]any)
	assert.Equal(t, float64(7), data["order_id"])
	assert.Equal(t, "k3x09qm2a7fzp1wd", data["ref_code"])
	assert.Equal(t, float64(12), data["display_number"])
	assert.Equal(t, "Sam", data["customer_name"])
	assert.Equal(t, 23.5, data["total_value"])
	assert.Equal(t, float64(4), data["total_tickets"])
	assert.Equal(t, float64(3), data["item_count"])

	// customer id is routing metadata, not part of the wire payload
	_, present := data["customer_id"]
	assert.False(t, present)
}

func TestMarshal_StatusChanged(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 45, 0, 0, time.UTC)
	raw, err := events.Marshal(events.StatusChanged{
		OrderID:      7,
		RefCode:      "k3x09qm2a7fzp1wd",
		CustomerID:   3,
		CustomerName: "Sam",
		OldStatus:    "pending",
		NewStatus:    "preparing",
		At:           at,
	})
	require.NoError(t, err)

	m := decode(t, raw)
	assert.Equal(t, "order_status_change", m["type"])

	data := m["data"].(map[string]any)
	assert.Equal(t, "pending", data["old_status"])
	assert.Equal(t, "preparing", data["new_status"])
	assert.Equal(t, "2025-06-01T12:45:00Z", data["timestamp"])
}

func TestMarshal_KitchenSnapshot_EmptyQueuesAreArrays(t *testing.T) {
	raw, err := events.Marshal(events.KitchenSnapshot{At: time.Now()})
	require.NoError(t, err)

	m := decode(t, raw)
	assert.Equal(t, "kitchen_update", m["type"])

	data := m["data"].(map[string]any)
	for _, key := range []string{"pending_orders", "preparing_orders", "ready_orders"} {
		queue, ok := data[key].([]any)
		require.True(t, ok, "%s should be a JSON array, got %T", key, data[key])
		assert.Empty(t, queue)
	}
}

func TestMarshal_DashboardSnapshot(t *testing.T) {
	raw, err := events.Marshal(events.DashboardSnapshot{
		Analytics: events.AnalyticsSnapshot{
			TotalOrders:  5,
			StatusCounts: map[string]int{"pending": 2, "complete": 3},
			TotalRevenue: 99.5,
		},
		At: time.Now(),
	})
	require.NoError(t, err)

	m := decode(t, raw)
	assert.Equal(t, "dashboard_update", m["type"])

	data := m["data"].(map[string]any)
	assert.Equal(t, float64(5), data["total_orders"])
	assert.Equal(t, 99.5, data["total_revenue"])
}
