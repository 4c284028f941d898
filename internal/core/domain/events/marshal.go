package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// envelope is the wire frame every event is delivered in.
type envelope struct {
	Type      string `json:"type"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
}

type orderCreatedData struct {
	OrderID       int64   `json:"order_id"`
	RefCode       string  `json:"ref_code"`
	DisplayNumber int     `json:"display_number"`
	CustomerName  string  `json:"customer_name"`
	TotalValue    float64 `json:"total_value"`
	TotalTickets  int     `json:"total_tickets"`
	ItemCount     int     `json:"item_count"`
}

type statusChangedData struct {
	OrderID      int64  `json:"order_id"`
	RefCode      string `json:"ref_code"`
	OldStatus    string `json:"old_status"`
	NewStatus    string `json:"new_status"`
	CustomerName string `json:"customer_name"`
	Timestamp    string `json:"timestamp"`
}

type kitchenSnapshotData struct {
	PendingOrders   []OrderCard `json:"pending_orders"`
	PreparingOrders []OrderCard `json:"preparing_orders"`
	ReadyOrders     []OrderCard `json:"ready_orders"`
}

// Marshal serializes an event into its JSON wire frame
// {"type": ..., "data": ..., "timestamp": ...}.
//
// The type switch is exhaustive over the closed event set; an unhandled
// variant is a programming error and reported as one.
func Marshal(e Event) ([]byte, error) {
	var data any

	switch ev := e.(type) {
	case OrderCreated:
		data = orderCreatedData{
			OrderID:       ev.OrderID,
			RefCode:       ev.RefCode,
			DisplayNumber: ev.DisplayNumber,
			CustomerName:  ev.CustomerName,
			TotalValue:    ev.TotalValue,
			TotalTickets:  ev.TotalTickets,
			ItemCount:     ev.ItemCount,
		}
	case StatusChanged:
		data = statusChangedData{
			OrderID:      ev.OrderID,
			RefCode:      ev.RefCode,
			OldStatus:    ev.OldStatus,
			NewStatus:    ev.NewStatus,
			CustomerName: ev.CustomerName,
			Timestamp:    formatTimestamp(ev.At),
		}
	case KitchenSnapshot:
		data = kitchenSnapshotData{
			PendingOrders:   emptyIfNil(ev.PendingOrders),
			PreparingOrders: emptyIfNil(ev.PreparingOrders),
			ReadyOrders:     emptyIfNil(ev.ReadyOrders),
		}
	case DashboardSnapshot:
		data = ev.Analytics
	default:
		return nil, fmt.Errorf("unhandled event kind %T", e)
	}

	return json.Marshal(envelope{
		Type:      e.Type(),
		Data:      data,
		Timestamp: formatTimestamp(e.OccurredAt()),
	})
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// emptyIfNil keeps snapshot arrays serialized as [] rather than null.
func emptyIfNil(cards []OrderCard) []OrderCard {
	if cards == nil {
		return []OrderCard{}
	}
	return cards
}
