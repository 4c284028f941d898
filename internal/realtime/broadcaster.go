package realtime

import (
	"context"
	"log/slog"
	"time"

	"orderboard/internal/core/application/usecases/queries"
	"orderboard/internal/core/domain/events"
)

const (
	// queueCapacity bounds the handoff between command handlers and the
	// broadcast worker. Publish never blocks; overflow drops the event.
	queueCapacity = 256

	// sendTimeout is the per-connection write budget. One stalled viewer
	// must not delay the rest of the pass longer than this.
	sendTimeout = 5 * time.Second
)

// KitchenQueueReader supplies the current kitchen queue for snapshots.
type KitchenQueueReader interface {
	Handle(ctx context.Context, query queries.GetKitchenQueueQuery) (queries.GetKitchenQueueResponse, error)
}

// AnalyticsReader supplies the analytics rollup for dashboard snapshots.
type AnalyticsReader interface {
	Handle(ctx context.Context, query queries.GetAnalyticsQuery) (queries.GetAnalyticsResponse, error)
}

// Broadcaster fans domain events out to registered connections. Events are
// serialized exactly once per broadcast; connections whose send fails or
// stalls are pruned after the pass so one dead socket never blocks the rest.
//
// Order events trigger a follow-up kitchen snapshot so the kitchen display
// always converges to the queue state the committed change produced.
type Broadcaster struct {
	registry  *Registry
	kitchen   KitchenQueueReader
	analytics AnalyticsReader
	queue     chan events.Event
	logger    *slog.Logger
}

// NewBroadcaster creates a broadcaster over the given registry and read sides.
func NewBroadcaster(
	registry *Registry,
	kitchen KitchenQueueReader,
	analytics AnalyticsReader,
	logger *slog.Logger,
) *Broadcaster {
	return &Broadcaster{
		registry:  registry,
		kitchen:   kitchen,
		analytics: analytics,
		queue:     make(chan events.Event, queueCapacity),
		logger:    logger.With("component", "broadcaster"),
	}
}

// Publish hands an event to the broadcast worker. It never blocks: when the
// queue is full the event is dropped and logged, because the follow-up
// snapshot of a later event repairs any viewer that missed an increment.
func (b *Broadcaster) Publish(event events.Event) {
	select {
	case b.queue <- event:
	default:
		b.logger.Warn("event queue full, dropping event", "type", event.Type())
	}
}

// Run consumes the event queue until the context is canceled.
// Intended to run as a single goroutine; one worker keeps broadcast order
// identical to publish order.
func (b *Broadcaster) Run(ctx context.Context) {
	b.logger.InfoContext(ctx, "broadcast worker started")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("broadcast worker stopped")
			return
		case event := <-b.queue:
			b.dispatch(ctx, event)
		}
	}
}

// SyncConnection pushes the current snapshot to a single freshly registered
// connection so new viewers never start from a blank screen. Connections on
// the per-customer channel receive nothing until an event arrives.
func (b *Broadcaster) SyncConnection(ctx context.Context, channel Channel, conn Conn) error {
	var event events.Event

	switch channel {
	case ChannelKitchenDisplay:
		snapshot, err := b.kitchenSnapshot(ctx)
		if err != nil {
			return err
		}
		event = snapshot
	case ChannelAdminDashboard:
		snapshot, err := b.dashboardSnapshot(ctx)
		if err != nil {
			return err
		}
		event = snapshot
	default:
		return nil
	}

	payload, err := events.Marshal(event)
	if err != nil {
		return err
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	return conn.Send(sendCtx, payload)
}

// BroadcastKitchenSnapshot computes the current kitchen queue and pushes it
// to every kitchen display. Called after order events and by the periodic
// refresh job.
func (b *Broadcaster) BroadcastKitchenSnapshot(ctx context.Context) error {
	snapshot, err := b.kitchenSnapshot(ctx)
	if err != nil {
		return err
	}

	payload, err := events.Marshal(snapshot)
	if err != nil {
		return err
	}

	b.sendToChannel(ctx, ChannelKitchenDisplay, payload, nil)
	return nil
}

// BroadcastDashboardSnapshot computes the analytics rollup and pushes it to
// every admin dashboard. Called by the periodic refresh job.
func (b *Broadcaster) BroadcastDashboardSnapshot(ctx context.Context) error {
	snapshot, err := b.dashboardSnapshot(ctx)
	if err != nil {
		return err
	}

	payload, err := events.Marshal(snapshot)
	if err != nil {
		return err
	}

	b.sendToChannel(ctx, ChannelAdminDashboard, payload, nil)
	return nil
}

func (b *Broadcaster) dispatch(ctx context.Context, event events.Event) {
	payload, err := events.Marshal(event)
	if err != nil {
		b.logger.ErrorContext(ctx, "failed to serialize event", "type", event.Type(), "error", err)
		return
	}

	switch e := event.(type) {
	case events.OrderCreated:
		// A freshly created order only concerns the staff surfaces. The
		// customer's own feed starts reporting once the status moves.
		b.sendToChannel(ctx, ChannelKitchenDisplay, payload, nil)
		b.sendToChannel(ctx, ChannelAdminDashboard, payload, nil)
		b.followUpKitchenSnapshot(ctx)
	case events.StatusChanged:
		b.sendToChannel(ctx, ChannelKitchenDisplay, payload, nil)
		b.sendToChannel(ctx, ChannelAdminDashboard, payload, nil)
		b.sendToCustomer(ctx, payload, e.CustomerID)
		b.followUpKitchenSnapshot(ctx)
	case events.KitchenSnapshot:
		b.sendToChannel(ctx, ChannelKitchenDisplay, payload, nil)
	case events.DashboardSnapshot:
		b.sendToChannel(ctx, ChannelAdminDashboard, payload, nil)
	}
}

// sendToCustomer routes a payload to order-update members subscribed to the
// given customer. Unsubscribed members receive nothing.
func (b *Broadcaster) sendToCustomer(ctx context.Context, payload []byte, customerID int64) {
	b.sendToChannel(ctx, ChannelOrderUpdates, payload, func(member Member) bool {
		return member.UserID != 0 && member.UserID == customerID
	})
}

// sendToChannel writes the payload to every matching member, then prunes the
// connections that failed. Pruning happens after the pass so a dead socket
// costs at most one send timeout for the healthy members behind it.
func (b *Broadcaster) sendToChannel(ctx context.Context, channel Channel, payload []byte, match func(Member) bool) {
	var dead []Member

	for _, member := range b.registry.MembersOf(channel) {
		if match != nil && !match(member) {
			continue
		}

		sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
		err := member.Conn.Send(sendCtx, payload)
		cancel()

		if err != nil {
			dead = append(dead, member)
		}
	}

	for _, member := range dead {
		b.registry.Disconnect(channel, member.ID)
		_ = member.Conn.Close()
		b.logger.InfoContext(ctx, "pruned dead connection",
			"channel", channel.String(), "conn_id", member.ID.String())
	}
}

func (b *Broadcaster) followUpKitchenSnapshot(ctx context.Context) {
	if b.registry.Count(ChannelKitchenDisplay) == 0 {
		return
	}

	if err := b.BroadcastKitchenSnapshot(ctx); err != nil {
		b.logger.ErrorContext(ctx, "failed to broadcast kitchen snapshot", "error", err)
	}
}

func (b *Broadcaster) kitchenSnapshot(ctx context.Context) (events.KitchenSnapshot, error) {
	queue, err := b.kitchen.Handle(ctx, queries.NewGetKitchenQueueQuery())
	if err != nil {
		return events.KitchenSnapshot{}, err
	}

	return events.KitchenSnapshot{
		PendingOrders:   toOrderCards(queue.PendingOrders),
		PreparingOrders: toOrderCards(queue.PreparingOrders),
		ReadyOrders:     toOrderCards(queue.ReadyOrders),
		At:              time.Now().UTC(),
	}, nil
}

func (b *Broadcaster) dashboardSnapshot(ctx context.Context) (events.DashboardSnapshot, error) {
	rollup, err := b.analytics.Handle(ctx, queries.NewGetAnalyticsQuery())
	if err != nil {
		return events.DashboardSnapshot{}, err
	}

	return events.DashboardSnapshot{
		Analytics: toAnalyticsSnapshot(rollup),
		At:        time.Now().UTC(),
	}, nil
}

func toOrderCards(cards []queries.OrderCardResponse) []events.OrderCard {
	out := make([]events.OrderCard, 0, len(cards))
	for _, card := range cards {
		out = append(out, events.OrderCard{
			ID:             card.ID,
			DisplayNumber:  card.DisplayNumber,
			RefCode:        card.RefCode,
			CustomerName:   card.CustomerName,
			Status:         card.Status,
			TotalValue:     card.TotalValue,
			TotalTickets:   card.TotalTickets,
			ItemCount:      card.ItemCount,
			ItemsSummary:   card.ItemsSummary,
			DateOrdered:    card.DateOrdered,
			WaitingMinutes: card.WaitingMinutes,
		})
	}
	return out
}

func toAnalyticsSnapshot(rollup queries.GetAnalyticsResponse) events.AnalyticsSnapshot {
	hourly := make([]events.HourBucket, 0, len(rollup.HourlyActivity))
	for _, bucket := range rollup.HourlyActivity {
		hourly = append(hourly, events.HourBucket{Hour: bucket.Hour, Orders: bucket.Orders})
	}

	return events.AnalyticsSnapshot{
		TotalOrders:           rollup.TotalOrders,
		OrdersToday:           rollup.OrdersToday,
		OrdersThisWeek:        rollup.OrdersThisWeek,
		OrdersThisMonth:       rollup.OrdersThisMonth,
		StatusCounts:          rollup.StatusCounts,
		TotalRevenue:          rollup.TotalRevenue,
		RevenueToday:          rollup.RevenueToday,
		RevenueThisWeek:       rollup.RevenueThisWeek,
		AvgMinutesToPreparing: rollup.AvgMinutesToPreparing,
		AvgMinutesToReady:     rollup.AvgMinutesToReady,
		AvgMinutesToComplete:  rollup.AvgMinutesToComplete,
		AvgMinutesTotal:       rollup.AvgMinutesTotal,
		HourlyActivity:        hourly,
	}
}
