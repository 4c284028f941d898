// Package realtime tracks live viewer connections and fans domain events out
// to them. The registry answers who is listening on which channel; the
// broadcaster serializes each event once and pushes it to every member,
// pruning connections that fail or stall.
package realtime

// Channel identifies one broadcast audience. A connection joins exactly one
// channel for its lifetime.
type Channel string

const (
	// ChannelKitchenDisplay receives every order event plus full queue
	// snapshots for the kitchen screens.
	ChannelKitchenDisplay Channel = "kitchen_display"

	// ChannelAdminDashboard receives every order event plus periodic
	// analytics snapshots.
	ChannelAdminDashboard Channel = "admin_dashboard"

	// ChannelOrderUpdates carries per-customer status pushes. Members see
	// only events for the customer they subscribed to.
	ChannelOrderUpdates Channel = "order_updates"
)

// IsValid reports whether c is one of the known broadcast channels.
func (c Channel) IsValid() bool {
	switch c {
	case ChannelKitchenDisplay, ChannelAdminDashboard, ChannelOrderUpdates:
		return true
	}
	return false
}

func (c Channel) String() string {
	return string(c)
}
