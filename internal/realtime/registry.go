package realtime

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Conn is one live viewer connection. Implementations must make Send safe for
// concurrent use and honor the context deadline; a Send that fails or stalls
// marks the connection dead and the broadcaster prunes it.
type Conn interface {
	Send(ctx context.Context, payload []byte) error
	Close() error
}

// Member is a registry entry handed out on reads. UserID is zero until the
// connection subscribes to a customer's updates.
type Member struct {
	ID     uuid.UUID
	Conn   Conn
	UserID int64
}

// Registry tracks live connections grouped by channel. All methods are safe
// for concurrent use; reads return copies so broadcast passes iterate without
// holding the lock while writing to sockets.
type Registry struct {
	mu      sync.RWMutex
	members map[Channel]map[uuid.UUID]Member
}

// NewRegistry creates an empty connection registry.
func NewRegistry() *Registry {
	return &Registry{
		members: make(map[Channel]map[uuid.UUID]Member),
	}
}

// Connect registers a connection on the channel and returns its assigned ID.
func (r *Registry) Connect(channel Channel, conn Conn) uuid.UUID {
	id := uuid.New()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.members[channel] == nil {
		r.members[channel] = make(map[uuid.UUID]Member)
	}
	r.members[channel][id] = Member{ID: id, Conn: conn}

	return id
}

// Disconnect removes a connection from the channel. Removing an unknown or
// already removed connection is a no-op, so racing disconnect paths are safe.
func (r *Registry) Disconnect(channel Channel, id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.members[channel], id)
}

// SubscribeUser records the customer whose updates this connection wants.
// Subsequent per-customer events are routed only to matching members.
func (r *Registry) SubscribeUser(channel Channel, id uuid.UUID, userID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	member, ok := r.members[channel][id]
	if !ok {
		return false
	}

	member.UserID = userID
	r.members[channel][id] = member
	return true
}

// MembersOf returns a snapshot of the channel's current members.
func (r *Registry) MembersOf(channel Channel) []Member {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]Member, 0, len(r.members[channel]))
	for _, member := range r.members[channel] {
		members = append(members, member)
	}

	return members
}

// Count returns the number of live connections on the channel.
func (r *Registry) Count(channel Channel) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.members[channel])
}
