package ports

import (
	"orderboard/internal/core/domain/events"
)

// EventPublisher hands a domain event to the broadcast pipeline. Publish is a
// queue handoff: it must not block on slow viewers, and it is called only
// after the state change producing the event has been committed, so viewers
// re-querying the store after receiving the event see consistent data.
type EventPublisher interface {
	Publish(event events.Event)
}
