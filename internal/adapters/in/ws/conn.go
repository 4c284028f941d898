// Package ws exposes the broadcast channels over WebSocket endpoints.
// Each endpoint upgrades the HTTP connection, registers it on its channel,
// pushes an initial snapshot and then serves the client's control messages
// until the socket closes.
package ws

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// defaultWriteWait bounds a single write when the caller's context carries
// no deadline of its own.
const defaultWriteWait = 10 * time.Second

// socketConn adapts a gorilla websocket connection to the realtime.Conn
// interface. Gorilla allows only one concurrent writer per connection, so
// all writes, broadcast and control replies alike, serialize on the mutex.
type socketConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func newSocketConn(conn *websocket.Conn) *socketConn {
	return &socketConn{conn: conn}
}

// Send writes one text message, honoring the context deadline as the write
// deadline. A slow or dead peer fails the write instead of blocking forever.
func (c *socketConn) Send(ctx context.Context, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultWriteWait)
	}

	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}

	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Close closes the underlying socket. Safe to call more than once.
func (c *socketConn) Close() error {
	return c.conn.Close()
}
