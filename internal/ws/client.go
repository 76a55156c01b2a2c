package ws

import (
	"sync"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/hansfischmann-pm/planner-test-sub004/internal/domain/viewport"
)

// client serializes writes to one connection. State broadcasts arrive from
// the store's notify goroutine while acks are written from the read loop, so
// writes must not interleave on the wire.
type client struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool

	// drag tracks an in-progress scrollbar drag. Only the read loop touches
	// it, so it needs no locking.
	drag *viewport.Drag
}

func newClient(conn *websocket.Conn) *client {
	return &client{conn: conn}
}

func (c *client) send(msg Message) {
	data, err := sonic.Marshal(msg)
	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	// A failed write means the read loop is about to observe the close; no
	// separate error handling needed here.
	_ = c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *client) close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}
