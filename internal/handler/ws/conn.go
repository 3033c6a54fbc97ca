package ws

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

var (
	// ErrConnClosed is returned once the peer is gone.
	ErrConnClosed = errors.New("connection closed")
	// ErrConnBusy is returned when the outbound buffer is full; the
	// frame is dropped rather than stalling the broadcaster.
	ErrConnBusy = errors.New("connection send buffer full")
)

const sendBufferSize = 64

// wsConn adapts a websocket connection to the hub's Conn interface.
// Writes go through a buffered channel drained by a single write pump,
// so Send never blocks on a slow peer.
type wsConn struct {
	conn      *websocket.Conn
	out       chan string
	done      chan struct{}
	closeOnce sync.Once
}

func newWSConn(conn *websocket.Conn) *wsConn {
	return &wsConn{
		conn: conn,
		out:  make(chan string, sendBufferSize),
		done: make(chan struct{}),
	}
}

// Send queues one encoded frame for delivery.
func (c *wsConn) Send(frame string) error {
	select {
	case <-c.done:
		return ErrConnClosed
	default:
	}

	select {
	case c.out <- frame:
		return nil
	case <-c.done:
		return ErrConnClosed
	default:
		return ErrConnBusy
	}
}

// Alive reports whether the connection is still writable.
func (c *wsConn) Alive() bool {
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}

// shutdown marks the connection dead and closes the socket. Safe to
// call from both pumps.
func (c *wsConn) shutdown() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// writePump drains the outbound buffer onto the socket. It exits when
// the connection dies, marking it dead on the first failed write.
func (c *wsConn) writePump() {
	for {
		select {
		case frame := <-c.out:
			if err := c.conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				c.shutdown()
				return
			}
		case <-c.done:
			return
		}
	}
}
