package ws

import (
	"time"

	"github.com/KirkDiggler/hideandseek/internal/protocol"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// client is one websocket connection. roomID and name are written once by
// the hub goroutine when the connection joins and never change afterwards.
type client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	roomID string
	name   string
}

func (c *client) joined() bool {
	return c.roomID != ""
}

// enqueue hands a frame to the write pump; false means the buffer is full
func (c *client) enqueue(data []byte) bool {
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// enqueueWait is enqueue with up to timeout for the write pump to make room
func (c *client) enqueueWait(data []byte, timeout time.Duration) bool {
	if c.enqueue(data) {
		return true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case c.send <- data:
		return true
	case <-timer.C:
		return false
	}
}

// readPump decodes frames and forwards them to the hub until the connection
// fails. Malformed frames are logged and skipped.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Printf("client %s: read failed: %v", c.id, err)
			}
			return
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			c.hub.logger.Printf("client %s: discarding frame: %v", c.id, err)
			continue
		}

		select {
		case c.hub.inbound <- inbound{client: c, msg: msg}:
		case <-c.hub.done:
			return
		}
	}
}

// writePump drains the send queue. The hub closes the queue to end the
// connection.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
