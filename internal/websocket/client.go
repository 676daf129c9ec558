package websocket

import (
	"context"
	"time"

	ws "github.com/coder/websocket"
)

const (
	sendBufferSize = 16
	pingInterval   = 30 * time.Second
	writeTimeout   = 10 * time.Second
)

// Client is one UI listening for badge events. UIs never talk back, so
// the connection only writes; reads are left to CloseRead, which also
// answers pings and notices the UI closing.
type Client struct {
	hub    *Hub
	conn   *ws.Conn
	send   chan []byte
	remote string
}

func NewClient(hub *Hub, conn *ws.Conn, remote string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		remote: remote,
	}
}

// Run blocks until the UI disconnects, a write stalls, or ctx ends.
func (c *Client) Run(ctx context.Context) {
	ctx = c.conn.CloseRead(ctx)

	c.hub.Register(c)
	defer c.hub.Unregister(c)
	c.hub.logger.Debug("ui connected", "remote", c.remote, "clients", c.hub.ClientCount())

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				c.conn.Close(ws.StatusGoingAway, "agent stopped")
				return
			}
			if err := c.write(ctx, data); err != nil {
				c.hub.logger.Debug("ui dropped", "remote", c.remote, "error", err)
				return
			}
		case <-ping.C:
			if err := c.conn.Ping(ctx); err != nil {
				c.hub.logger.Debug("ui ping failed", "remote", c.remote, "error", err)
				return
			}
		case <-ctx.Done():
			c.hub.logger.Debug("ui disconnected", "remote", c.remote)
			return
		}
	}
}

func (c *Client) write(ctx context.Context, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return c.conn.Write(ctx, ws.MessageText, data)
}
