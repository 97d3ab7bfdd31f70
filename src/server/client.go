package server

import (
	"sync"
	"time"

	"sales-forecast/src/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 2 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxCommandSize = 4 * 1024
	sendBuffer     = 32
)

// -----------------------------------------------------------------------------
// Client
// -----------------------------------------------------------------------------

// Client is one websocket subscriber. It receives every report message, cut
// down to the product lines it subscribed to.
type Client struct {
	hub  *ReportServer
	conn *websocket.Conn
	send chan *models.MReportMessage

	mu    sync.Mutex
	lines []string
}

func newClient(hub *ReportServer, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan *models.MReportMessage, sendBuffer),
	}
}

// -----------------------------------------------------------------------------

// subscribe restricts later messages to the named lines. No names means all.
func (c *Client) subscribe(lines []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append([]string(nil), lines...)
}

// view returns the message as this client should see it.
func (c *Client) view(message *models.MReportMessage) *models.MReportMessage {
	c.mu.Lock()
	lines := c.lines
	c.mu.Unlock()

	if len(lines) == 0 || message.Report == nil {
		return message
	}
	filtered := *message
	filtered.Report = filterLines(message.Report, lines)
	return &filtered
}

// -----------------------------------------------------------------------------

// readPump reads subscribe commands until the connection fails or sends
// something that is not a command. It also keeps the read deadline alive.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
		c.hub.Logger.Debug("Client disconnected")
	}()

	c.conn.SetReadLimit(maxCommandSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var cmd models.MSubscribeCommand
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.Logger.Info("Dropping websocket client: %v", err)
			}
			return
		}

		if cmd.Command != models.CommandSubscribe {
			c.hub.Logger.Debug("Ignoring client command %q", cmd.Command)
			continue
		}
		c.subscribe(cmd.Lines)
		c.hub.resendLatest(c)
	}
}

// -----------------------------------------------------------------------------

// writePump writes queued report messages and keeps the connection alive
// with pings. It ends when the hub closes the send channel.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(c.view(message)); err != nil {
				c.hub.Logger.Info("Report push failed: %v", err)
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
