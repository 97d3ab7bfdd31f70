package server

import (
	"net/http"
	"time"

	"sales-forecast/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

func (s *ReportServer) startHub() {
	s.hubOnce.Do(func() { go s.handleWebsockets() })
}

// handleWebsockets is the main Hub loop
func (s *ReportServer) handleWebsockets() {
	for {
		select {
		case client := <-s.register:
			s.stateMutex.Lock()
			s.clients[client] = struct{}{}
			initial := s.message(models.MessageInitial, s.latest)
			s.stateMutex.Unlock()

			// Send full state on connect
			client.send <- initial

		case client := <-s.unregister:
			s.stateMutex.Lock()
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
			}
			s.stateMutex.Unlock()

		case message := <-s.broadcast:
			s.stateMutex.Lock()
			for client := range s.clients {
				s.deliver(client, message)
			}
			s.stateMutex.Unlock()

		case <-s.done:
			s.stateMutex.Lock()
			for client := range s.clients {
				delete(s.clients, client)
				close(client.send)
			}
			s.stateMutex.Unlock()
			return
		}
	}
}

// -----------------------------------------------------------------------------

// deliver drops clients too slow to keep up. Caller holds stateMutex.
func (s *ReportServer) deliver(client *Client, message *models.MReportMessage) {
	select {
	case client.send <- message:
	default:
		delete(s.clients, client)
		close(client.send)
	}
}

// -----------------------------------------------------------------------------

func (s *ReportServer) message(kind string, report *models.MReport) *models.MReportMessage {
	return &models.MReportMessage{Type: kind, Timestamp: time.Now().Unix(), Report: report}
}

// -----------------------------------------------------------------------------
// Data Exchange Interface Implementation
// -----------------------------------------------------------------------------

// UpdateReport replaces the latest report without notifying clients
func (s *ReportServer) UpdateReport(report *models.MReport) {
	s.stateMutex.Lock()
	s.latest = report
	s.stateMutex.Unlock()
}

// -----------------------------------------------------------------------------

// Broadcast stores the report and queues it for every client. When the queue
// is full the push is skipped; clients still get the report on reconnect.
func (s *ReportServer) Broadcast(report *models.MReport) {
	s.UpdateReport(report)

	select {
	case s.broadcast <- s.message(models.MessageUpdate, report):
	default:
		s.Logger.Warning("Broadcast queue full, update not pushed")
	}
}

// -----------------------------------------------------------------------------

// Latest returns the most recent report, or nil.
func (s *ReportServer) Latest() *models.MReport {
	s.stateMutex.RLock()
	defer s.stateMutex.RUnlock()
	return s.latest
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *ReportServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := newClient(s, conn)

	select {
	case s.register <- client:
	case <-s.done:
		conn.Close()
		return
	}

	// Start goroutines for reading/writing
	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------

// resendLatest queues the latest report for a client that just changed its
// subscription. A full queue skips it; the next update catches up.
func (s *ReportServer) resendLatest(client *Client) {
	s.stateMutex.Lock()
	defer s.stateMutex.Unlock()

	if _, ok := s.clients[client]; !ok {
		return
	}
	select {
	case client.send <- s.message(models.MessageInitial, s.latest):
	default:
	}
}
