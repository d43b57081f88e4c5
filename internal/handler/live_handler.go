package handler

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/juvenstu/real-estate-marketplace/internal/broker"
	"github.com/juvenstu/real-estate-marketplace/pkg/logger"
)

const (
	writeWait  = 10 * time.Second // Time allowed to write an event to the peer
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // add origin check in production
	},
}

// LiveHandler streams listing mutation events to connected clients over
// websocket. It subscribes to the event broker once and fans events out to
// every open connection.
type LiveHandler struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

func NewLiveHandler(events broker.EventBroker) (*LiveHandler, error) {
	h := &LiveHandler{
		clients: make(map[*websocket.Conn]bool),
	}

	eventChan, err := events.Subscribe()
	if err != nil {
		return nil, err
	}
	go h.broadcastLoop(eventChan)

	return h, nil
}

// GET /api/listing/live
func (h *LiveHandler) HandleLive(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Warn("Failed to upgrade live feed connection", zap.Error(err))
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	clientCount := len(h.clients)
	h.mu.Unlock()

	logger.Log.Debug("Live feed client connected", zap.Int("total", clientCount))

	defer h.removeClient(conn)

	h.readLoop(conn)
}

// readLoop drains inbound frames so close and pong control messages are
// processed; the feed itself is write-only.
func (h *LiveHandler) readLoop(conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetReadLimit(512)
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)

	go h.pingClient(conn, done)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Log.Debug("Live feed read error", zap.Error(err))
			}
			return
		}
	}
}

func (h *LiveHandler) broadcastLoop(eventChan <-chan broker.ListingEvent) {
	for event := range eventChan {
		h.mu.RLock()
		for conn := range h.clients {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				logger.Log.Debug("Failed to send listing event", zap.Error(err))
				// readLoop notices the broken connection and cleans up
			}
		}
		h.mu.RUnlock()
	}
}

func (h *LiveHandler) pingClient(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (h *LiveHandler) removeClient(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}
