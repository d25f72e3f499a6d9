package system

import (
	stdsync "sync"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// Hub fans sync events out to every connected websocket client. It
// satisfies the engine's broadcaster dependency.
type Hub struct {
	logger *zap.Logger

	mu    stdsync.Mutex
	conns map[*websocket.Conn]bool
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger: logger,
		conns:  make(map[*websocket.Conn]bool),
	}
}

func (h *Hub) Register(c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = true
}

func (h *Hub) Unregister(c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, c)
}

// Broadcast sends the event to every client; dead connections are
// dropped on write failure.
func (h *Hub) Broadcast(event interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.conns {
		if err := c.WriteJSON(event); err != nil {
			h.logger.Debug("dropping websocket client", zap.Error(err))
			c.Close()
			delete(h.conns, c)
		}
	}
}
