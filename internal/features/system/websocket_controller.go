package system

import (
	"log"

	"github.com/gofiber/contrib/websocket"
)

type WebSocketController struct {
	Hub *Hub
}

func NewWebSocketController(hub *Hub) *WebSocketController {
	return &WebSocketController{
		Hub: hub,
	}
}

// HandleWebSocket keeps the connection registered for event fan-out
// until the client goes away. The feed is one-way; inbound messages
// are drained and ignored.
func (h *WebSocketController) HandleWebSocket(c *websocket.Conn) {
	h.Hub.Register(c)
	defer h.Hub.Unregister(c)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			log.Println("read:", err)
			break
		}
	}
}
