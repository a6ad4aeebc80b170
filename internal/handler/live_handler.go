package handler

import (
	"memory-map-be/internal/pkg/logger"
	internalWS "memory-map-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// LiveHandler exposes the websocket endpoint for the live memory feed.
type LiveHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewLiveHandler(hub *internalWS.Hub, log logger.ILogger) *LiveHandler {
	return &LiveHandler{
		hub:    hub,
		logger: log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *LiveHandler) ServeWs(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("LiveHandler", "Starting WebSocket session", nil)
			internalWS.ServeWs(h.hub, conn)
			h.logger.Info("LiveHandler", "WebSocket session ended", nil)
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the live feed routes.
func (h *LiveHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}
