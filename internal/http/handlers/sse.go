package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/noorstudy/noorstudy-backend/internal/pkg/ctxutil"
	"github.com/noorstudy/noorstudy-backend/internal/platform/logger"
	"github.com/noorstudy/noorstudy-backend/internal/sse"
)

type SSEHandler struct {
	log *logger.Logger
	hub *sse.SSEHub
}

func NewSSEHandler(log *logger.Logger, hub *sse.SSEHub) *SSEHandler {
	return &SSEHandler{
		log: log.With("handler", "SSEHandler"),
		hub: hub,
	}
}

// GET /api/sse
//
// Each connection subscribes to the caller's own user channel; reply
// notifications are published there.
func (h *SSEHandler) Stream(c *gin.Context) {
	p := ctxutil.GetPrincipal(c.Request.Context())

	client := h.hub.NewSSEClient(p.UserID)
	h.hub.AddChannel(client, p.UserID.String())
	defer h.hub.CloseClient(client)

	h.hub.ServeHTTP(c.Writer, c.Request, client)
}
