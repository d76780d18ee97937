package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/noorstudy/noorstudy-backend/internal/domain"
	"github.com/noorstudy/noorstudy-backend/internal/http/response"
	"github.com/noorstudy/noorstudy-backend/internal/pkg/ctxutil"
	"github.com/noorstudy/noorstudy-backend/internal/platform/logger"
	"github.com/noorstudy/noorstudy-backend/internal/services"
)

type NotificationHandler struct {
	log      *logger.Logger
	notifier services.Notifier
}

func NewNotificationHandler(log *logger.Logger, notifier services.Notifier) *NotificationHandler {
	return &NotificationHandler{
		log:      log.With("handler", "NotificationHandler"),
		notifier: notifier,
	}
}

// GET /api/notifications
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	p := ctxutil.GetPrincipal(c.Request.Context())
	notifications, err := h.notifier.ListForUser(c.Request.Context(), p.UserID)
	if err != nil {
		h.log.Error("list notifications failed", "user_id", p.UserID, "error", err)
		response.OK(c, []*domain.Notification{})
		return
	}
	if notifications == nil {
		notifications = []*domain.Notification{}
	}
	response.OK(c, notifications)
}
