package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/noorstudy/noorstudy-backend/internal/clients/redis"
	"github.com/noorstudy/noorstudy-backend/internal/domain"
	"github.com/noorstudy/noorstudy-backend/internal/platform/logger"
	"github.com/noorstudy/noorstudy-backend/internal/repos"
	"github.com/noorstudy/noorstudy-backend/internal/sse"
)

// Notifier delivers reply notifications to students. Delivery is best
// effort: failures are logged and never surfaced to the reply flow.
type Notifier interface {
	NotifyConsultationReply(ctx context.Context, msg *domain.ConsultationMessage, answer, responder, subject string)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error)
}

type notifier struct {
	log           *logger.Logger
	notifications repos.NotificationRepo
	hub           *sse.SSEHub
	bus           redis.SSEBus
}

func NewNotifier(log *logger.Logger, notifications repos.NotificationRepo, hub *sse.SSEHub, bus redis.SSEBus) Notifier {
	return &notifier{
		log:           log.With("service", "Notifier"),
		notifications: notifications,
		hub:           hub,
		bus:           bus,
	}
}

func (n *notifier) NotifyConsultationReply(ctx context.Context, msg *domain.ConsultationMessage, answer, responder, subject string) {
	payload := domain.ConsultationReplyData{
		Type:      domain.NotificationTypeConsultationReply,
		Question:  msg.Content,
		Answer:    answer,
		Responder: responder,
		Subject:   subject,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		n.log.Error("marshal reply payload", "message_id", msg.ID, "error", err)
		return
	}

	record := &domain.Notification{
		UserID:    msg.UserID,
		Title:     "Your consultation has been answered",
		Content:   answer,
		ReplyData: datatypes.JSON(raw),
	}
	persisted := true
	if _, err := n.notifications.Create(ctx, nil, record); err != nil {
		persisted = false
		n.log.Error("persist reply notification", "message_id", msg.ID, "user_id", msg.UserID, "error", err)
	}

	n.publish(ctx, sse.SSEMessage{
		Channel: msg.UserID.String(),
		Event:   sse.SSEEventConsultationReplied,
		Data:    payload,
	})
	if persisted {
		n.publish(ctx, sse.SSEMessage{
			Channel: msg.UserID.String(),
			Event:   sse.SSEEventNotificationCreated,
			Data:    record,
		})
	}
}

func (n *notifier) publish(ctx context.Context, event sse.SSEMessage) {
	if n.bus != nil {
		if err := n.bus.Publish(ctx, event); err != nil {
			n.log.Warn("publish sse event", "event", string(event.Event), "error", err)
		}
		return
	}
	n.hub.Broadcast(event)
}

func (n *notifier) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	return n.notifications.ListByUser(ctx, nil, userID)
}
