package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/noorstudy/noorstudy-backend/internal/domain"
	"github.com/noorstudy/noorstudy-backend/internal/sse"
)

type fakeNotificationRepo struct {
	created   []*domain.Notification
	createErr error
}

func (f *fakeNotificationRepo) Create(_ context.Context, _ *gorm.DB, n *domain.Notification) (*domain.Notification, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	f.created = append(f.created, n)
	return n, nil
}

func (f *fakeNotificationRepo) ListByUser(_ context.Context, _ *gorm.DB, userID uuid.UUID) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for _, n := range f.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func drainEvents(client *sse.SSEClient) []sse.SSEMessage {
	var out []sse.SSEMessage
	for {
		select {
		case msg := <-client.Outbound:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestNotifyConsultationReplyPersistsAndBroadcasts(t *testing.T) {
	log := testLogger(t)
	repo := &fakeNotificationRepo{}
	hub := sse.NewSSEHub(log)
	n := NewNotifier(log, repo, hub, nil)

	student := uuid.New()
	client := hub.NewSSEClient(student)
	hub.AddChannel(client, student.String())

	msg := &domain.ConsultationMessage{ID: uuid.New(), UserID: student, Content: "What is a clause?"}
	n.NotifyConsultationReply(context.Background(), msg, "A group of words with a verb.", "Ms. Rami", "grammar")

	if len(repo.created) != 1 {
		t.Fatalf("notifications persisted = %d, want 1", len(repo.created))
	}
	record := repo.created[0]
	if record.UserID != student {
		t.Fatalf("notification user = %s, want %s", record.UserID, student)
	}
	var payload domain.ConsultationReplyData
	if err := json.Unmarshal(record.ReplyData, &payload); err != nil {
		t.Fatalf("decode reply_data: %v", err)
	}
	if payload.Type != domain.NotificationTypeConsultationReply ||
		payload.Question != "What is a clause?" ||
		payload.Responder != "Ms. Rami" ||
		payload.Subject != "grammar" {
		t.Fatalf("reply_data = %+v", payload)
	}

	events := drainEvents(client)
	if len(events) != 2 {
		t.Fatalf("events = %d, want reply + created", len(events))
	}
	if events[0].Event != sse.SSEEventConsultationReplied {
		t.Fatalf("first event = %q", events[0].Event)
	}
	if events[1].Event != sse.SSEEventNotificationCreated {
		t.Fatalf("second event = %q", events[1].Event)
	}
}

func TestNotifyConsultationReplyPersistFailureStillBroadcasts(t *testing.T) {
	log := testLogger(t)
	repo := &fakeNotificationRepo{createErr: errors.New("insert refused")}
	hub := sse.NewSSEHub(log)
	n := NewNotifier(log, repo, hub, nil)

	student := uuid.New()
	client := hub.NewSSEClient(student)
	hub.AddChannel(client, student.String())

	msg := &domain.ConsultationMessage{ID: uuid.New(), UserID: student, Content: "q"}
	n.NotifyConsultationReply(context.Background(), msg, "a", "Ms. Rami", "")

	events := drainEvents(client)
	if len(events) != 1 || events[0].Event != sse.SSEEventConsultationReplied {
		t.Fatalf("events = %+v, want the reply event only", events)
	}
}
