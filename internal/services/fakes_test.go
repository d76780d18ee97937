package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/noorstudy/noorstudy-backend/internal/clients/openai"
	"github.com/noorstudy/noorstudy-backend/internal/domain"
	"github.com/noorstudy/noorstudy-backend/internal/pkg/apperr"
	"github.com/noorstudy/noorstudy-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

type fakeAI struct {
	reply      string
	err        error
	textCalls  int
	imageCalls int
}

func (f *fakeAI) GenerateText(_ context.Context, _ string, _ string) (string, error) {
	f.textCalls++
	return f.reply, f.err
}

func (f *fakeAI) GenerateTextWithImages(_ context.Context, _ string, _ string, _ []openai.ImageInput) (string, error) {
	f.imageCalls++
	return f.reply, f.err
}

type fakeLessonRepo struct {
	lessons []*domain.Lesson

	failOrderWriteFor map[uuid.UUID]bool
	orderWrites       []uuid.UUID
}

func (f *fakeLessonRepo) Create(_ context.Context, _ *gorm.DB, lesson *domain.Lesson) (*domain.Lesson, error) {
	if lesson.ID == uuid.Nil {
		lesson.ID = uuid.New()
	}
	if lesson.CreatedAt.IsZero() {
		lesson.CreatedAt = time.Now()
	}
	f.lessons = append(f.lessons, lesson)
	return lesson, nil
}

func (f *fakeLessonRepo) GetByID(_ context.Context, _ *gorm.DB, lessonID uuid.UUID) (*domain.Lesson, error) {
	for _, l := range f.lessons {
		if l.ID == lessonID {
			return l, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeLessonRepo) ListBySection(_ context.Context, _ *gorm.DB, sectionID string) ([]*domain.Lesson, error) {
	var out []*domain.Lesson
	for _, l := range f.lessons {
		if l.SectionID == sectionID {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OrderIndex != out[j].OrderIndex {
			return out[i].OrderIndex < out[j].OrderIndex
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeLessonRepo) Update(_ context.Context, _ *gorm.DB, lessonID uuid.UUID, patch map[string]any) error {
	for _, l := range f.lessons {
		if l.ID != lessonID {
			continue
		}
		if v, ok := patch["title"].(string); ok {
			l.Title = v
		}
		if v, ok := patch["subtitle"].(string); ok {
			l.Subtitle = v
		}
		return nil
	}
	return apperr.ErrNotFound
}

func (f *fakeLessonRepo) UpdateOrderIndex(_ context.Context, _ *gorm.DB, lessonID uuid.UUID, orderIndex int) error {
	if f.failOrderWriteFor[lessonID] {
		return errors.New("write refused")
	}
	for _, l := range f.lessons {
		if l.ID == lessonID {
			l.OrderIndex = orderIndex
			f.orderWrites = append(f.orderWrites, lessonID)
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (f *fakeLessonRepo) Delete(_ context.Context, _ *gorm.DB, lessonID uuid.UUID) error {
	for i, l := range f.lessons {
		if l.ID == lessonID {
			f.lessons = append(f.lessons[:i], f.lessons[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}

type fakeConsultationRepo struct {
	messages []*domain.ConsultationMessage

	failMarkReplied bool
	markCalls       int
	updateCalls     int
}

func (f *fakeConsultationRepo) Create(_ context.Context, _ *gorm.DB, msg *domain.ConsultationMessage) (*domain.ConsultationMessage, error) {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	f.messages = append(f.messages, msg)
	return msg, nil
}

func (f *fakeConsultationRepo) GetByID(_ context.Context, _ *gorm.DB, messageID uuid.UUID) (*domain.ConsultationMessage, error) {
	for _, m := range f.messages {
		if m.ID == messageID {
			copied := *m
			return &copied, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeConsultationRepo) ListAll(_ context.Context, _ *gorm.DB) ([]*domain.ConsultationMessage, error) {
	out := make([]*domain.ConsultationMessage, 0, len(f.messages))
	for _, m := range f.messages {
		copied := *m
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeConsultationRepo) MarkReplied(_ context.Context, _ *gorm.DB, messageID uuid.UUID, response string) error {
	f.markCalls++
	if f.failMarkReplied {
		return errors.New("guarded update unavailable")
	}
	for _, m := range f.messages {
		if m.ID != messageID {
			continue
		}
		if m.IsReplied {
			return apperr.ErrAlreadyReplied
		}
		m.IsReplied = true
		m.Response = &response
		return nil
	}
	return apperr.ErrNotFound
}

func (f *fakeConsultationRepo) Update(_ context.Context, _ *gorm.DB, messageID uuid.UUID, patch map[string]any) error {
	f.updateCalls++
	for _, m := range f.messages {
		if m.ID != messageID {
			continue
		}
		if v, ok := patch["is_replied"].(bool); ok {
			m.IsReplied = v
		}
		if v, ok := patch["response"].(string); ok {
			m.Response = &v
		}
		return nil
	}
	return apperr.ErrNotFound
}

type fakeNotifier struct {
	calls []notifyCall
}

type notifyCall struct {
	messageID uuid.UUID
	userID    uuid.UUID
	answer    string
	responder string
}

func (f *fakeNotifier) NotifyConsultationReply(_ context.Context, msg *domain.ConsultationMessage, answer, responder, _ string) {
	f.calls = append(f.calls, notifyCall{
		messageID: msg.ID,
		userID:    msg.UserID,
		answer:    answer,
		responder: responder,
	})
}

func (f *fakeNotifier) ListForUser(_ context.Context, _ uuid.UUID) ([]*domain.Notification, error) {
	return nil, nil
}
