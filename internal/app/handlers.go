package app

import (
	"gorm.io/gorm"

	"github.com/noorstudy/noorstudy-backend/internal/http/handlers"
	"github.com/noorstudy/noorstudy-backend/internal/platform/logger"
	"github.com/noorstudy/noorstudy-backend/internal/sse"
)

type Handlers struct {
	Health       *handlers.HealthHandler
	Lesson       *handlers.LessonHandler
	Draft        *handlers.DraftHandler
	Consultation *handlers.ConsultationHandler
	Notification *handlers.NotificationHandler
	ExamLink     *handlers.ExamLinkHandler
	SSE          *handlers.SSEHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, serviceset Services, reposet Repos, hub *sse.SSEHub) Handlers {
	return Handlers{
		Health:       handlers.NewHealthHandler(db),
		Lesson:       handlers.NewLessonHandler(log, serviceset.Lessons),
		Draft:        handlers.NewDraftHandler(log, serviceset.Drafts),
		Consultation: handlers.NewConsultationHandler(log, serviceset.Consultations),
		Notification: handlers.NewNotificationHandler(log, serviceset.Notifier),
		ExamLink:     handlers.NewExamLinkHandler(log, reposet.ExamLinks),
		SSE:          handlers.NewSSEHandler(log, hub),
	}
}
