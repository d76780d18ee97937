package app

import (
	"fmt"

	"github.com/noorstudy/noorstudy-backend/internal/clients/openai"
	"github.com/noorstudy/noorstudy-backend/internal/clients/redis"
	"github.com/noorstudy/noorstudy-backend/internal/platform/logger"
	"github.com/noorstudy/noorstudy-backend/internal/services"
	"github.com/noorstudy/noorstudy-backend/internal/sse"
)

type Services struct {
	Generation    services.GenerationService
	Drafts        services.DraftService
	Lessons       services.LessonService
	Consultations services.ConsultationService
	Notifier      services.Notifier
}

func wireServices(log *logger.Logger, cfg Config, reposet Repos, hub *sse.SSEHub, bus redis.SSEBus) (Services, error) {
	ai, err := openai.NewClient(log)
	if err != nil {
		return Services{}, fmt.Errorf("init openai client: %w", err)
	}

	generation := services.NewGenerationService(log, ai)
	notifier := services.NewNotifier(log, reposet.Notifications, hub, bus)

	return Services{
		Generation:    generation,
		Drafts:        services.NewDraftService(log, generation),
		Lessons:       services.NewLessonService(log, reposet.Lessons),
		Consultations: services.NewConsultationService(log, reposet.Consultations, notifier, cfg.InboxPollEvery),
		Notifier:      notifier,
	}, nil
}
