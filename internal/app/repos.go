package app

import (
	"gorm.io/gorm"

	"github.com/noorstudy/noorstudy-backend/internal/platform/logger"
	"github.com/noorstudy/noorstudy-backend/internal/repos"
)

type Repos struct {
	Lessons       repos.LessonRepo
	Consultations repos.ConsultationRepo
	Notifications repos.NotificationRepo
	ExamLinks     repos.ExamLinkRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		Lessons:       repos.NewLessonRepo(db, log),
		Consultations: repos.NewConsultationRepo(db, log),
		Notifications: repos.NewNotificationRepo(db, log),
		ExamLinks:     repos.NewExamLinkRepo(db, log),
	}
}
