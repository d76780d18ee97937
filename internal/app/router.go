package app

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	mw "github.com/noorstudy/noorstudy-backend/internal/http/middleware"
	"github.com/noorstudy/noorstudy-backend/internal/pkg/ctxutil"
	"github.com/noorstudy/noorstudy-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, h Handlers, m Middleware) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(mw.CORS(cfg.CORSAllowOrigins))
	router.Use(otelgin.Middleware("noorstudy-backend"))
	router.Use(mw.AttachTraceContext())
	router.Use(mw.RequestLogger(log))

	router.GET("/healthz", h.Health.Health)

	api := router.Group("/api")
	api.Use(m.Auth.RequireAuth())

	api.GET("/sse", h.SSE.Stream)
	api.GET("/notifications", h.Notification.ListNotifications)

	api.GET("/sections/:section/lessons", h.Lesson.ListLessons)
	api.GET("/exam-links", h.ExamLink.ListExamLinks)

	// Authoring surface.
	authors := api.Group("", m.Auth.RequireRole(ctxutil.RoleAdmin, ctxutil.RoleReviewer))
	{
		authors.POST("/sections/:section/lessons", h.Lesson.CreateLesson)
		authors.POST("/sections/:section/lessons/move", h.Lesson.MoveLesson)
		authors.PUT("/lessons/:id", h.Lesson.UpdateLesson)
		authors.DELETE("/lessons/:id", h.Lesson.DeleteLesson)

		authors.GET("/drafts/:section", h.Draft.GetDraft)
		authors.PUT("/drafts/:section", h.Draft.SetDraft)
		authors.POST("/drafts/:section/generate", h.Draft.Generate)
		authors.POST("/drafts/:section/ops/:op", h.Draft.ApplyOp)

		authors.POST("/exam-links", h.ExamLink.CreateExamLink)
		authors.DELETE("/exam-links/:id", h.ExamLink.DeleteExamLink)
	}

	// Inbox is visible to every authenticated role; the service scopes the
	// message list itself. Replying stays an authoring action.
	api.GET("/consultations", h.Consultation.Inbox)
	authors.POST("/consultations/:id/reply", h.Consultation.Reply)
	authors.POST("/consultations/:id/compose", h.Consultation.BeginCompose)
	authors.DELETE("/consultations/:id/compose", h.Consultation.EndCompose)

	return router
}
