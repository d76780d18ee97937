package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/noorstudy/noorstudy-backend/internal/content"
	"github.com/noorstudy/noorstudy-backend/internal/domain"
	"github.com/noorstudy/noorstudy-backend/internal/http/response"
	"github.com/noorstudy/noorstudy-backend/internal/platform/logger"
	"github.com/noorstudy/noorstudy-backend/internal/services"
)

type LessonHandler struct {
	log     *logger.Logger
	lessons services.LessonService
}

func NewLessonHandler(log *logger.Logger, lessons services.LessonService) *LessonHandler {
	return &LessonHandler{
		log:     log.With("handler", "LessonHandler"),
		lessons: lessons,
	}
}

func sectionKeyParam(c *gin.Context) (content.SectionKey, bool) {
	key, err := content.ParseSectionKey(c.Param("section"))
	if err != nil {
		response.BadRequest(c, "invalid section key")
		return content.SectionKey{}, false
	}
	return key, true
}

// GET /api/sections/:section/lessons
func (h *LessonHandler) ListLessons(c *gin.Context) {
	key, ok := sectionKeyParam(c)
	if !ok {
		return
	}
	lessons, err := h.lessons.ListBySection(c.Request.Context(), key)
	if err != nil {
		// A failed list read degrades to an empty section rather than an
		// error page.
		h.log.Error("list lessons failed", "section", key.String(), "error", err)
		response.OK(c, []*domain.Lesson{})
		return
	}
	response.OK(c, lessons)
}

type createLessonRequest struct {
	Title           string          `json:"title"`
	Subtitle        string          `json:"subtitle"`
	Subject         string          `json:"subject"`
	Color           string          `json:"color"`
	DurationMinutes int             `json:"duration_minutes"`
	Content         json.RawMessage `json:"content"`
}

// POST /api/sections/:section/lessons
func (h *LessonHandler) CreateLesson(c *gin.Context) {
	key, ok := sectionKeyParam(c)
	if !ok {
		return
	}
	var req createLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	var doc content.Document
	if len(req.Content) > 0 {
		doc, _ = content.ParseContent(string(req.Content))
	}
	lesson, err := h.lessons.Create(c.Request.Context(), key, services.CreateLessonInput{
		Title:           req.Title,
		Subtitle:        req.Subtitle,
		Subject:         req.Subject,
		Color:           req.Color,
		DurationMinutes: req.DurationMinutes,
		Document:        doc,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, lesson)
}

type updateLessonRequest struct {
	Title           *string          `json:"title"`
	Subtitle        *string          `json:"subtitle"`
	Color           *string          `json:"color"`
	DurationMinutes *int             `json:"duration_minutes"`
	Content         *json.RawMessage `json:"content"`
}

// PUT /api/lessons/:id
func (h *LessonHandler) UpdateLesson(c *gin.Context) {
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid lesson id")
		return
	}
	var req updateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	in := services.UpdateLessonInput{
		Title:           req.Title,
		Subtitle:        req.Subtitle,
		Color:           req.Color,
		DurationMinutes: req.DurationMinutes,
	}
	if req.Content != nil {
		doc, _ := content.ParseContent(string(*req.Content))
		in.Document = &doc
	}
	lesson, err := h.lessons.Update(c.Request.Context(), lessonID, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, lesson)
}

// DELETE /api/lessons/:id
func (h *LessonHandler) DeleteLesson(c *gin.Context) {
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid lesson id")
		return
	}
	if err := h.lessons.Delete(c.Request.Context(), lessonID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

type moveLessonRequest struct {
	Index     int    `json:"index"`
	Direction string `json:"direction"`
}

// POST /api/sections/:section/lessons/move
func (h *LessonHandler) MoveLesson(c *gin.Context) {
	key, ok := sectionKeyParam(c)
	if !ok {
		return
	}
	var req moveLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	direction := content.MoveDirection(req.Direction)
	if direction != content.MoveUp && direction != content.MoveDown {
		response.BadRequest(c, "direction must be up or down")
		return
	}

	lessons, err := h.lessons.MoveLesson(c.Request.Context(), key, req.Index, direction)
	if err != nil {
		// The stored order still comes back so the client can reconcile.
		h.log.Warn("move lesson failed", "section", key.String(), "error", err)
		if lessons == nil {
			response.Error(c, err)
			return
		}
	}
	response.OK(c, lessons)
}
