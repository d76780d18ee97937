package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/noorstudy/noorstudy-backend/internal/domain"
	"github.com/noorstudy/noorstudy-backend/internal/http/response"
	"github.com/noorstudy/noorstudy-backend/internal/platform/logger"
	"github.com/noorstudy/noorstudy-backend/internal/repos"
)

type ExamLinkHandler struct {
	log       *logger.Logger
	examLinks repos.ExamLinkRepo
}

func NewExamLinkHandler(log *logger.Logger, examLinks repos.ExamLinkRepo) *ExamLinkHandler {
	return &ExamLinkHandler{
		log:       log.With("handler", "ExamLinkHandler"),
		examLinks: examLinks,
	}
}

// GET /api/exam-links?subject=...
func (h *ExamLinkHandler) ListExamLinks(c *gin.Context) {
	links, err := h.examLinks.ListBySubject(c.Request.Context(), nil, c.Query("subject"))
	if err != nil {
		h.log.Error("list exam links failed", "error", err)
		response.OK(c, []*domain.ExamLink{})
		return
	}
	if links == nil {
		links = []*domain.ExamLink{}
	}
	response.OK(c, links)
}

type createExamLinkRequest struct {
	Subject string `json:"subject"`
	Title   string `json:"title"`
	URL     string `json:"url"`
}

// POST /api/exam-links
func (h *ExamLinkHandler) CreateExamLink(c *gin.Context) {
	var req createExamLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.URL) == "" {
		response.BadRequest(c, "subject, title and url are required")
		return
	}
	link, err := h.examLinks.Create(c.Request.Context(), nil, &domain.ExamLink{
		Subject: req.Subject,
		Title:   req.Title,
		URL:     req.URL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, link)
}

// DELETE /api/exam-links/:id
func (h *ExamLinkHandler) DeleteExamLink(c *gin.Context) {
	linkID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid exam link id")
		return
	}
	if err := h.examLinks.Delete(c.Request.Context(), nil, linkID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
