package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/noorstudy/noorstudy-backend/internal/http/response"
	"github.com/noorstudy/noorstudy-backend/internal/pkg/ctxutil"
	"github.com/noorstudy/noorstudy-backend/internal/platform/logger"
	"github.com/noorstudy/noorstudy-backend/internal/services"
)

type ConsultationHandler struct {
	log           *logger.Logger
	consultations services.ConsultationService
}

func NewConsultationHandler(log *logger.Logger, consultations services.ConsultationService) *ConsultationHandler {
	return &ConsultationHandler{
		log:           log.With("handler", "ConsultationHandler"),
		consultations: consultations,
	}
}

// GET /api/consultations
func (h *ConsultationHandler) Inbox(c *gin.Context) {
	p := ctxutil.GetPrincipal(c.Request.Context())
	response.OK(c, h.consultations.Inbox(c.Request.Context(), p))
}

type replyRequest struct {
	Answer string `json:"answer"`
}

// POST /api/consultations/:id/reply
func (h *ConsultationHandler) Reply(c *gin.Context) {
	p := ctxutil.GetPrincipal(c.Request.Context())
	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid consultation id")
		return
	}
	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	msg, err := h.consultations.SubmitReply(c.Request.Context(), p, messageID, req.Answer)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, msg)
}

// POST /api/consultations/:id/compose
func (h *ConsultationHandler) BeginCompose(c *gin.Context) {
	h.consultations.BeginCompose()
	response.NoContent(c)
}

// DELETE /api/consultations/:id/compose
func (h *ConsultationHandler) EndCompose(c *gin.Context) {
	h.consultations.EndCompose()
	response.NoContent(c)
}
