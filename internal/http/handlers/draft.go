package handlers

import (
	"encoding/base64"

	"github.com/gin-gonic/gin"

	"github.com/noorstudy/noorstudy-backend/internal/content"
	"github.com/noorstudy/noorstudy-backend/internal/http/response"
	"github.com/noorstudy/noorstudy-backend/internal/pkg/ctxutil"
	"github.com/noorstudy/noorstudy-backend/internal/platform/logger"
	"github.com/noorstudy/noorstudy-backend/internal/services"
)

type DraftHandler struct {
	log    *logger.Logger
	drafts services.DraftService
}

func NewDraftHandler(log *logger.Logger, drafts services.DraftService) *DraftHandler {
	return &DraftHandler{
		log:    log.With("handler", "DraftHandler"),
		drafts: drafts,
	}
}

type draftResponse struct {
	Content string `json:"content"`
}

func (h *DraftHandler) respondDraft(c *gin.Context, doc content.Document) {
	raw, err := content.MarshalContent(doc)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, draftResponse{Content: raw})
}

// GET /api/drafts/:section
func (h *DraftHandler) GetDraft(c *gin.Context) {
	p := ctxutil.GetPrincipal(c.Request.Context())
	key, ok := sectionKeyParam(c)
	if !ok {
		return
	}
	h.respondDraft(c, h.drafts.Get(p.UserID, key))
}

type generateRequest struct {
	Text string `json:"text"`
	// ImageBase64 switches the request to the photographed-page path.
	ImageBase64 string `json:"image_base64,omitempty"`
	ImageMime   string `json:"image_mime,omitempty"`
}

// POST /api/drafts/:section/generate
func (h *DraftHandler) Generate(c *gin.Context) {
	p := ctxutil.GetPrincipal(c.Request.Context())
	key, ok := sectionKeyParam(c)
	if !ok {
		return
	}
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	var (
		doc content.Document
		err error
	)
	if req.ImageBase64 != "" {
		imageBytes, decodeErr := base64.StdEncoding.DecodeString(req.ImageBase64)
		if decodeErr != nil {
			response.BadRequest(c, "invalid image encoding")
			return
		}
		doc, err = h.drafts.GenerateFromImage(c.Request.Context(), p.UserID, key, imageBytes, req.ImageMime)
	} else {
		doc, err = h.drafts.Generate(c.Request.Context(), p.UserID, key, req.Text)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respondDraft(c, doc)
}

type blockOpRequest struct {
	BlockID   string `json:"block_id,omitempty"`
	Field     string `json:"field,omitempty"`
	Value     string `json:"value,omitempty"`
	Index     int    `json:"index,omitempty"`
	Direction string `json:"direction,omitempty"`

	PositionIndex    int `json:"position_index,omitempty"`
	TheoryIndex      int `json:"theory_index,omitempty"`
	PhilosopherIndex int `json:"philosopher_index,omitempty"`
}

// POST /api/drafts/:section/ops/:op
//
// Editor operations are dispatched by name so the client has one endpoint
// for the whole edit surface. Unknown operations are a 400.
func (h *DraftHandler) ApplyOp(c *gin.Context) {
	p := ctxutil.GetPrincipal(c.Request.Context())
	key, ok := sectionKeyParam(c)
	if !ok {
		return
	}
	var req blockOpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	var (
		doc content.Document
		err error
	)
	switch op := c.Param("op"); op {
	case "add_block":
		doc, err = h.drafts.AddBlock(p.UserID, key)
	case "update_block":
		doc, err = h.drafts.UpdateBlock(p.UserID, key, req.BlockID, req.Field, req.Value)
	case "remove_block":
		doc, err = h.drafts.RemoveBlock(p.UserID, key, req.BlockID)
	case "move_block":
		direction := content.MoveDirection(req.Direction)
		if direction != content.MoveUp && direction != content.MoveDown {
			response.BadRequest(c, "direction must be up or down")
			return
		}
		doc, err = h.drafts.MoveBlock(p.UserID, key, req.Index, direction)
	case "update_field":
		doc, err = h.drafts.UpdateEssayField(p.UserID, key, req.Field, req.Value)
	case "update_position":
		doc, err = h.drafts.UpdatePosition(p.UserID, key, req.PositionIndex, req.Field, req.Value)
	case "update_philosopher":
		doc, err = h.drafts.UpdatePhilosopher(p.UserID, key, req.PositionIndex, req.TheoryIndex, req.PhilosopherIndex, req.Field, req.Value)
	case "add_philosopher":
		doc, err = h.drafts.AddPhilosopher(p.UserID, key, req.PositionIndex, req.TheoryIndex)
	case "remove_philosopher":
		doc, err = h.drafts.RemovePhilosopher(p.UserID, key, req.PositionIndex, req.TheoryIndex, req.PhilosopherIndex)
	default:
		response.BadRequest(c, "unknown operation")
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respondDraft(c, doc)
}

type setDraftRequest struct {
	Content string `json:"content"`
}

// PUT /api/drafts/:section
//
// Replaces the draft with previously saved lesson content so an author can
// resume editing a persisted lesson.
func (h *DraftHandler) SetDraft(c *gin.Context) {
	p := ctxutil.GetPrincipal(c.Request.Context())
	key, ok := sectionKeyParam(c)
	if !ok {
		return
	}
	var req setDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	doc, _ := content.ParseContent(req.Content)
	h.drafts.Set(p.UserID, key, doc)
	h.respondDraft(c, doc)
}
