package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/noorstudy/noorstudy-backend/internal/pkg/apperr"
)

type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func Created(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error maps service errors onto the wire envelope. Unknown errors become
// opaque 500s so internals never leak to clients.
func Error(c *gin.Context, err error) {
	status, code, message := http.StatusInternalServerError, "internal", "internal server error"
	switch {
	case errors.Is(err, apperr.ErrValidation):
		status, code, message = http.StatusBadRequest, "validation", err.Error()
	case errors.Is(err, apperr.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		status, code, message = http.StatusNotFound, "not_found", "resource not found"
	case errors.Is(err, apperr.ErrUnauthorized):
		status, code, message = http.StatusUnauthorized, "unauthorized", "authentication required"
	case errors.Is(err, apperr.ErrAlreadyReplied):
		status, code, message = http.StatusConflict, "already_replied", "consultation already replied"
	case errors.Is(err, apperr.ErrBusy):
		status, code, message = http.StatusConflict, "busy", "generation already in progress"
	case errors.Is(err, apperr.ErrEmptyAIResponse), errors.Is(err, apperr.ErrInvalidAIResponse):
		status, code, message = http.StatusBadGateway, "bad_ai_response", "assistant returned unusable output"
	}
	c.JSON(status, errorEnvelope{Error: errorBody{Message: message, Code: code}})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errorEnvelope{Error: errorBody{Message: message, Code: "bad_request"}})
}

func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, errorEnvelope{Error: errorBody{Message: message, Code: "unauthorized"}})
}

func Forbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, errorEnvelope{Error: errorBody{Message: message, Code: "forbidden"}})
}
