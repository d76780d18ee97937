package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/noorstudy/noorstudy-backend/internal/pkg/apperr"
)

func TestErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, tc := range []struct {
		name     string
		err      error
		wantCode int
		wantTag  string
	}{
		{"validation", fmt.Errorf("%w: title required", apperr.ErrValidation), http.StatusBadRequest, "validation"},
		{"not found", apperr.ErrNotFound, http.StatusNotFound, "not_found"},
		{"gorm not found", gorm.ErrRecordNotFound, http.StatusNotFound, "not_found"},
		{"unauthorized", apperr.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"already replied", apperr.ErrAlreadyReplied, http.StatusConflict, "already_replied"},
		{"busy", apperr.ErrBusy, http.StatusConflict, "busy"},
		{"bad ai output", apperr.ErrInvalidAIResponse, http.StatusBadGateway, "bad_ai_response"},
		{"empty ai output", apperr.ErrEmptyAIResponse, http.StatusBadGateway, "bad_ai_response"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "internal"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			Error(c, tc.err)

			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantCode)
			}
			var envelope struct {
				Error struct {
					Message string `json:"message"`
					Code    string `json:"code"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("unmarshal body: %v", err)
			}
			if envelope.Error.Code != tc.wantTag {
				t.Fatalf("code = %q, want %q", envelope.Error.Code, tc.wantTag)
			}
		})
	}
}

func TestUnknownErrorIsOpaque(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Error(c, errors.New("dsn=postgres://user:hunter2@db"))

	got := rec.Body.String()
	if got == "" || strings.Contains(got, "hunter2") || strings.Contains(got, "dsn") {
		t.Fatalf("internal details leaked: %s", got)
	}
}
