package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/noorstudy/noorstudy-backend/internal/pkg/ctxutil"
)

func traceRouter(t *testing.T, onRequest func(c *gin.Context)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/ping", onRequest)
	return r
}

func TestAttachTraceContextGeneratesIDs(t *testing.T) {
	var got *ctxutil.TraceData
	r := traceRouter(t, func(c *gin.Context) {
		got = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	if got == nil {
		t.Fatal("expected trace data on request context")
	}
	if got.TraceID == "" || got.RequestID == "" {
		t.Fatalf("expected non-empty ids, got %+v", got)
	}
	if _, err := uuid.Parse(got.RequestID); err != nil {
		t.Fatalf("generated request id not a uuid: %v", err)
	}
	if w.Header().Get("X-Trace-Id") != got.TraceID {
		t.Fatalf("trace id header %q does not match context %q", w.Header().Get("X-Trace-Id"), got.TraceID)
	}
	if w.Header().Get("X-Request-Id") != got.RequestID {
		t.Fatalf("request id header %q does not match context %q", w.Header().Get("X-Request-Id"), got.RequestID)
	}
}

func TestAttachTraceContextHonorsCallerHeaders(t *testing.T) {
	var got *ctxutil.TraceData
	r := traceRouter(t, func(c *gin.Context) {
		got = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Trace-Id", "caller-trace")
	req.Header.Set("X-Request-Id", "caller-request")
	r.ServeHTTP(w, req)

	if got == nil {
		t.Fatal("expected trace data on request context")
	}
	if got.TraceID != "caller-trace" || got.RequestID != "caller-request" {
		t.Fatalf("expected caller ids to survive, got %+v", got)
	}
	if w.Header().Get("X-Trace-Id") != "caller-trace" {
		t.Fatalf("expected trace id echoed back, got %q", w.Header().Get("X-Trace-Id"))
	}
}
