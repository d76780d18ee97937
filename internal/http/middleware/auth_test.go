package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/noorstudy/noorstudy-backend/internal/pkg/ctxutil"
	"github.com/noorstudy/noorstudy-backend/internal/platform/logger"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims accessClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func authRouter(t *testing.T, onRequest func(c *gin.Context)) (*gin.Engine, *AuthMiddleware) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	am := NewAuthMiddleware(log, testSecret)

	r := gin.New()
	r.GET("/protected", am.RequireAuth(), onRequest)
	return r, am
}

func TestRequireAuthAttachesPrincipal(t *testing.T) {
	userID := uuid.New()
	var got *ctxutil.Principal
	r, _ := authRouter(t, func(c *gin.Context) {
		got = ctxutil.GetPrincipal(c.Request.Context())
		c.Status(http.StatusOK)
	})

	token := signToken(t, accessClaims{
		Name:            "Mr. Haddad",
		Role:            "reviewer",
		SubjectKeywords: []string{"algebra"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got == nil || got.UserID != userID || got.Role != ctxutil.RoleReviewer {
		t.Fatalf("principal = %+v", got)
	}
	if len(got.SubjectKeywords) != 1 || got.SubjectKeywords[0] != "algebra" {
		t.Fatalf("keywords = %v", got.SubjectKeywords)
	}
}

func TestRequireAuthAcceptsQueryToken(t *testing.T) {
	r, _ := authRouter(t, func(c *gin.Context) { c.Status(http.StatusOK) })

	token := signToken(t, accessClaims{
		Role: "student",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRequireAuthRejections(t *testing.T) {
	r, _ := authRouter(t, func(c *gin.Context) { c.Status(http.StatusOK) })

	expired := signToken(t, accessClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	for _, tc := range []struct {
		name  string
		token string
	}{
		{"missing token", ""},
		{"garbage token", "not-a-jwt"},
		{"expired token", expired},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	am := NewAuthMiddleware(log, testSecret)

	r := gin.New()
	r.GET("/admin-only", am.RequireAuth(), am.RequireRole(ctxutil.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, tc := range []struct {
		role string
		want int
	}{
		{"admin", http.StatusOK},
		{"reviewer", http.StatusForbidden},
		{"student", http.StatusForbidden},
	} {
		t.Run(tc.role, func(t *testing.T) {
			token := signToken(t, accessClaims{
				Role: tc.role,
				RegisteredClaims: jwt.RegisteredClaims{
					Subject:   uuid.NewString(),
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				},
			})
			req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}
