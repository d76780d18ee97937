package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleReviewer Role = "reviewer"
	RoleStudent  Role = "student"
)

// Principal is the authenticated caller attached to the request context.
// Reviewers carry the keyword strings that scope their consultation inbox.
type Principal struct {
	UserID          uuid.UUID
	Name            string
	Role            Role
	SubjectKeywords []string
}

// TraceData carries the per-request correlation identifiers set by the
// trace middleware and echoed back in response headers.
type TraceData struct {
	TraceID   string
	RequestID string
}

type principalKey struct{}
type traceKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func GetPrincipal(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey{}).(*Principal)
	return p
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	td, _ := ctx.Value(traceKey{}).(*TraceData)
	return td
}
