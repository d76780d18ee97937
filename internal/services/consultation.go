package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/noorstudy/noorstudy-backend/internal/domain"
	"github.com/noorstudy/noorstudy-backend/internal/pkg/apperr"
	"github.com/noorstudy/noorstudy-backend/internal/pkg/ctxutil"
	"github.com/noorstudy/noorstudy-backend/internal/platform/logger"
	"github.com/noorstudy/noorstudy-backend/internal/repos"
)

// InboxView is the consultation inbox as one caller sees it: the scoped
// message list plus the pending counter badge for the same scope.
type InboxView struct {
	Messages     []*domain.ConsultationMessage `json:"messages"`
	PendingCount int                           `json:"pending_count"`
}

type ConsultationService interface {
	// Inbox serves the caller's scoped view from the cached snapshot.
	Inbox(ctx context.Context, p *ctxutil.Principal) InboxView

	// SubmitReply transitions a pending message to replied and notifies
	// the asking student. Replying to an already replied message fails
	// with ErrAlreadyReplied and changes nothing.
	SubmitReply(ctx context.Context, p *ctxutil.Principal, messageID uuid.UUID, answer string) (*domain.ConsultationMessage, error)

	// BeginCompose and EndCompose bracket an open reply editor. While a
	// compose is open the background poller leaves the snapshot alone so
	// the list does not shift under the responder.
	BeginCompose()
	EndCompose()

	Refresh(ctx context.Context) error
	Start(ctx context.Context)
}

type consultationService struct {
	log           *logger.Logger
	consultations repos.ConsultationRepo
	notifier      Notifier
	pollInterval  time.Duration

	mu           sync.RWMutex
	snapshot     []*domain.ConsultationMessage
	pendingCount int

	composing atomic.Bool
}

func NewConsultationService(log *logger.Logger, consultations repos.ConsultationRepo, notifier Notifier, pollInterval time.Duration) ConsultationService {
	if pollInterval <= 0 {
		pollInterval = 8 * time.Second
	}
	return &consultationService{
		log:           log.With("service", "ConsultationService"),
		consultations: consultations,
		notifier:      notifier,
		pollInterval:  pollInterval,
	}
}

func (s *consultationService) Refresh(ctx context.Context) error {
	msgs, err := s.consultations.ListAll(ctx, nil)
	if err != nil {
		return err
	}
	pending := 0
	for _, m := range msgs {
		if !m.IsReplied {
			pending++
		}
	}
	s.mu.Lock()
	s.snapshot = msgs
	s.pendingCount = pending
	s.mu.Unlock()
	return nil
}

// Start runs the refresh loop until ctx is cancelled. Ticks that land while
// a reply is being composed are skipped, not deferred.
func (s *consultationService) Start(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		s.log.Warn("initial inbox refresh failed", "error", err)
	}
	ticker := time.NewTicker(s.pollInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if s.composing.Load() {
					continue
				}
				if err := s.Refresh(ctx); err != nil {
					s.log.Warn("inbox refresh failed", "error", err)
				}
			}
		}
	}()
}

func (s *consultationService) BeginCompose() { s.composing.Store(true) }
func (s *consultationService) EndCompose()   { s.composing.Store(false) }

func (s *consultationService) Inbox(_ context.Context, p *ctxutil.Principal) InboxView {
	s.mu.RLock()
	snapshot := s.snapshot
	s.mu.RUnlock()

	scoped := scopeMessages(snapshot, p)
	pending := 0
	for _, m := range scoped {
		if !m.IsReplied {
			pending++
		}
	}
	return InboxView{Messages: scoped, PendingCount: pending}
}

// scopeMessages filters the full inbox down to what the caller may see.
// Admins see everything, reviewers see messages matching any of their
// subject keywords, students see their own questions.
func scopeMessages(msgs []*domain.ConsultationMessage, p *ctxutil.Principal) []*domain.ConsultationMessage {
	if p == nil {
		return nil
	}
	out := make([]*domain.ConsultationMessage, 0, len(msgs))
	for _, m := range msgs {
		switch p.Role {
		case ctxutil.RoleAdmin:
			out = append(out, m)
		case ctxutil.RoleReviewer:
			if matchesKeywords(m.Content, p.SubjectKeywords) {
				out = append(out, m)
			}
		default:
			if m.UserID == p.UserID {
				out = append(out, m)
			}
		}
	}
	return out
}

// matchesKeywords reports whether the message text contains any of the
// keywords as a case-sensitive substring. No keywords means no matches.
func matchesKeywords(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func (s *consultationService) SubmitReply(ctx context.Context, p *ctxutil.Principal, messageID uuid.UUID, answer string) (*domain.ConsultationMessage, error) {
	if p == nil {
		return nil, apperr.ErrUnauthorized
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, fmt.Errorf("%w: reply text is required", apperr.ErrValidation)
	}

	msg, err := s.consultations.GetByID(ctx, nil, messageID)
	if err != nil {
		return nil, err
	}
	if msg.IsReplied {
		return nil, apperr.ErrAlreadyReplied
	}

	if err := s.consultations.MarkReplied(ctx, nil, messageID, answer); err != nil {
		if errors.Is(err, apperr.ErrAlreadyReplied) {
			return nil, err
		}
		// The guarded update can fail on schema drift in older
		// deployments; a plain column patch reaches the same state.
		s.log.Warn("guarded reply update failed, falling back to patch", "message_id", messageID, "error", err)
		patch := map[string]any{"is_replied": true, "response": answer}
		if err := s.consultations.Update(ctx, nil, messageID, patch); err != nil {
			return nil, err
		}
	}

	msg.IsReplied = true
	msg.Response = &answer

	subject := firstKeyword(p.SubjectKeywords)
	s.notifier.NotifyConsultationReply(ctx, msg, answer, p.Name, subject)

	s.applyReplyToSnapshot(messageID, answer)
	return msg, nil
}

func firstKeyword(keywords []string) string {
	if len(keywords) > 0 {
		return keywords[0]
	}
	return ""
}

// applyReplyToSnapshot updates the cached copy in place so the change shows
// before the next poll, which may be paused while composing.
func (s *consultationService) applyReplyToSnapshot(messageID uuid.UUID, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.snapshot {
		if m.ID != messageID {
			continue
		}
		if !m.IsReplied {
			m.IsReplied = true
			m.Response = &answer
			if s.pendingCount > 0 {
				s.pendingCount--
			}
		}
		return
	}
}
