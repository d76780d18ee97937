package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/noorstudy/noorstudy-backend/internal/content"
	"github.com/noorstudy/noorstudy-backend/internal/domain"
	"github.com/noorstudy/noorstudy-backend/internal/pkg/apperr"
	"github.com/noorstudy/noorstudy-backend/internal/platform/logger"
	"github.com/noorstudy/noorstudy-backend/internal/repos"
)

type CreateLessonInput struct {
	Title           string
	Subtitle        string
	Subject         string
	Color           string
	DurationMinutes int
	Document        content.Document
}

type UpdateLessonInput struct {
	Title           *string
	Subtitle        *string
	Color           *string
	DurationMinutes *int
	Document        *content.Document
}

type LessonService interface {
	ListBySection(ctx context.Context, key content.SectionKey) ([]*domain.Lesson, error)
	GetByID(ctx context.Context, lessonID uuid.UUID) (*domain.Lesson, error)
	Create(ctx context.Context, key content.SectionKey, in CreateLessonInput) (*domain.Lesson, error)
	Update(ctx context.Context, lessonID uuid.UUID, in UpdateLessonInput) (*domain.Lesson, error)
	Delete(ctx context.Context, lessonID uuid.UUID) error

	// MoveLesson swaps a lesson with its up or down neighbor. The swap is
	// applied optimistically and both order indexes are persisted; when a
	// write fails the stored order is re-fetched and returned alongside
	// the error so callers converge on the backend's view.
	MoveLesson(ctx context.Context, key content.SectionKey, index int, direction content.MoveDirection) ([]*domain.Lesson, error)
}

type lessonService struct {
	log     *logger.Logger
	lessons repos.LessonRepo
}

func NewLessonService(log *logger.Logger, lessons repos.LessonRepo) LessonService {
	return &lessonService{
		log:     log.With("service", "LessonService"),
		lessons: lessons,
	}
}

func (s *lessonService) ListBySection(ctx context.Context, key content.SectionKey) ([]*domain.Lesson, error) {
	return s.lessons.ListBySection(ctx, nil, key.String())
}

func (s *lessonService) GetByID(ctx context.Context, lessonID uuid.UUID) (*domain.Lesson, error) {
	return s.lessons.GetByID(ctx, nil, lessonID)
}

func (s *lessonService) Create(ctx context.Context, key content.SectionKey, in CreateLessonInput) (*domain.Lesson, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: lesson title is required", apperr.ErrValidation)
	}
	if key.IsZero() {
		return nil, fmt.Errorf("%w: section key is required", apperr.ErrValidation)
	}

	doc := in.Document
	if doc.IsZero() {
		doc = content.EmptyDocument()
	}
	raw, err := content.MarshalContent(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal lesson content: %w", err)
	}

	existing, err := s.lessons.ListBySection(ctx, nil, key.String())
	if err != nil {
		return nil, err
	}

	color := in.Color
	if color == "" {
		color = string(content.ColorBlack)
	}

	lesson := &domain.Lesson{
		SectionID:       key.String(),
		Title:           title,
		Subtitle:        in.Subtitle,
		Content:         datatypes.JSON(raw),
		Subject:         in.Subject,
		Color:           color,
		OrderIndex:      len(existing) + 1,
		DurationMinutes: in.DurationMinutes,
	}
	return s.lessons.Create(ctx, nil, lesson)
}

func (s *lessonService) Update(ctx context.Context, lessonID uuid.UUID, in UpdateLessonInput) (*domain.Lesson, error) {
	patch := map[string]any{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: lesson title is required", apperr.ErrValidation)
		}
		patch["title"] = title
	}
	if in.Subtitle != nil {
		patch["subtitle"] = *in.Subtitle
	}
	if in.Color != nil {
		patch["color"] = *in.Color
	}
	if in.DurationMinutes != nil {
		patch["duration_minutes"] = *in.DurationMinutes
	}
	if in.Document != nil {
		raw, err := content.MarshalContent(*in.Document)
		if err != nil {
			return nil, fmt.Errorf("marshal lesson content: %w", err)
		}
		patch["content"] = datatypes.JSON(raw)
	}
	if len(patch) > 0 {
		if err := s.lessons.Update(ctx, nil, lessonID, patch); err != nil {
			return nil, err
		}
	}
	return s.lessons.GetByID(ctx, nil, lessonID)
}

func (s *lessonService) Delete(ctx context.Context, lessonID uuid.UUID) error {
	return s.lessons.Delete(ctx, nil, lessonID)
}

func (s *lessonService) MoveLesson(ctx context.Context, key content.SectionKey, index int, direction content.MoveDirection) ([]*domain.Lesson, error) {
	lessons, err := s.lessons.ListBySection(ctx, nil, key.String())
	if err != nil {
		return nil, err
	}

	var target int
	switch direction {
	case content.MoveUp:
		target = index - 1
	case content.MoveDown:
		target = index + 1
	default:
		return lessons, nil
	}
	if index < 0 || index >= len(lessons) || target < 0 || target >= len(lessons) {
		return lessons, nil
	}

	lessons[index], lessons[target] = lessons[target], lessons[index]

	// Indexes are reassigned from list position, not swapped between the
	// two records, so a section with duplicate or gapped order values
	// self-heals at the touched positions.
	if err := s.persistOrder(ctx, lessons, index, target); err != nil {
		return s.reconcile(ctx, key, err)
	}
	return lessons, nil
}

func (s *lessonService) persistOrder(ctx context.Context, lessons []*domain.Lesson, positions ...int) error {
	for _, pos := range positions {
		orderIndex := pos + 1
		if err := s.lessons.UpdateOrderIndex(ctx, nil, lessons[pos].ID, orderIndex); err != nil {
			return fmt.Errorf("persist order for lesson %s: %w", lessons[pos].ID, err)
		}
		lessons[pos].OrderIndex = orderIndex
	}
	return nil
}

// reconcile re-reads the stored ordering after a failed reorder write. The
// optimistic local swap is discarded in favor of whatever the rows now say.
func (s *lessonService) reconcile(ctx context.Context, key content.SectionKey, cause error) ([]*domain.Lesson, error) {
	s.log.Warn("reorder write failed, re-fetching section", "section", key.String(), "error", cause)
	stored, listErr := s.lessons.ListBySection(ctx, nil, key.String())
	if listErr != nil {
		return nil, fmt.Errorf("reorder failed (%v) and re-fetch failed: %w", cause, listErr)
	}
	return stored, cause
}
