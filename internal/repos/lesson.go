package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/noorstudy/noorstudy-backend/internal/domain"
	"github.com/noorstudy/noorstudy-backend/internal/platform/logger"
)

type LessonRepo interface {
	Create(ctx context.Context, tx *gorm.DB, lesson *domain.Lesson) (*domain.Lesson, error)
	GetByID(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) (*domain.Lesson, error)
	// ListBySection returns the section's lessons sorted by
	// (order_index ASC, created_at ASC). order_index values are not unique;
	// created_at is the tiebreak that keeps the order well-defined.
	ListBySection(ctx context.Context, tx *gorm.DB, sectionID string) ([]*domain.Lesson, error)
	Update(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, patch map[string]any) error
	UpdateOrderIndex(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, orderIndex int) error
	Delete(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) error
}

type lessonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	return &lessonRepo{db: db, log: baseLog.With("repo", "LessonRepo")}
}

func (r *lessonRepo) Create(ctx context.Context, tx *gorm.DB, lesson *domain.Lesson) (*domain.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(lesson).Error; err != nil {
		return nil, err
	}
	return lesson, nil
}

func (r *lessonRepo) GetByID(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) (*domain.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result domain.Lesson
	if err := transaction.WithContext(ctx).
		Where("id = ?", lessonID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *lessonRepo) ListBySection(ctx context.Context, tx *gorm.DB, sectionID string) ([]*domain.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Lesson
	if sectionID == "" {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("section_id = ?", sectionID).
		Order("order_index ASC, created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *lessonRepo) Update(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, patch map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(patch) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Model(&domain.Lesson{}).
		Where("id = ?", lessonID).
		Updates(patch).Error; err != nil {
		return err
	}
	return nil
}

func (r *lessonRepo) UpdateOrderIndex(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, orderIndex int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Model(&domain.Lesson{}).
		Where("id = ?", lessonID).
		Update("order_index", orderIndex).Error; err != nil {
		return err
	}
	return nil
}

func (r *lessonRepo) Delete(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("id = ?", lessonID).
		Delete(&domain.Lesson{}).Error; err != nil {
		return err
	}
	return nil
}
