package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/noorstudy/noorstudy-backend/internal/domain"
	"github.com/noorstudy/noorstudy-backend/internal/platform/logger"
)

type ExamLinkRepo interface {
	Create(ctx context.Context, tx *gorm.DB, link *domain.ExamLink) (*domain.ExamLink, error)
	ListBySubject(ctx context.Context, tx *gorm.DB, subject string) ([]*domain.ExamLink, error)
	Delete(ctx context.Context, tx *gorm.DB, linkID uuid.UUID) error
}

type examLinkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExamLinkRepo(db *gorm.DB, baseLog *logger.Logger) ExamLinkRepo {
	return &examLinkRepo{db: db, log: baseLog.With("repo", "ExamLinkRepo")}
}

func (r *examLinkRepo) Create(ctx context.Context, tx *gorm.DB, link *domain.ExamLink) (*domain.ExamLink, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

func (r *examLinkRepo) ListBySubject(ctx context.Context, tx *gorm.DB, subject string) ([]*domain.ExamLink, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.ExamLink
	if subject == "" {
		if err := transaction.WithContext(ctx).
			Order("created_at DESC").
			Find(&results).Error; err != nil {
			return nil, err
		}
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("subject = ?", subject).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *examLinkRepo) Delete(ctx context.Context, tx *gorm.DB, linkID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("id = ?", linkID).
		Delete(&domain.ExamLink{}).Error; err != nil {
		return err
	}
	return nil
}
