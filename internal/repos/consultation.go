package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/noorstudy/noorstudy-backend/internal/domain"
	"github.com/noorstudy/noorstudy-backend/internal/pkg/apperr"
	"github.com/noorstudy/noorstudy-backend/internal/platform/logger"
)

type ConsultationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, msg *domain.ConsultationMessage) (*domain.ConsultationMessage, error)
	GetByID(ctx context.Context, tx *gorm.DB, messageID uuid.UUID) (*domain.ConsultationMessage, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*domain.ConsultationMessage, error)
	// MarkReplied is the primary reply operation: one conditional update that
	// sets is_replied and response only while the message is still pending.
	// Returns ErrAlreadyReplied when the guard does not match.
	MarkReplied(ctx context.Context, tx *gorm.DB, messageID uuid.UUID, response string) error
	// Update is the plain patch fallback used when MarkReplied is unavailable.
	Update(ctx context.Context, tx *gorm.DB, messageID uuid.UUID, patch map[string]any) error
}

type consultationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConsultationRepo(db *gorm.DB, baseLog *logger.Logger) ConsultationRepo {
	return &consultationRepo{db: db, log: baseLog.With("repo", "ConsultationRepo")}
}

func (r *consultationRepo) Create(ctx context.Context, tx *gorm.DB, msg *domain.ConsultationMessage) (*domain.ConsultationMessage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

func (r *consultationRepo) GetByID(ctx context.Context, tx *gorm.DB, messageID uuid.UUID) (*domain.ConsultationMessage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result domain.ConsultationMessage
	if err := transaction.WithContext(ctx).
		Where("id = ?", messageID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *consultationRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*domain.ConsultationMessage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.ConsultationMessage
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *consultationRepo) MarkReplied(ctx context.Context, tx *gorm.DB, messageID uuid.UUID, response string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&domain.ConsultationMessage{}).
		Where("id = ? AND is_replied = false", messageID).
		Updates(map[string]any{
			"is_replied": true,
			"response":   response,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrAlreadyReplied
	}
	return nil
}

func (r *consultationRepo) Update(ctx context.Context, tx *gorm.DB, messageID uuid.UUID, patch map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(patch) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Model(&domain.ConsultationMessage{}).
		Where("id = ?", messageID).
		Updates(patch).Error; err != nil {
		return err
	}
	return nil
}
