package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExamLink is a plain link to a past-exam resource for one subject.
type ExamLink struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Subject string    `gorm:"column:subject;not null;index" json:"subject"`
	Title   string    `gorm:"column:title;not null" json:"title"`
	URL     string    `gorm:"column:url;not null" json:"url"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ExamLink) TableName() string { return "exam_link" }
