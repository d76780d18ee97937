package domain

import (
	"time"

	"github.com/google/uuid"
)

// ConsultationMessage is a student question. It is created externally in the
// pending state and transitions exactly once to replied; it never reverts.
type ConsultationMessage struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	UserName string    `gorm:"column:user_name" json:"user_name"`
	Content  string    `gorm:"column:content;type:text;not null" json:"content"`

	IsReplied bool    `gorm:"column:is_replied;not null;default:false;index" json:"is_replied"`
	Response  *string `gorm:"column:response;type:text" json:"response,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ConsultationMessage) TableName() string { return "consultation_message" }
