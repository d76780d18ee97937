package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification is a per-user notification record. ReplyData, when set,
// carries the structured consultation-reply payload the client renders as a
// rich reply view.
type Notification struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title   string    `gorm:"column:title;not null" json:"title"`
	Content string    `gorm:"column:content;type:text" json:"content"`

	ReplyData datatypes.JSON `gorm:"column:reply_data;type:jsonb" json:"reply_data,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Notification) TableName() string { return "notification" }

// ConsultationReplyData is the structured payload attached to a reply
// notification.
type ConsultationReplyData struct {
	Type      string `json:"type"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Responder string `json:"responder"`
	Subject   string `json:"subject"`
}

const NotificationTypeConsultationReply = "consultation_reply"
