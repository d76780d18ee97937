package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lesson is the persisted unit of authored content. Content holds the
// JSON-serialized document; readers must accept the legacy bare-array shape,
// writers always store the canonical object form.
type Lesson struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SectionID string    `gorm:"column:section_id;not null;index" json:"section_id"`
	Title     string    `gorm:"column:title;not null" json:"title"`
	Subtitle  string    `gorm:"column:subtitle" json:"subtitle"`

	Content datatypes.JSON `gorm:"column:content;type:jsonb" json:"content"`

	// Subject is the display name, denormalized for listing screens.
	Subject         string `gorm:"column:subject" json:"subject"`
	Color           string `gorm:"column:color;default:'black'" json:"color"`
	OrderIndex      int    `gorm:"column:order_index;not null;default:0;index" json:"order_index"`
	DurationMinutes int    `gorm:"column:duration_minutes" json:"duration_minutes"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Lesson) TableName() string { return "lesson" }
