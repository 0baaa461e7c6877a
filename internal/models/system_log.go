package models

import (
	"time"

	"fintrack/internal/uuid"

	"gorm.io/gorm"
)

// SystemLog records user mutations for the admin log view.
// Entries are append-only and never updated.
type SystemLog struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string    `gorm:"type:uuid;index" json:"user_id"`
	Action       string    `gorm:"not null" json:"action"`
	ResourceType string    `gorm:"not null" json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	IPAddress    string    `json:"ip_address"`
	Details      string    `json:"details,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (l *SystemLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New()
	}
	return nil
}
