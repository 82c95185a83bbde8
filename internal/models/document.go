package models

import "time"

// Document records a rendered artifact in the blob store.
type Document struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Key       string    `gorm:"not null;uniqueIndex" json:"key"` // blob store reference
	Name      string    `gorm:"not null" json:"name"`            // download filename
	MimeType  string    `gorm:"not null" json:"mime_type"`
	Size      int64     `gorm:"not null" json:"size"`
	CreatedAt time.Time `json:"created_at"`
}
