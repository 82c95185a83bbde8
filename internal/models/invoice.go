package models

import "time"

// Invoice is immutable once written, except for the one-time document
// attachment after rendering. Line items are snapshots: editing or deleting
// the source product later must not change a persisted invoice.
type Invoice struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;index" json:"-"`
	Number     string     `gorm:"not null;uniqueIndex" json:"invoice_number"`
	Items      []LineItem `gorm:"foreignKey:InvoiceID" json:"items"`
	Subtotal   float64    `gorm:"not null" json:"subtotal"`
	Tax        float64    `gorm:"not null" json:"tax"`
	GrandTotal float64    `gorm:"not null" json:"grand_total"`
	DocumentID *uint      `json:"-"`
	Document   *Document  `gorm:"foreignKey:DocumentID" json:"document,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// LineItem is the frozen copy of a product taken at invoice creation.
type LineItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	InvoiceID uint    `gorm:"not null;index" json:"-"`
	Name      string  `gorm:"not null" json:"name"`
	Quantity  float64 `gorm:"not null" json:"quantity"`
	Rate      float64 `gorm:"not null" json:"rate"`
	Total     float64 `gorm:"not null" json:"total"`
}
