package models

import "time"

// Product is a per-user ledger row. Total is derived (quantity × rate) and
// rewritten on every mutation; invoices never reference these rows directly.
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	Quantity  float64   `gorm:"not null" json:"quantity"`
	Rate      float64   `gorm:"not null" json:"rate"`
	Total     float64   `gorm:"not null" json:"total"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
