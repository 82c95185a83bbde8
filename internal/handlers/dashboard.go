package handlers

import (
	"net/http"

	"github.com/diewo77/invoicegen/auth"
	"github.com/diewo77/invoicegen/httpx"
	"github.com/diewo77/invoicegen/internal/models"
	"gorm.io/gorm"
)

// DashboardHandler serves the per-user summary counts.
type DashboardHandler struct {
	DB *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler { return &DashboardHandler{DB: db} }

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())

	var productCount, invoiceCount int64
	if err := h.DB.Model(&models.Product{}).Where("user_id = ?", uid).Count(&productCount).Error; err != nil {
		respondError(w, err)
		return
	}
	if err := h.DB.Model(&models.Invoice{}).Where("user_id = ?", uid).Count(&invoiceCount).Error; err != nil {
		respondError(w, err)
		return
	}
	var revenue float64
	row := h.DB.Model(&models.Invoice{}).Where("user_id = ?", uid).
		Select("COALESCE(SUM(grand_total), 0)").Row()
	if err := row.Scan(&revenue); err != nil {
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"products":    productCount,
		"invoices":    invoiceCount,
		"grand_total": revenue,
	})
}
