package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/diewo77/invoicegen/internal/models"
	"github.com/diewo77/invoicegen/validation"
	"gorm.io/gorm"
)

// TaxRate is the fixed GST applied to every invoice subtotal.
const TaxRate = 0.18

// totalTolerance is the allowed drift between a submitted line total and
// quantity × rate before the item is rejected.
const totalTolerance = 0.005

// LineItemInput is the caller-supplied snapshot for one invoice line.
type LineItemInput struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Rate     float64 `json:"rate"`
	Total    float64 `json:"total"`
}

// InvoiceService composes and fetches invoices.
type InvoiceService struct {
	DB   *gorm.DB
	node *snowflake.Node
}

func NewInvoiceService(db *gorm.DB) (*InvoiceService, error) {
	// Single-node deployment; the node id only matters if several composer
	// instances share a database.
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, fmt.Errorf("init snowflake node: %w", err)
	}
	return &InvoiceService{DB: db, node: node}, nil
}

// NextNumber issues a time-ordered invoice number. Snowflake ids embed a
// per-millisecond sequence, so numbers stay pairwise distinct even under
// rapid successive calls.
func (s *InvoiceService) NextNumber() string {
	return "INV-" + s.node.Generate().String()
}

// Round2 rounds a money amount to 2 decimals, half away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ComputeTotals sums the line totals and applies the fixed tax.
func ComputeTotals(items []LineItemInput) (subtotal, tax, grand float64) {
	for _, it := range items {
		subtotal += it.Total
	}
	subtotal = Round2(subtotal)
	tax = Round2(subtotal * TaxRate)
	grand = Round2(subtotal + tax)
	return subtotal, tax, grand
}

func validateLineItems(items []LineItemInput) error {
	v := validation.Violations{}
	if len(items) == 0 {
		v["items"] = "required"
		return invalid(v)
	}
	for i, it := range items {
		field := func(name string) string { return "items[" + strconv.Itoa(i) + "]." + name }
		validation.Required(field("name"), it.Name, v)
		validation.PositiveFloat(field("quantity"), it.Quantity, v)
		validation.PositiveFloat(field("rate"), it.Rate, v)
		// Snapshots carry their own totals to preserve historical prices, but
		// they must still be internally consistent.
		if math.Abs(it.Total-it.Quantity*it.Rate) > totalTolerance {
			v[field("total")] = "inconsistent_total"
		}
	}
	if !v.Empty() {
		return invalid(v)
	}
	return nil
}

// Create persists a new invoice from the given snapshots and returns it with
// items loaded. The invoice starts without a document reference.
func (s *InvoiceService) Create(userID uint, items []LineItemInput) (models.Invoice, error) {
	if userID == 0 {
		return models.Invoice{}, ErrUnauthenticated
	}
	if err := validateLineItems(items); err != nil {
		return models.Invoice{}, err
	}
	subtotal, tax, grand := ComputeTotals(items)
	inv := models.Invoice{
		UserID:     userID,
		Number:     s.NextNumber(),
		Subtotal:   subtotal,
		Tax:        tax,
		GrandTotal: grand,
	}
	for _, it := range items {
		inv.Items = append(inv.Items, models.LineItem{
			Name:     strings.TrimSpace(it.Name),
			Quantity: it.Quantity,
			Rate:     it.Rate,
			Total:    it.Total,
		})
	}
	if err := s.DB.Create(&inv).Error; err != nil {
		return models.Invoice{}, err
	}
	return inv, nil
}

// Get fetches one invoice with items and document metadata. Foreign-owned
// invoices look absent.
func (s *InvoiceService) Get(userID, id uint) (models.Invoice, error) {
	if userID == 0 {
		return models.Invoice{}, ErrUnauthenticated
	}
	var inv models.Invoice
	err := s.DB.Where("id = ? AND user_id = ?", id, userID).
		Preload("Items").Preload("Document").
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Invoice{}, ErrNotFound
		}
		return models.Invoice{}, err
	}
	return inv, nil
}

// List returns the caller's invoices newest first; empty for anonymous callers.
func (s *InvoiceService) List(userID uint) ([]models.Invoice, error) {
	invoices := []models.Invoice{}
	if userID == 0 {
		return invoices, nil
	}
	err := s.DB.Where("user_id = ?", userID).
		Preload("Items").Preload("Document").
		Order("id desc").Find(&invoices).Error
	return invoices, err
}
