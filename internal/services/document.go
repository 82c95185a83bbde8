package services

import (
	"fmt"

	"github.com/diewo77/invoicegen/internal/models"
	"github.com/diewo77/invoicegen/internal/pdf"
	"github.com/diewo77/invoicegen/internal/storage"
	"gorm.io/gorm"
)

// DocumentService renders invoices to PDF and keeps the artifacts in the
// blob store.
type DocumentService struct {
	DB       *gorm.DB
	Store    storage.BlobStore
	Invoices *InvoiceService
}

func NewDocumentService(db *gorm.DB, store storage.BlobStore, invoices *InvoiceService) *DocumentService {
	return &DocumentService{DB: db, Store: store, Invoices: invoices}
}

// Generate renders the invoice and attaches the stored document to it.
// Idempotent per invoice: a repeat call returns the existing document without
// re-rendering, so earlier blobs are never orphaned.
func (s *DocumentService) Generate(userID, invoiceID uint) (models.Document, error) {
	inv, err := s.Invoices.Get(userID, invoiceID)
	if err != nil {
		return models.Document{}, err
	}
	if inv.Document != nil {
		return *inv.Document, nil
	}

	data, err := pdf.Render(pdf.FromInvoice(inv))
	if err != nil {
		return models.Document{}, fmt.Errorf("render invoice %s: %w", inv.Number, err)
	}
	key, err := s.Store.Put(data)
	if err != nil {
		return models.Document{}, fmt.Errorf("store invoice %s: %w", inv.Number, err)
	}

	doc := models.Document{
		Key:      key,
		Name:     "invoice-" + inv.Number + ".pdf",
		MimeType: "application/pdf",
		Size:     int64(len(data)),
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&doc).Error; err != nil {
			return err
		}
		return tx.Model(&models.Invoice{}).Where("id = ?", inv.ID).
			Update("document_id", doc.ID).Error
	})
	if err != nil {
		return models.Document{}, err
	}
	return doc, nil
}

// Open returns the stored artifact for download, ownership-checked.
func (s *DocumentService) Open(userID, invoiceID uint) (models.Document, []byte, error) {
	inv, err := s.Invoices.Get(userID, invoiceID)
	if err != nil {
		return models.Document{}, nil, err
	}
	if inv.Document == nil {
		return models.Document{}, nil, ErrNoDocument
	}
	data, err := s.Store.Get(inv.Document.Key)
	if err != nil {
		return models.Document{}, nil, err
	}
	return *inv.Document, data, nil
}
