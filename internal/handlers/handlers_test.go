package handlers

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/invoicegen/internal/models"
	"github.com/diewo77/invoicegen/internal/services"
	"github.com/diewo77/invoicegen/internal/storage"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Document{}, &models.Invoice{}, &models.LineItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Name: "Test User", Email: email, Password: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func invoiceStack(t *testing.T, db *gorm.DB) *InvoiceHandler {
	t.Helper()
	svc, err := services.NewInvoiceService(db)
	if err != nil {
		t.Fatalf("invoice service: %v", err)
	}
	store, err := storage.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return NewInvoiceHandler(svc, services.NewDocumentService(db, store, svc))
}
