package services

import (
	"bytes"
	"errors"
	"testing"

	"github.com/diewo77/invoicegen/internal/storage"
)

func setupDocServices(t *testing.T) (*InvoiceService, *DocumentService, *ProductService) {
	t.Helper()
	db := setupTestDB(t)
	invoices, err := NewInvoiceService(db)
	if err != nil {
		t.Fatalf("invoice service: %v", err)
	}
	store, err := storage.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return invoices, NewDocumentService(db, store, invoices), NewProductService(db)
}

func TestGenerateAttachesDocumentOnce(t *testing.T) {
	invoices, docs, _ := setupDocServices(t)
	user := seedUser(t, invoices.DB, "doc@test")

	inv, err := invoices.Create(user.ID, []LineItemInput{{Name: "Widget", Quantity: 2, Rate: 50, Total: 100}})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	doc, err := docs.Generate(user.ID, inv.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if doc.Key == "" || doc.MimeType != "application/pdf" || doc.Size == 0 {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if doc.Name != "invoice-"+inv.Number+".pdf" {
		t.Fatalf("unexpected document name %s", doc.Name)
	}

	// Created → Rendered
	got, err := invoices.Get(user.ID, inv.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Document == nil || got.Document.Key != doc.Key {
		t.Fatalf("expected document reference attached, got %+v", got.Document)
	}

	// Repeat call is idempotent: same reference, no new blob.
	again, err := docs.Generate(user.ID, inv.ID)
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if again.Key != doc.Key {
		t.Fatalf("expected same storage key, got %s vs %s", again.Key, doc.Key)
	}
}

func TestGenerateOwnershipChecked(t *testing.T) {
	invoices, docs, _ := setupDocServices(t)
	owner := seedUser(t, invoices.DB, "dow@test")
	other := seedUser(t, invoices.DB, "dot@test")

	inv, err := invoices.Create(owner.ID, []LineItemInput{{Name: "W", Quantity: 1, Rate: 5, Total: 5}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := docs.Generate(other.ID, inv.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenRequiresRenderedDocument(t *testing.T) {
	invoices, docs, _ := setupDocServices(t)
	user := seedUser(t, invoices.DB, "open@test")

	inv, err := invoices.Create(user.ID, []LineItemInput{{Name: "W", Quantity: 1, Rate: 5, Total: 5}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, _, err := docs.Open(user.ID, inv.ID); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument before render, got %v", err)
	}

	doc, err := docs.Generate(user.ID, inv.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	gotDoc, data, err := docs.Open(user.ID, inv.ID)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if gotDoc.Key != doc.Key {
		t.Fatalf("key mismatch: %s vs %s", gotDoc.Key, doc.Key)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected PDF payload, got %q", data[:min(8, len(data))])
	}
}

// An invoice is a snapshot: editing or deleting the source product afterwards
// must not alter the persisted line items or totals.
func TestSnapshotIsolationFromProductEdits(t *testing.T) {
	invoices, _, products := setupDocServices(t)
	user := seedUser(t, invoices.DB, "snap@test")

	p, err := products.Add(user.ID, "Widget", 2, 50)
	if err != nil {
		t.Fatalf("add product: %v", err)
	}
	inv, err := invoices.Create(user.ID, []LineItemInput{
		{Name: p.Name, Quantity: p.Quantity, Rate: p.Rate, Total: p.Total},
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	if _, err := products.Update(user.ID, p.ID, "Widget", 10, 99); err != nil {
		t.Fatalf("update product: %v", err)
	}
	if err := products.Delete(user.ID, p.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	got, err := invoices.Get(user.ID, inv.ID)
	if err != nil {
		t.Fatalf("get invoice: %v", err)
	}
	if got.Subtotal != 100 || got.GrandTotal != 118 {
		t.Fatalf("invoice totals changed: %+v", got)
	}
	if len(got.Items) != 1 || got.Items[0].Rate != 50 || got.Items[0].Quantity != 2 {
		t.Fatalf("line item snapshot changed: %+v", got.Items)
	}
}
