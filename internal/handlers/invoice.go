package handlers

import (
	"net/http"

	"github.com/diewo77/invoicegen/auth"
	"github.com/diewo77/invoicegen/httpx"
	"github.com/diewo77/invoicegen/internal/services"
)

type InvoiceHandler struct {
	Svc  *services.InvoiceService
	Docs *services.DocumentService
}

func NewInvoiceHandler(svc *services.InvoiceService, docs *services.DocumentService) *InvoiceHandler {
	return &InvoiceHandler{Svc: svc, Docs: docs}
}

// Create: POST /invoices with caller-supplied line-item snapshots.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []services.LineItemInput `json:"items"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	inv, err := h.Svc.Create(uid, req.Items)
	if err != nil {
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

// List: GET /invoices, newest first. Anonymous callers get an empty list.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	invoices, err := h.Svc.List(uid)
	if err != nil {
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": invoices, "total": len(invoices)})
}

// Get: GET /invoices/get?id=...
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	inv, err := h.Svc.Get(uid, id)
	if err != nil {
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// Generate: POST /invoices/generate?id=... renders and stores the PDF.
// Repeat calls return the already-attached document.
func (h *InvoiceHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	doc, err := h.Docs.Generate(uid, id)
	if err != nil {
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

// PDF: GET /invoices/pdf?id=... streams the stored artifact.
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	doc, data, err := h.Docs.Open(uid, id)
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", doc.MimeType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
