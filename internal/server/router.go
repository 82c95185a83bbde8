package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/invoicegen/auth"
	"github.com/diewo77/invoicegen/httpx"
	"github.com/diewo77/invoicegen/internal/handlers"
	"github.com/diewo77/invoicegen/internal/models"
	"github.com/diewo77/invoicegen/internal/services"
	"github.com/diewo77/invoicegen/internal/storage"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, store storage.BlobStore) (http.Handler, error) {
	mux := http.NewServeMux()

	// RequireAuth verifies the session's user still exists.
	auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Accounts
	accountSvc := services.NewAccountService(db)
	handlers.NewAuthHandler(accountSvc).Register(mux)

	// Product ledger. List deliberately skips RequireAuth: anonymous reads
	// answer with an empty collection.
	productSvc := services.NewProductService(db)
	ph := handlers.NewProductHandler(productSvc)
	mux.Handle("/products", auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ph.List(w, r)
		case http.MethodPost:
			ph.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})))
	mux.Handle("/products/update", auth.Middleware(auth.RequireAuth(http.HandlerFunc(ph.Update))))
	mux.Handle("/products/delete", auth.Middleware(auth.RequireAuth(http.HandlerFunc(ph.Delete))))

	// Invoice composer + document renderer
	invoiceSvc, err := services.NewInvoiceService(db)
	if err != nil {
		return nil, err
	}
	docSvc := services.NewDocumentService(db, store, invoiceSvc)
	ih := handlers.NewInvoiceHandler(invoiceSvc, docSvc)
	mux.Handle("/invoices", auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ih.List(w, r)
		case http.MethodPost:
			ih.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})))
	mux.Handle("/invoices/get", auth.Middleware(auth.RequireAuth(http.HandlerFunc(ih.Get))))
	mux.Handle("/invoices/generate", auth.Middleware(auth.RequireAuth(http.HandlerFunc(ih.Generate))))
	mux.Handle("/invoices/pdf", auth.Middleware(auth.RequireAuth(http.HandlerFunc(ih.PDF))))

	// Dashboard summary
	dh := handlers.NewDashboardHandler(db)
	mux.Handle("/dashboard", auth.Middleware(auth.RequireAuth(http.HandlerFunc(dh.Summary))))

	return withRecover(withLogging(mux)), nil
}

// statusRecorder captures the status code for the request log line.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic recovered", "panic", rec, "path", r.URL.Path)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
