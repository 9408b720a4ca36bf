package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mestizo/crm-service/internal/auth"
	"github.com/mestizo/crm-service/internal/handlers"
	"github.com/mestizo/crm-service/internal/httpx"
	"github.com/mestizo/crm-service/internal/logging"
	"github.com/mestizo/crm-service/internal/services"
	"github.com/mestizo/crm-service/internal/store"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	st := store.New(db)

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		// Lightweight DB check (SELECT 1)
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSONError(w, http.StatusServiceUnavailable, "degraded", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	protect := func(h http.HandlerFunc) http.Handler {
		return auth.Middleware(auth.RequireAuth(h))
	}
	collection := func(list, create http.HandlerFunc) http.Handler {
		return protect(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				list(w, r)
			case http.MethodPost:
				create(w, r)
			default:
				handlers.MethodNotAllowed(w, "GET,POST")
			}
		})
	}
	postOnly := func(h http.HandlerFunc) http.Handler {
		return protect(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				handlers.MethodNotAllowed(w, "POST")
				return
			}
			h(w, r)
		})
	}

	// Customers, contacts, addresses
	ch := handlers.NewCustomerHandler(st)
	mux.Handle("/customers", collection(ch.List, ch.Create))
	mux.Handle("/customers/get", protect(ch.Get))
	mux.Handle("/customers/update", postOnly(ch.Update))
	mux.Handle("/customers/delete", postOnly(ch.Delete))

	cth := handlers.NewContactHandler(st)
	mux.Handle("/contacts", collection(cth.ListContacts, cth.CreateContact))
	mux.Handle("/contacts/get", protect(cth.GetContact))
	mux.Handle("/contacts/delete", postOnly(cth.DeleteContact))
	mux.Handle("/addresses", collection(cth.ListAddresses, cth.CreateAddress))
	mux.Handle("/addresses/delete", postOnly(cth.DeleteAddress))

	// Leads
	ls := services.NewLeadService(st)
	lh := handlers.NewLeadHandler(st, ls)
	mux.Handle("/leads", collection(lh.List, lh.Create))
	mux.Handle("/leads/update", postOnly(lh.Update))
	mux.Handle("/leads/convert", postOnly(lh.Convert))

	// Opportunities (pipeline)
	ps := services.NewPipelineService(st)
	oh := handlers.NewOpportunityHandler(st, ps)
	mux.Handle("/opportunities", collection(oh.List, oh.Create))
	mux.Handle("/opportunities/transition", postOnly(oh.Transition))

	// Activities
	ah := handlers.NewActivityHandler(st)
	mux.Handle("/activities", collection(ah.List, ah.Create))
	mux.Handle("/activities/done", postOnly(ah.Done))

	// Quotes
	qs := services.NewQuoteService(st)
	qh := handlers.NewQuoteHandler(st, qs)
	mux.Handle("/quotes", collection(qh.List, qh.Create))
	mux.Handle("/quotes/get", protect(qh.Get))
	mux.Handle("/quotes/delete", postOnly(qh.Delete))
	mux.Handle("/quotes/items", postOnly(qh.AddItem))
	mux.Handle("/quotes/items/delete", postOnly(qh.RemoveItem))
	mux.Handle("/quotes/status", postOnly(qh.SetStatus))

	// Projects
	ph := handlers.NewProjectHandler(st)
	mux.Handle("/projects", collection(ph.List, ph.Create))
	mux.Handle("/projects/get", protect(ph.Get))
	mux.Handle("/projects/delete", postOnly(ph.Delete))
	mux.Handle("/projects/status", postOnly(ph.SetStatus))
	mux.Handle("/projects/media", postOnly(ph.AddMedia))
	mux.Handle("/projects/media/delete", postOnly(ph.DeleteMedia))

	// Catalog
	kh := handlers.NewCatalogHandler(st)
	mux.Handle("/catalog", collection(kh.List, kh.Create))

	// Import
	is := services.NewImportService(st)
	ih := handlers.NewImportHandler(is)
	mux.Handle("/import/customers", postOnly(ih.Customers))
	mux.Handle("/import/leads", postOnly(ih.Leads))

	// Dashboard
	ds := services.NewDashboardService(st)
	dh := handlers.NewDashboardHandler(ds)
	mux.Handle("/dashboard/stats", protect(dh.Stats))

	return withRecover(withRequestLog(log, mux))
}

func withRequestLog(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()
		r = r.WithContext(logging.ContextWithRequestID(r.Context(), reqID))
		next.ServeHTTP(w, r)
		if log != nil {
			logging.WithRequestID(r.Context(), log).Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("duration", time.Since(start)),
			)
		}
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
