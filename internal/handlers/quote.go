package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mestizo/crm-service/internal/httpx"
	"github.com/mestizo/crm-service/internal/models"
	"github.com/mestizo/crm-service/internal/services"
	"github.com/mestizo/crm-service/internal/store"
	"github.com/mestizo/crm-service/internal/validation"
)

type QuoteHandler struct {
	Store *store.Store
	Svc   *services.QuoteService
}

func NewQuoteHandler(s *store.Store, svc *services.QuoteService) *QuoteHandler {
	return &QuoteHandler{Store: s, Svc: svc}
}

// List: GET /quotes?q=&status=&customer_id=&opportunity_id=
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	f := store.QuoteFilter{
		Search:        strings.TrimSpace(r.URL.Query().Get("q")),
		Status:        models.QuoteStatus(r.URL.Query().Get("status")),
		CustomerID:    uintParam(r, "customer_id"),
		OpportunityID: uintParam(r, "opportunity_id"),
	}
	if f.Status != "" && !f.Status.Valid() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"status": "unknown_status"})
		return
	}
	quotes, total, err := h.Store.ListQuotes(r.Context(), f, pageRequest(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	page, size := pageOf(r)
	httpx.JSON(w, http.StatusOK, httpx.NewPage(r, total, page, size, quotes))
}

// Create: POST /quotes. A quote starts life as an empty DRAFT; items come in via
// /quotes/items so the total is always derived, never supplied.
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID    uint       `json:"customer_id"`
		OpportunityID *uint      `json:"opportunity_id"`
		ValidUntil    *time.Time `json:"valid_until"`
		Notes         string     `json:"notes"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	v := validation.Violations{}
	if req.CustomerID == 0 {
		v["customer_id"] = "required"
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if ok, err := h.Store.CustomerExists(r.Context(), req.CustomerID); err != nil {
		writeDomainError(w, err)
		return
	} else if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"customer_id": "unknown_customer"})
		return
	}
	if req.OpportunityID != nil {
		if _, err := h.Store.GetOpportunity(r.Context(), *req.OpportunityID); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"opportunity_id": "unknown_opportunity"})
			return
		}
	}
	q := models.Quote{
		CustomerID:    req.CustomerID,
		OpportunityID: req.OpportunityID,
		Status:        models.QuoteDraft,
		Total:         decimal.Zero,
		ValidUntil:    req.ValidUntil,
		Notes:         req.Notes,
	}
	if err := h.Store.CreateQuote(r.Context(), &q); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, q)
}

// Get: GET /quotes/get?id= (items embedded)
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	q, err := h.Store.GetQuote(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

// AddItem: POST /quotes/items {quote_id, ...}
func (h *QuoteHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		QuoteID       uint                 `json:"quote_id"`
		CatalogItemID uint                 `json:"catalog_item_id"`
		ItemType      models.QuoteItemType `json:"item_type"`
		Name          string               `json:"name"`
		Description   string               `json:"description"`
		Qty           decimal.Decimal      `json:"qty"`
		UnitPrice     *decimal.Decimal     `json:"unit_price"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.QuoteID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"quote_id": "required"})
		return
	}
	q, err := h.Svc.AddItem(r.Context(), req.QuoteID, services.QuoteItemInput{
		ItemType:      req.ItemType,
		Name:          req.Name,
		Description:   req.Description,
		Qty:           req.Qty,
		UnitPrice:     req.UnitPrice,
		CatalogItemID: req.CatalogItemID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, q)
}

// RemoveItem: POST /quotes/items/delete?id=
func (h *QuoteHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	q, err := h.Svc.RemoveItem(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

// SetStatus: POST /quotes/status?id= {status}
func (h *QuoteHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var req struct {
		Status models.QuoteStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	q, err := h.Svc.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

// Delete: POST /quotes/delete?id=. Cascades to items, refused when a
// project references the quote.
func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Store.DeleteQuote(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
