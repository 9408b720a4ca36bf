package handlers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mestizo/crm-service/internal/httpx"
	"github.com/mestizo/crm-service/internal/models"
	"github.com/mestizo/crm-service/internal/store"
	"github.com/mestizo/crm-service/internal/validation"
)

type CatalogHandler struct {
	Store *store.Store
}

func NewCatalogHandler(s *store.Store) *CatalogHandler {
	return &CatalogHandler{Store: s}
}

// List: GET /catalog?q=&type=&category=&active=
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	f := store.CatalogFilter{
		Search:   strings.TrimSpace(r.URL.Query().Get("q")),
		Type:     models.QuoteItemType(r.URL.Query().Get("type")),
		Category: r.URL.Query().Get("category"),
	}
	if f.Type != "" && !f.Type.Valid() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"type": "unknown_type"})
		return
	}
	switch r.URL.Query().Get("active") {
	case "true":
		active := true
		f.Active = &active
	case "false":
		active := false
		f.Active = &active
	}
	items, total, err := h.Store.ListCatalogItems(r.Context(), f, pageRequest(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	page, size := pageOf(r)
	httpx.JSON(w, http.StatusOK, httpx.NewPage(r, total, page, size, items))
}

// Create: POST /catalog
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type        models.QuoteItemType `json:"type"`
		Name        string               `json:"name"`
		Description string               `json:"description"`
		Category    string               `json:"category"`
		PriceRef    decimal.Decimal      `json:"price_ref"`
		Active      *bool                `json:"active"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	if req.Type == "" {
		req.Type = models.ItemProduct
	}
	if !req.Type.Valid() {
		v["type"] = "unknown_type"
	}
	validation.NonNegativeDecimal("price_ref", req.PriceRef, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	it := models.CatalogItem{
		Type:        req.Type,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		PriceRef:    req.PriceRef,
		Active:      active,
	}
	if err := h.Store.CreateCatalogItem(r.Context(), &it); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, it)
}
