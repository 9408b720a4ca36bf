package handlers

import (
	"net/http"
	"strings"

	"github.com/mestizo/crm-service/internal/httpx"
	"github.com/mestizo/crm-service/internal/models"
	"github.com/mestizo/crm-service/internal/services"
	"github.com/mestizo/crm-service/internal/store"
	"github.com/mestizo/crm-service/internal/validation"
)

type LeadHandler struct {
	Store *store.Store
	Svc   *services.LeadService
}

func NewLeadHandler(s *store.Store, svc *services.LeadService) *LeadHandler {
	return &LeadHandler{Store: s, Svc: svc}
}

// List: GET /leads?q=&status=&source=&customer_id=
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	f := store.LeadFilter{
		Search:     strings.TrimSpace(r.URL.Query().Get("q")),
		Status:     models.LeadStatus(r.URL.Query().Get("status")),
		Source:     models.LeadSource(r.URL.Query().Get("source")),
		CustomerID: uintParam(r, "customer_id"),
	}
	v := validation.Violations{}
	if f.Status != "" && !f.Status.Valid() {
		v["status"] = "unknown_status"
	}
	if f.Source != "" && !f.Source.Valid() {
		v["source"] = "unknown_source"
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	leads, total, err := h.Store.ListLeads(r.Context(), f, pageRequest(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	page, size := pageOf(r)
	httpx.JSON(w, http.StatusOK, httpx.NewPage(r, total, page, size, leads))
}

type leadReq struct {
	Name   string            `json:"name"`
	Phone  string            `json:"phone"`
	Email  string            `json:"email"`
	Source models.LeadSource `json:"source"`
	Status models.LeadStatus `json:"status"`
	Notes  string            `json:"notes"`
}

// Create: POST /leads
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req leadReq
	if !decodeJSON(w, r, &req) {
		return
	}
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	if req.Source == "" {
		req.Source = models.SourceOther
	}
	if !req.Source.Valid() {
		v["source"] = "unknown_source"
	}
	if req.Status == "" {
		req.Status = models.LeadNew
	}
	if !req.Status.Valid() {
		v["status"] = "unknown_status"
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	l := models.Lead{Name: req.Name, Phone: req.Phone, Email: req.Email, Source: req.Source, Status: req.Status, Notes: req.Notes}
	if err := h.Store.CreateLead(r.Context(), &l); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, l)
}

// Update: POST /leads/update?id=
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var req leadReq
	if !decodeJSON(w, r, &req) {
		return
	}
	current, err := h.Store.GetLead(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	updated := *current
	updated.Name = req.Name
	updated.Phone = req.Phone
	updated.Email = req.Email
	updated.Notes = req.Notes
	if req.Source != "" {
		updated.Source = req.Source
	}
	if req.Status != "" {
		updated.Status = req.Status
	}
	out, err := h.Svc.Update(r.Context(), &updated)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

// Convert: POST /leads/convert?id=. Creates a customer from the lead and
// fixes the weak reference.
func (h *LeadHandler) Convert(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	lead, customer, err := h.Svc.Convert(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"lead": lead, "customer": customer})
}
