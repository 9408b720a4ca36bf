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

type OpportunityHandler struct {
	Store    *store.Store
	Pipeline *services.PipelineService
}

func NewOpportunityHandler(s *store.Store, p *services.PipelineService) *OpportunityHandler {
	return &OpportunityHandler{Store: s, Pipeline: p}
}

// List: GET /opportunities?q=&stage=&customer_id=
func (h *OpportunityHandler) List(w http.ResponseWriter, r *http.Request) {
	f := store.OpportunityFilter{
		Search:     strings.TrimSpace(r.URL.Query().Get("q")),
		Stage:      models.OpportunityStage(r.URL.Query().Get("stage")),
		CustomerID: uintParam(r, "customer_id"),
	}
	if f.Stage != "" && !f.Stage.Valid() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"stage": "unknown_stage"})
		return
	}
	opps, total, err := h.Store.ListOpportunities(r.Context(), f, pageRequest(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	page, size := pageOf(r)
	httpx.JSON(w, http.StatusOK, httpx.NewPage(r, total, page, size, opps))
}

// Create: POST /opportunities
func (h *OpportunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID    uint                    `json:"customer_id"`
		Title         string                  `json:"title"`
		Stage         models.OpportunityStage `json:"stage"`
		ValueEstimate decimal.Decimal         `json:"value_estimate"`
		CloseDate     *time.Time              `json:"close_date"`
		Notes         string                  `json:"notes"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	v := validation.Violations{}
	validation.Required("title", req.Title, v)
	if req.CustomerID == 0 {
		v["customer_id"] = "required"
	}
	if req.Stage == "" {
		req.Stage = models.StageNew
	}
	if !req.Stage.Valid() {
		v["stage"] = "unknown_stage"
	}
	validation.NonNegativeDecimal("value_estimate", req.ValueEstimate, v)
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
	o := models.Opportunity{
		CustomerID:    req.CustomerID,
		Title:         req.Title,
		Stage:         req.Stage,
		ValueEstimate: req.ValueEstimate,
		CloseDate:     req.CloseDate,
		Notes:         req.Notes,
	}
	if err := h.Store.CreateOpportunity(r.Context(), &o); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, o)
}

// Transition: POST /opportunities/transition?id= {stage}
func (h *OpportunityHandler) Transition(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var req struct {
		Stage models.OpportunityStage `json:"stage"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	opp, err := h.Pipeline.Transition(r.Context(), id, req.Stage)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, opp)
}
