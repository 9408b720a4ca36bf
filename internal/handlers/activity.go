package handlers

import (
	"net/http"
	"time"

	"github.com/mestizo/crm-service/internal/httpx"
	"github.com/mestizo/crm-service/internal/models"
	"github.com/mestizo/crm-service/internal/store"
)

type ActivityHandler struct {
	Store *store.Store
}

func NewActivityHandler(s *store.Store) *ActivityHandler {
	return &ActivityHandler{Store: s}
}

// List: GET /activities?type=&customer_id=&opportunity_id=&done=
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	f := store.ActivityFilter{
		Type:          models.ActivityType(r.URL.Query().Get("type")),
		CustomerID:    uintParam(r, "customer_id"),
		OpportunityID: uintParam(r, "opportunity_id"),
	}
	if f.Type != "" && !f.Type.Valid() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"type": "unknown_type"})
		return
	}
	switch r.URL.Query().Get("done") {
	case "true":
		done := true
		f.Done = &done
	case "false":
		done := false
		f.Done = &done
	}
	activities, total, err := h.Store.ListActivities(r.Context(), f, pageRequest(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	page, size := pageOf(r)
	httpx.JSON(w, http.StatusOK, httpx.NewPage(r, total, page, size, activities))
}

// Create: POST /activities
func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type          models.ActivityType `json:"type"`
		Notes         string              `json:"notes"`
		DueAt         *time.Time          `json:"due_at"`
		CustomerID    *uint               `json:"customer_id"`
		OpportunityID *uint               `json:"opportunity_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Type == "" {
		req.Type = models.ActivityTask
	}
	if !req.Type.Valid() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"type": "unknown_type"})
		return
	}
	if req.CustomerID != nil {
		if ok, err := h.Store.CustomerExists(r.Context(), *req.CustomerID); err != nil {
			writeDomainError(w, err)
			return
		} else if !ok {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"customer_id": "unknown_customer"})
			return
		}
	}
	if req.OpportunityID != nil {
		if _, err := h.Store.GetOpportunity(r.Context(), *req.OpportunityID); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"opportunity_id": "unknown_opportunity"})
			return
		}
	}
	a := models.Activity{
		Type:          req.Type,
		Notes:         req.Notes,
		DueAt:         req.DueAt,
		CustomerID:    req.CustomerID,
		OpportunityID: req.OpportunityID,
	}
	if err := h.Store.CreateActivity(r.Context(), &a); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, a)
}

// Done: POST /activities/done?id=. Sets done_at once; already-done is a
// no-op success.
func (h *ActivityHandler) Done(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	a, err := h.Store.MarkActivityDone(r.Context(), id, time.Now().UTC())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, a)
}
