package handlers

import (
	"net/http"

	"github.com/mestizo/crm-service/internal/httpx"
	"github.com/mestizo/crm-service/internal/services"
)

type ImportHandler struct {
	Svc *services.ImportService
}

func NewImportHandler(svc *services.ImportService) *ImportHandler {
	return &ImportHandler{Svc: svc}
}

type importReq struct {
	Rows []map[string]string `json:"rows"`
}

// Customers: POST /import/customers {rows} -> {created, errors}
// A partial success is always the reported outcome; a bad row never aborts
// the batch.
func (h *ImportHandler) Customers(w http.ResponseWriter, r *http.Request) {
	var req importReq
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Rows) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"rows": "required"})
		return
	}
	result, err := h.Svc.ImportCustomers(r.Context(), req.Rows)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, result)
}

// Leads: POST /import/leads {rows} -> {created, errors}
func (h *ImportHandler) Leads(w http.ResponseWriter, r *http.Request) {
	var req importReq
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Rows) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"rows": "required"})
		return
	}
	result, err := h.Svc.ImportLeads(r.Context(), req.Rows)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, result)
}
