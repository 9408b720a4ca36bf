package handlers

import (
	"net/http"

	"github.com/mestizo/crm-service/internal/httpx"
	"github.com/mestizo/crm-service/internal/services"
)

type DashboardHandler struct {
	Svc *services.DashboardService
}

func NewDashboardHandler(svc *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Svc: svc}
}

// Stats: GET /dashboard/stats. Always computed from live state.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.Stats(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}
