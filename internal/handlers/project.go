package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/mestizo/crm-service/internal/httpx"
	"github.com/mestizo/crm-service/internal/models"
	"github.com/mestizo/crm-service/internal/store"
	"github.com/mestizo/crm-service/internal/validation"
)

type ProjectHandler struct {
	Store *store.Store
}

func NewProjectHandler(s *store.Store) *ProjectHandler {
	return &ProjectHandler{Store: s}
}

// List: GET /projects?q=&status=&customer_id=
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	f := store.ProjectFilter{
		Search:     strings.TrimSpace(r.URL.Query().Get("q")),
		Status:     models.ProjectStatus(r.URL.Query().Get("status")),
		CustomerID: uintParam(r, "customer_id"),
	}
	if f.Status != "" && !f.Status.Valid() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"status": "unknown_status"})
		return
	}
	projects, total, err := h.Store.ListProjects(r.Context(), f, pageRequest(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	page, size := pageOf(r)
	httpx.JSON(w, http.StatusOK, httpx.NewPage(r, total, page, size, projects))
}

// Create: POST /projects. A quote reference is fixed at creation and must
// point at an accepted quote.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID  uint                 `json:"customer_id"`
		QuoteID     *uint                `json:"quote_id"`
		Title       string               `json:"title"`
		Status      models.ProjectStatus `json:"status"`
		StartDate   *time.Time           `json:"start_date"`
		EndDate     *time.Time           `json:"end_date"`
		Description string               `json:"description"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	v := validation.Violations{}
	validation.Required("title", req.Title, v)
	if req.CustomerID == 0 {
		v["customer_id"] = "required"
	}
	if req.Status == "" {
		req.Status = models.ProjectPlanning
	}
	if !req.Status.Valid() {
		v["status"] = "unknown_status"
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
	if req.QuoteID != nil {
		quote, err := h.Store.GetQuote(r.Context(), *req.QuoteID)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"quote_id": "unknown_quote"})
			return
		}
		if quote.Status != models.QuoteAccepted {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"quote_id": "quote_not_accepted"})
			return
		}
	}
	p := models.Project{
		CustomerID:  req.CustomerID,
		QuoteID:     req.QuoteID,
		Title:       req.Title,
		Status:      req.Status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
	}
	if err := h.Store.CreateProject(r.Context(), &p); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

// Get: GET /projects/get?id= (media embedded, grouped by type)
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	p, err := h.Store.GetProject(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// SetStatus: POST /projects/status?id= {status}. No ordering among project
// statuses, any valid target is accepted.
func (h *ProjectHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var req struct {
		Status models.ProjectStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if !req.Status.Valid() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"status": "unknown_status"})
		return
	}
	if err := h.Store.SetProjectStatus(r.Context(), id, req.Status); err != nil {
		writeDomainError(w, err)
		return
	}
	p, err := h.Store.GetProject(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// AddMedia: POST /projects/media {project_id, media_type, url, caption}
func (h *ProjectHandler) AddMedia(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectID uint             `json:"project_id"`
		MediaType models.MediaType `json:"media_type"`
		URL       string           `json:"url"`
		Caption   string           `json:"caption"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	v := validation.Violations{}
	validation.Required("url", req.URL, v)
	if req.ProjectID == 0 {
		v["project_id"] = "required"
	}
	if req.MediaType == "" {
		req.MediaType = models.MediaProgress
	}
	if !req.MediaType.Valid() {
		v["media_type"] = "unknown_media_type"
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if _, err := h.Store.GetProject(r.Context(), req.ProjectID); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"project_id": "unknown_project"})
		return
	}
	m := models.ProjectMedia{ProjectID: req.ProjectID, MediaType: req.MediaType, URL: req.URL, Caption: req.Caption}
	if err := h.Store.CreateProjectMedia(r.Context(), &m); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, m)
}

// DeleteMedia: POST /projects/media/delete?id=
func (h *ProjectHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Store.DeleteProjectMedia(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Delete: POST /projects/delete?id=. Cascades to media.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Store.DeleteProject(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
