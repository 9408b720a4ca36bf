package handlers

import (
	"net/http"
	"strings"

	"github.com/mestizo/crm-service/internal/httpx"
	"github.com/mestizo/crm-service/internal/models"
	"github.com/mestizo/crm-service/internal/store"
	"github.com/mestizo/crm-service/internal/validation"
)

type CustomerHandler struct {
	Store *store.Store
}

func NewCustomerHandler(s *store.Store) *CustomerHandler {
	return &CustomerHandler{Store: s}
}

// List: GET /customers?q=&type=&page=&page_size=
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	f := store.CustomerFilter{
		Search: strings.TrimSpace(r.URL.Query().Get("q")),
		Type:   models.CustomerType(r.URL.Query().Get("type")),
	}
	if f.Type != "" && !f.Type.Valid() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"type": "unknown_type"})
		return
	}
	customers, total, err := h.Store.ListCustomers(r.Context(), f, pageRequest(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	page, size := pageOf(r)
	httpx.JSON(w, http.StatusOK, httpx.NewPage(r, total, page, size, customers))
}

type customerReq struct {
	Type  models.CustomerType `json:"type"`
	Name  string              `json:"name"`
	Phone string              `json:"phone"`
	Email string              `json:"email"`
	Notes string              `json:"notes"`
}

func (req *customerReq) validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	validation.MaxLen("name", req.Name, 200, v)
	if req.Type != "" && !req.Type.Valid() {
		v["type"] = "unknown_type"
	}
	return v
}

// Create: POST /customers
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req customerReq
	if !decodeJSON(w, r, &req) {
		return
	}
	if v := req.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if req.Type == "" {
		req.Type = models.CustomerIndividual
	}
	c := models.Customer{Type: req.Type, Name: req.Name, Phone: req.Phone, Email: req.Email, Notes: req.Notes}
	if err := h.Store.CreateCustomer(r.Context(), &c); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

// Get: GET /customers/get?id= (contacts and addresses embedded)
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	c, err := h.Store.GetCustomer(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// Update: POST /customers/update?id=
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var req customerReq
	if !decodeJSON(w, r, &req) {
		return
	}
	if v := req.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	c, err := h.Store.GetCustomer(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if req.Type != "" {
		c.Type = req.Type
	}
	c.Name = req.Name
	c.Phone = req.Phone
	c.Email = req.Email
	c.Notes = req.Notes
	c.Contacts = nil
	c.Addresses = nil
	if err := h.Store.UpdateCustomer(r.Context(), c); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// Delete: POST /customers/delete?id=. Cascades to contacts and addresses,
// refused while opportunities/quotes/projects still reference the customer.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Store.DeleteCustomer(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
