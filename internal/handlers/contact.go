package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/mestizo/crm-service/internal/httpx"
	"github.com/mestizo/crm-service/internal/models"
	"github.com/mestizo/crm-service/internal/store"
	"github.com/mestizo/crm-service/internal/validation"
)

// ContactHandler serves contacts and addresses; both are owned attribute
// records of a customer with no lifecycle of their own.
type ContactHandler struct {
	Store *store.Store
}

func NewContactHandler(s *store.Store) *ContactHandler {
	return &ContactHandler{Store: s}
}

// ListContacts: GET /contacts?customer_id=
func (h *ContactHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, total, err := h.Store.ListContacts(r.Context(), uintParam(r, "customer_id"), pageRequest(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	page, size := pageOf(r)
	httpx.JSON(w, http.StatusOK, httpx.NewPage(r, total, page, size, contacts))
}

// CreateContact: POST /contacts
func (h *ContactHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID uint   `json:"customer_id"`
		Name       string `json:"name"`
		Phone      string `json:"phone"`
		Email      string `json:"email"`
		RoleTitle  string `json:"role_title"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
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
	c := models.Contact{CustomerID: req.CustomerID, Name: req.Name, Phone: req.Phone, Email: req.Email, RoleTitle: req.RoleTitle}
	if err := h.Store.CreateContact(r.Context(), &c); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

// GetContact: GET /contacts/get?id=
func (h *ContactHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	c, err := h.Store.GetContact(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// DeleteContact: POST /contacts/delete?id=
func (h *ContactHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Store.DeleteContact(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListAddresses: GET /addresses?customer_id=
func (h *ContactHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	addresses, total, err := h.Store.ListAddresses(r.Context(), uintParam(r, "customer_id"), pageRequest(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	page, size := pageOf(r)
	httpx.JSON(w, http.StatusOK, httpx.NewPage(r, total, page, size, addresses))
}

// CreateAddress: POST /addresses
func (h *ContactHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID uint                `json:"customer_id"`
		Label      string              `json:"label"`
		City       string              `json:"city"`
		Zone       string              `json:"zone"`
		Details    string              `json:"details"`
		Lat        decimal.NullDecimal `json:"lat"`
		Lng        decimal.NullDecimal `json:"lng"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CustomerID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"customer_id": "required"})
		return
	}
	if ok, err := h.Store.CustomerExists(r.Context(), req.CustomerID); err != nil {
		writeDomainError(w, err)
		return
	} else if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"customer_id": "unknown_customer"})
		return
	}
	if req.Label == "" {
		req.Label = "Principal"
	}
	a := models.Address{
		CustomerID: req.CustomerID, Label: req.Label, City: req.City,
		Zone: req.Zone, Details: req.Details, Lat: req.Lat, Lng: req.Lng,
	}
	if err := h.Store.CreateAddress(r.Context(), &a); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, a)
}

// DeleteAddress: POST /addresses/delete?id=
func (h *ContactHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Store.DeleteAddress(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
