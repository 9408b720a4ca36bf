// Package handlers exposes the domain operations over JSON HTTP. Handlers
// parse and validate transport concerns; business rules live in services and
// the store.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mestizo/crm-service/internal/domain"
	"github.com/mestizo/crm-service/internal/httpx"
	"github.com/mestizo/crm-service/internal/store"
)

// idParam reads the id query parameter.
func idParam(r *http.Request) (uint, bool) {
	idStr := r.URL.Query().Get("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func uintParam(r *http.Request, name string) uint {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return uint(n)
		}
	}
	return 0
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return false
	}
	return true
}

func pageRequest(r *http.Request) store.PageRequest {
	p := store.PageRequest{}
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.Page = n
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.PageSize = n
		}
	}
	return p
}

func pageOf(r *http.Request) (page, size int) {
	return pageRequest(r).Normalized()
}

// writeDomainError maps the error taxonomy onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	var details any
	if len(de.Fields) > 0 {
		details = de.Fields
	}
	switch de.Code {
	case domain.ErrCodeValidation:
		httpx.JSONError(w, http.StatusBadRequest, de.Message, details)
	case domain.ErrCodeInvalidTransition:
		httpx.JSONError(w, http.StatusConflict, de.Message, details)
	case domain.ErrCodeReferentialConflict:
		httpx.JSONError(w, http.StatusConflict, de.Message, details)
	case domain.ErrCodeNotFound:
		httpx.JSONError(w, http.StatusNotFound, de.Message, details)
	case domain.ErrCodeStoreUnavailable:
		httpx.JSONError(w, http.StatusServiceUnavailable, de.Message, details)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}

// MethodNotAllowed writes a 405 with the Allow header set. The router calls it
// from its method-switch wrappers.
func MethodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
}
