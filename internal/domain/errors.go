package domain

import "fmt"

// ErrorCode classifies a domain failure for transport mapping and retry policy.
type ErrorCode string

const (
	ErrCodeValidation          ErrorCode = "VALIDATION"
	ErrCodeInvalidTransition   ErrorCode = "INVALID_TRANSITION"
	ErrCodeReferentialConflict ErrorCode = "REFERENTIAL_CONFLICT"
	ErrCodeNotFound            ErrorCode = "NOT_FOUND"
	ErrCodeStoreUnavailable    ErrorCode = "STORE_UNAVAILABLE"
)

// Error is the domain-level error. Fields carries field->reason detail for
// validation failures.
type Error struct {
	Code    ErrorCode
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches any *Error with the same code, so callers can test against the
// sentinels below with errors.Is regardless of message detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e != nil && e.Code == t.Code
}

// Sentinels for errors.Is checks.
var (
	ErrValidation          = &Error{Code: ErrCodeValidation, Message: "validation_failed"}
	ErrInvalidTransition   = &Error{Code: ErrCodeInvalidTransition, Message: "invalid_transition"}
	ErrReferentialConflict = &Error{Code: ErrCodeReferentialConflict, Message: "referential_conflict"}
	ErrNotFound            = &Error{Code: ErrCodeNotFound, Message: "not_found"}
	ErrStoreUnavailable    = &Error{Code: ErrCodeStoreUnavailable, Message: "store_unavailable"}
)

// Validation builds a field-detailed validation error.
func Validation(fields map[string]string) *Error {
	return &Error{Code: ErrCodeValidation, Message: "validation_failed", Fields: fields}
}

// ValidationField is the single-field convenience form.
func ValidationField(field, reason string) *Error {
	return Validation(map[string]string{field: reason})
}

func InvalidTransition(message string) *Error {
	return &Error{Code: ErrCodeInvalidTransition, Message: message}
}

func ReferentialConflict(message string) *Error {
	return &Error{Code: ErrCodeReferentialConflict, Message: message}
}

// NotFound names the entity that was looked up.
func NotFound(entity string) *Error {
	return &Error{Code: ErrCodeNotFound, Message: entity + "_not_found"}
}

// StoreUnavailable wraps a persistence failure; safe for the caller to retry
// with backoff, never retried here.
func StoreUnavailable(err error) *Error {
	return &Error{Code: ErrCodeStoreUnavailable, Message: "store_unavailable", Err: err}
}
