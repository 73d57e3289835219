package apperr

import (
	"errors"   // Error unwrapping
	"net/http" // HTTP status codes
)

// Kind classifies an application error
type Kind string

// Error kinds understood by the boundary translator
const (
	KindValidation       Kind = "validation"        // Malformed input
	KindAuthentication   Kind = "authentication"    // Missing or invalid session
	KindAuthorization    Kind = "authorization"     // Ownership or role mismatch
	KindNotFound         Kind = "not_found"         // Missing entity
	KindConflict         Kind = "conflict"          // Duplicate or state conflict
	KindQuantityExceeded Kind = "quantity_exceeded" // Stock violation
	KindDataIntegrity    Kind = "data_integrity"    // Invariant violated unexpectedly, a bug not a user error
	KindInternal         Kind = "internal"          // Anything unclassified
)

// Error is the single error type handlers and services exchange.
// The boundary translator maps it to a JSON envelope and HTTP status.
type Error struct {
	Kind    Kind   // Error classification
	Status  int    // HTTP status to respond with
	Message string // User-facing message
	Err     error  // Underlying cause, surfaced only outside production
}

// Error returns the user-facing message
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is/As
func (e *Error) Unwrap() error {
	return e.Err
}

// Validation builds a 400 malformed-input error
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg}
}

// Authentication builds a 401 missing/invalid-session error
func Authentication(msg string) *Error {
	return &Error{Kind: KindAuthentication, Status: http.StatusUnauthorized, Message: msg}
}

// Authorization builds a 403 ownership/role-mismatch error
func Authorization(msg string) *Error {
	return &Error{Kind: KindAuthorization, Status: http.StatusForbidden, Message: msg}
}

// NotFound builds a 404 missing-entity error
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: msg}
}

// Conflict builds a 409 duplicate/state-conflict error
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusConflict, Message: msg}
}

// QuantityExceeded builds a 400 stock-violation error
func QuantityExceeded(msg string) *Error {
	return &Error{Kind: KindQuantityExceeded, Status: http.StatusBadRequest, Message: msg}
}

// DataIntegrity flags a row state no valid operation sequence can produce.
func DataIntegrity(msg string) *Error {
	return &Error{Kind: KindDataIntegrity, Status: http.StatusInternalServerError, Message: msg}
}

// DataIntegrityMissing flags an integrity violation where an expected row is
// absent. Callers see a 404 like the surrounding missing-row cases do.
func DataIntegrityMissing(msg string) *Error {
	return &Error{Kind: KindDataIntegrity, Status: http.StatusNotFound, Message: msg}
}

// Internal wraps an unexpected failure as a 500
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: "Internal Server Error", Err: err}
}

// From coerces any error into an *Error, wrapping unknown ones as internal
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}

// IsKind reports whether err is an *Error of the given kind
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
