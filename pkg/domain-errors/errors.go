// Package domainerrors defines the coded error vocabulary shared by services
// and transport. Services return these; the HTTP layer maps codes to status
// codes without inspecting messages.
package domainerrors

import "errors"

type Code string

const (
	// CodeUnauthorized covers missing or invalid authentication.
	CodeUnauthorized Code = "unauthorized"
	// CodeForbidden covers an authenticated principal with the wrong role.
	CodeForbidden Code = "forbidden"
	// CodeValidation covers one or more field-level payload violations.
	CodeValidation Code = "validation_failed"
	// CodeNoFields marks an update payload that validated to an empty patch.
	CodeNoFields Code = "no_fields"
	// CodeInvalidTransition marks a status change the state machine rejects.
	CodeInvalidTransition Code = "invalid_transition"
	// CodeBadRequest covers malformed request bodies.
	CodeBadRequest Code = "bad_request"
	// CodeNotFound covers absent records and records owned by someone else;
	// the two are deliberately indistinguishable to callers.
	CodeNotFound Code = "not_found"
	// CodeConflict marks an operation the record's current state forbids,
	// such as deleting an in-transit shipment.
	CodeConflict Code = "conflict"
	// CodeInternal covers unexpected collaborator failures. Internal detail
	// never crosses the boundary with this code.
	CodeInternal Code = "internal"
)

// Error is a domain error with a machine-readable code and, for validation
// failures, the full list of violated rules.
type Error struct {
	Code    Code
	Message string
	Details []string
}

func (e *Error) Error() string {
	return e.Message
}

// New builds a domain error from a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NewWithDetails builds a domain error carrying per-field detail messages.
func NewWithDetails(code Code, message string, details []string) *Error {
	return &Error{Code: code, Message: message, Details: details}
}

// Is reports whether err is a domain error with the given code.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// that did not originate in the domain layer.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// DetailsOf returns the detail list for err, if any.
func DetailsOf(err error) []string {
	var de *Error
	if errors.As(err, &de) {
		return de.Details
	}
	return nil
}

// ToHTTPStatus maps a domain code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeUnauthorized:
		return 401
	case CodeForbidden:
		return 403
	case CodeValidation, CodeNoFields, CodeInvalidTransition, CodeBadRequest, CodeConflict:
		return 400
	case CodeNotFound:
		return 404
	default:
		return 500
	}
}
