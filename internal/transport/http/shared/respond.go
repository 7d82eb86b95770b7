// Package shared centralizes JSON envelopes so every handler speaks the same
// wire format.
package shared

import (
	"encoding/json"
	"net/http"

	dErrors "freightdesk/pkg/domain-errors"
)

// ErrorResponse is the JSON error envelope. Details is present only for
// validation failures, where every violated rule is listed.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// WriteJSON writes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the HTTP envelope. Non-domain
// errors surface as a generic internal failure; no collaborator detail
// crosses this boundary.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	message := "internal server error"
	if code != dErrors.CodeInternal {
		message = err.Error()
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), ErrorResponse{
		Error:   string(code),
		Message: message,
		Details: dErrors.DetailsOf(err),
	})
}
