package common

import (
	"encoding/json"
	"net/http"

	"github.com/Emmrex1/MusicApp/pkg/errors"
)

// Envelope carries the fields every JSON response body starts with.
// Endpoint response types embed it and add their typed payload.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// RespondJSON writes data as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError writes an error body with the given status.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{
		Success: false,
		Message: message,
	})
}

// RespondAppError maps an application error to its HTTP status and
// writes the error body. Unknown errors become a generic 500 so
// internal details never leak to clients.
func RespondAppError(w http.ResponseWriter, err error) {
	if appErr := errors.GetAppError(err); appErr != nil {
		RespondJSON(w, appErr.HTTPStatus, ErrorResponse{
			Success: false,
			Message: appErr.Message,
			Code:    string(appErr.Type),
		})
		return
	}
	RespondError(w, http.StatusInternalServerError, "internal server error")
}

// ParseJSONBody parses a JSON request body with a size limit.
func ParseJSONBody(r *http.Request, v interface{}, maxBytes int64) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	return decoder.Decode(v)
}
