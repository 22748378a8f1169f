// internal/app/system/respond/respond.go
package respond

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable kind, a human-readable message and, for
// internal failures, a reference that matches the server log entry.
type ErrorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Ref     string `json:"ref,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes an ErrorBody.
func Error(w http.ResponseWriter, status int, kind, msg, ref string) {
	JSON(w, status, ErrorBody{Error: ErrorDetail{Kind: kind, Message: msg, Ref: ref}})
}

// DecodeJSON decodes the request body into dst. Unknown fields are ignored
// so clients can send back a document they fetched; dst only carries the
// fields a caller may set.
func DecodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
