// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/pmhub/internal/app/system/apierr"
	"github.com/dalemusser/pmhub/internal/app/system/respond"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StatusFor maps an error kind to its HTTP status.
func StatusFor(k apierr.Kind) int {
	switch k {
	case apierr.KindNotFound:
		return http.StatusNotFound
	case apierr.KindForbidden:
		return http.StatusForbidden
	case apierr.KindConflict:
		return http.StatusConflict
	case apierr.KindValidation:
		return http.StatusBadRequest
	case apierr.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Write renders err as a JSON error body.
//
// Domain errors carry their own client-safe message. Anything else is a
// data access failure: it is logged with a fresh reference, and only the
// reference and a generic message reach the client.
func Write(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	kind := apierr.KindOf(err)
	if kind != apierr.KindDataAccess {
		msg := err.Error()
		if e, ok := asAPIErr(err); ok {
			msg = e.Message
		}
		respond.Error(w, StatusFor(kind), string(kind), msg, "")
		return
	}

	ref := uuid.NewString()
	log.Error("data access error",
		zap.String("ref", ref),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	respond.Error(w, http.StatusInternalServerError, string(kind),
		"An internal error occurred", ref)
}

// RenderUnauthorized writes a 401 for a request without a caller identity.
func RenderUnauthorized(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "Access token required"
	}
	respond.Error(w, http.StatusUnauthorized, string(apierr.KindUnauthorized), msg, "")
}

// RenderValidation writes a 400 with msg.
func RenderValidation(w http.ResponseWriter, msg string) {
	respond.Error(w, http.StatusBadRequest, string(apierr.KindValidation), msg, "")
}
