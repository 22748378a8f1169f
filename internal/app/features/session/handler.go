// internal/app/features/session/handler.go
package session

import (
	"net/http"

	"github.com/dalemusser/pmhub/internal/app/system/auditlog"
	"github.com/dalemusser/pmhub/internal/app/system/auth"
	"github.com/dalemusser/pmhub/internal/app/system/respond"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler exchanges a bearer token for a cookie session and clears it
// again. Login itself happens at the external identity provider.
type Handler struct {
	Log      *zap.Logger
	Auth     *auth.Manager
	AuditLog *auditlog.Logger
}

// NewHandler constructs a session Handler. auditLog may be nil.
func NewHandler(am *auth.Manager, auditLog *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		Auth:     am,
		AuditLog: auditLog,
	}
}

type sessionResponse struct {
	Message string            `json:"message"`
	User    *auth.SessionUser `json:"user,omitempty"`
}

// HandleStart handles POST /api/session. The caller must already be
// identified, normally by a bearer token.
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized", "Access token required", "")
		return
	}

	if err := h.Auth.StartSession(w, r, u); err != nil {
		h.Log.Error("session: save", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "data_access", "Could not start session", "")
		return
	}

	if oid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
		h.AuditLog.SessionStarted(r.Context(), r, oid, u.Role)
	}
	respond.JSON(w, http.StatusOK, sessionResponse{Message: "Session started", User: u})
}

// HandleEnd handles DELETE /api/session. Ending a session that does not
// exist still clears the cookie.
func (h *Handler) HandleEnd(w http.ResponseWriter, r *http.Request) {
	var userID string
	if u, ok := auth.CurrentUser(r); ok {
		userID = u.ID
	}

	if err := h.Auth.EndSession(w, r); err != nil {
		// Still report success; the client drops the cookie either way.
		h.Log.Warn("session: clear", zap.Error(err))
	}

	h.AuditLog.SessionEnded(r.Context(), r, userID)
	respond.JSON(w, http.StatusOK, sessionResponse{Message: "Session ended"})
}
