// internal/app/features/health/handler.go
package health

import (
	"context"
	"net/http"

	"github.com/dalemusser/pmhub/internal/app/system/respond"
	"github.com/dalemusser/pmhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Pinger is satisfied by *mongo.Client.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// BreakerState reports the store circuit breaker state.
type BreakerState interface {
	State() string
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	DB      Pinger
	Breaker BreakerState
	Log     *zap.Logger
}

// NewHandler constructs a health Handler. b may be nil.
func NewHandler(db Pinger, b BreakerState, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Breaker: b,
		Log:     logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Database string `json:"database"`
	Breaker  string `json:"breaker,omitempty"`
}

// Serve handles GET /api/health.
//
// On success: 200 and
//
//	{ "status":"OK", "message":"Project Management API is running!", "database":"connected", "breaker":"closed" }
//
// On DB failure: 503 with status "error" and database "disconnected".
// Driver errors are logged, not returned.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	resp := healthResponse{
		Status:   "OK",
		Message:  "Project Management API is running!",
		Database: "connected",
	}
	if h.Breaker != nil {
		resp.Breaker = h.Breaker.State()
	}

	if err := h.DB.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		resp.Status = "error"
		resp.Message = "Database unavailable"
		resp.Database = "disconnected"
		respond.JSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	respond.JSON(w, http.StatusOK, resp)
}
