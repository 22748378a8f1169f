// internal/app/features/auditlog/repair.go
package auditlog

import (
	"net/http"

	uierrors "github.com/dalemusser/pmhub/internal/app/features/errors"
	"github.com/dalemusser/pmhub/internal/app/system/apierr"
	"github.com/dalemusser/pmhub/internal/app/system/respond"
	"github.com/dalemusser/pmhub/internal/app/system/timeouts"
)

// HandleRepairCascade handles POST /api/admin/repair-cascade. It runs one
// reconciliation pass now instead of waiting for the worker's next tick.
func (h *Handler) HandleRepairCascade(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Repair(), h.Log, "cascade repair")
	defer cancel()

	res, err := h.Repair.RunOnce(ctx)
	if err != nil {
		uierrors.Write(w, r, h.Log, apierr.DataAccess("Cascade repair failed", err))
		return
	}
	respond.JSON(w, http.StatusOK, repairResponse{
		Message:  "Cascade repair complete",
		Projects: res.Projects,
		Tasks:    res.Tasks,
	})
}
