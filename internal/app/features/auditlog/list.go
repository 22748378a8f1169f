// internal/app/features/auditlog/list.go
package auditlog

import (
	"net/http"
	"time"

	uierrors "github.com/dalemusser/pmhub/internal/app/features/errors"
	"github.com/dalemusser/pmhub/internal/app/store/audit"
	"github.com/dalemusser/pmhub/internal/app/system/apierr"
	"github.com/dalemusser/pmhub/internal/app/system/normalize"
	"github.com/dalemusser/pmhub/internal/app/system/paging"
	"github.com/dalemusser/pmhub/internal/app/system/respond"
	"github.com/dalemusser/pmhub/internal/app/system/timeouts"
	"github.com/dalemusser/pmhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const pageSize = 50

// optionalID parses an ObjectID query parameter. Empty yields nil.
func optionalID(r *http.Request, key string) (*primitive.ObjectID, error) {
	s := normalize.QueryParam(query.Get(r, key))
	if s == "" {
		return nil, nil
	}
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return nil, apierr.Validation("Invalid " + key)
	}
	return &oid, nil
}

// optionalDate parses a YYYY-MM-DD query parameter. With endOfDay set the
// result is the last second of that day.
func optionalDate(r *http.Request, key string, endOfDay bool) (*time.Time, error) {
	s := normalize.QueryParam(query.Get(r, key))
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, apierr.Validation("Invalid " + key + " (expected YYYY-MM-DD)")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	return &t, nil
}

func buildFilter(r *http.Request) (audit.QueryFilter, paging.Page, error) {
	page := paging.FromRequest(r, pageSize, pageSize)
	f := audit.QueryFilter{
		Category:  normalize.QueryParam(query.Get(r, "category")),
		EventType: normalize.QueryParam(query.Get(r, "event_type")),
		Limit:     int64(page.Limit),
		Offset:    page.Offset(),
	}

	var err error
	if f.ProjectID, err = optionalID(r, "project_id"); err != nil {
		return f, page, err
	}
	if f.ActorID, err = optionalID(r, "actor_id"); err != nil {
		return f, page, err
	}
	if f.StartTime, err = optionalDate(r, "start_date", false); err != nil {
		return f, page, err
	}
	if f.EndTime, err = optionalDate(r, "end_date", true); err != nil {
		return f, page, err
	}
	return f, page, nil
}

// ServeList handles GET /api/admin/audit.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	filter, page, err := buildFilter(r)
	if err != nil {
		uierrors.Write(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "audit log list")
	defer cancel()

	events, err := h.Events.Query(ctx, filter)
	if err != nil {
		uierrors.Write(w, r, h.Log, apierr.DataAccess("Failed to query audit events", err))
		return
	}
	total, err := h.Events.CountByFilter(ctx, filter)
	if err != nil {
		uierrors.Write(w, r, h.Log, apierr.DataAccess("Failed to count audit events", err))
		return
	}

	// Collect user ids for name resolution
	var ids []primitive.ObjectID
	for _, e := range events {
		if e.ActorID != nil {
			ids = append(ids, *e.ActorID)
		}
		if e.TargetUserID != nil {
			ids = append(ids, *e.TargetUserID)
		}
	}
	refs, err := h.Users.ResolveRefs(ctx, ids)
	if err != nil {
		uierrors.Write(w, r, h.Log, apierr.DataAccess("Failed to resolve users", err))
		return
	}

	items := make([]listItem, 0, len(events))
	for _, e := range events {
		items = append(items, toItem(e, refs))
	}

	respond.JSON(w, http.StatusOK, listResponse{
		Events:      items,
		Total:       total,
		TotalPages:  paging.TotalPages(total, page.Limit),
		CurrentPage: page.Number,
	})
}

func toItem(e audit.Event, refs map[primitive.ObjectID]models.UserRef) listItem {
	item := listItem{
		ID:            e.ID.Hex(),
		Timestamp:     e.Timestamp,
		Category:      e.Category,
		EventType:     e.EventType,
		ActorRole:     e.ActorRole,
		IP:            e.IP,
		Success:       e.Success,
		FailureReason: e.FailureReason,
		Details:       e.Details,
	}
	if e.ActorID != nil {
		item.Actor = resolved(refs, *e.ActorID)
	}
	if e.TargetUserID != nil {
		item.Target = resolved(refs, *e.TargetUserID)
	}
	if e.ProjectID != nil {
		item.ProjectID = e.ProjectID.Hex()
	}
	return item
}

func resolved(refs map[primitive.ObjectID]models.UserRef, id primitive.ObjectID) *models.UserRef {
	if ref, ok := refs[id]; ok {
		return &ref
	}
	return &models.UserRef{ID: id}
}
