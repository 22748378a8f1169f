// internal/app/features/projects/handler.go
package projects

import (
	"net/http"

	uierrors "github.com/dalemusser/pmhub/internal/app/features/errors"
	"github.com/dalemusser/pmhub/internal/app/store/queries/projectquery"
	"github.com/dalemusser/pmhub/internal/app/system/authz"
	"github.com/dalemusser/pmhub/internal/app/system/normalize"
	"github.com/dalemusser/pmhub/internal/app/system/paging"
	"github.com/dalemusser/pmhub/internal/app/system/respond"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler is the HTTP entry point for projects.
type Handler struct {
	Svc *Service
	Log *zap.Logger
}

// NewHandler constructs a projects Handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Log: logger}
}

type messageProject struct {
	Message string `json:"message"`
	Project any    `json:"project"`
}

func (h *Handler) caller(w http.ResponseWriter, r *http.Request) (authz.Caller, bool) {
	c, ok := authz.CallerFrom(r)
	if !ok {
		uierrors.RenderUnauthorized(w, "")
	}
	return c, ok
}

// ServeList handles GET /projects.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	c, ok := h.caller(w, r)
	if !ok {
		return
	}
	p := projectquery.Params{
		Status:   normalize.Status(query.Get(r, "status")),
		Priority: normalize.Status(query.Get(r, "priority")),
		Search:   normalize.QueryParam(query.Get(r, "search")),
		Page:     paging.ParseInt(r, "page"),
		Limit:    paging.ParseInt(r, "limit"),
	}
	page, err := h.Svc.ListProjects(r.Context(), c, p)
	if err != nil {
		uierrors.Write(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, page)
}

// ServeView handles GET /projects/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	c, ok := h.caller(w, r)
	if !ok {
		return
	}
	detail, err := h.Svc.GetProject(r.Context(), c, chi.URLParam(r, "id"))
	if err != nil {
		uierrors.Write(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, detail)
}

// HandleCreate handles POST /projects.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	c, ok := h.caller(w, r)
	if !ok {
		return
	}
	var in CreateInput
	if err := respond.DecodeJSON(r, &in); err != nil {
		uierrors.RenderValidation(w, "Invalid request body")
		return
	}
	view, err := h.Svc.CreateProject(r.Context(), c, in)
	if err != nil {
		uierrors.Write(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusCreated, messageProject{Message: "Project created successfully", Project: view})
}

// HandleUpdate handles PUT /projects/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	c, ok := h.caller(w, r)
	if !ok {
		return
	}
	var in UpdateInput
	if err := respond.DecodeJSON(r, &in); err != nil {
		uierrors.RenderValidation(w, "Invalid request body")
		return
	}
	view, err := h.Svc.UpdateProject(r.Context(), c, chi.URLParam(r, "id"), in)
	if err != nil {
		uierrors.Write(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, messageProject{Message: "Project updated successfully", Project: view})
}

// HandleDelete handles DELETE /projects/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	c, ok := h.caller(w, r)
	if !ok {
		return
	}
	if err := h.Svc.DeleteProject(r.Context(), c, chi.URLParam(r, "id")); err != nil {
		uierrors.Write(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}

// HandleAddTeamMember handles POST /projects/{id}/team.
func (h *Handler) HandleAddTeamMember(w http.ResponseWriter, r *http.Request) {
	c, ok := h.caller(w, r)
	if !ok {
		return
	}
	var in AddMemberInput
	if err := respond.DecodeJSON(r, &in); err != nil {
		uierrors.RenderValidation(w, "Invalid request body")
		return
	}
	view, err := h.Svc.AddTeamMember(r.Context(), c, chi.URLParam(r, "id"), in.UserID, in.Role)
	if err != nil {
		uierrors.Write(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, messageProject{Message: "Team member added successfully", Project: view})
}

// HandleRemoveTeamMember handles DELETE /projects/{id}/team/{userId}.
func (h *Handler) HandleRemoveTeamMember(w http.ResponseWriter, r *http.Request) {
	c, ok := h.caller(w, r)
	if !ok {
		return
	}
	view, err := h.Svc.RemoveTeamMember(r.Context(), c, chi.URLParam(r, "id"), chi.URLParam(r, "userId"))
	if err != nil {
		uierrors.Write(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, messageProject{Message: "Team member removed successfully", Project: view})
}
