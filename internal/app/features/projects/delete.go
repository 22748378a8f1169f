// internal/app/features/projects/delete.go
package projects

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/pmhub/internal/app/policy/projectpolicy"
	"github.com/dalemusser/pmhub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// cascadeError marks a failure of the task cascade, as opposed to the
// project write that precedes it.
type cascadeError struct{ err error }

func (e *cascadeError) Error() string { return fmt.Sprintf("deactivate tasks: %v", e.err) }
func (e *cascadeError) Unwrap() error { return e.err }

// DeleteProject soft-deletes a project and every task that references it.
//
// Both writes share a transaction when the deployment supports one. On a
// standalone server they run in order, and a failed cascade leaves live
// tasks under an inactive project until the repair worker catches them.
func (s *Service) DeleteProject(ctx context.Context, caller authz.Caller, id string) error {
	oid, err := parseProjectID(id)
	if err != nil {
		return err
	}
	p, err := s.loadActive(ctx, oid)
	if err != nil {
		return err
	}
	if !projectpolicy.CanDelete(caller, p) {
		return errAccessDenied
	}

	var tasks int64
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.projects.Deactivate(ctx, oid); err != nil {
			return err
		}
		n, err := s.tasks.DeactivateByProject(ctx, oid)
		if err != nil {
			return &cascadeError{err: err}
		}
		tasks = n
		return nil
	})

	var ce *cascadeError
	if errors.As(err, &ce) {
		if s.stillActive(ctx, oid) {
			s.log.Warn("project delete rolled back after task cascade failed",
				zap.String("project_id", oid.Hex()),
				zap.Error(ce.err))
			s.audit.ProjectDeleteFailed(ctx, caller, oid, err)
			return storeErr("Failed to delete project", err)
		}
		s.log.Warn("project deactivated but task cascade failed",
			zap.String("project_id", oid.Hex()),
			zap.Error(ce.err))
		s.audit.ProjectDeleted(ctx, caller, oid, 0, ce.err)
		return storeErr("Failed to delete project", err)
	}
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			s.audit.ProjectDeleteFailed(ctx, caller, oid, err)
		}
		return writeErr("Failed to delete project", err)
	}

	s.audit.ProjectDeleted(ctx, caller, oid, tasks, nil)
	return nil
}

// stillActive reports whether the project survived a failed delete, which
// happens when the transaction holding both writes was rolled back. A
// failed lookup counts as not active so the repair worker stays in charge.
func (s *Service) stillActive(ctx context.Context, id primitive.ObjectID) bool {
	_, err := s.projects.GetActive(ctx, id)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		s.log.Warn("could not confirm project state after failed delete",
			zap.String("project_id", id.Hex()),
			zap.Error(err))
	}
	return err == nil
}
