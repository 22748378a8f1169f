// internal/app/features/projects/validate.go
package projects

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	projectstore "github.com/dalemusser/pmhub/internal/app/store/projects"
	"github.com/dalemusser/pmhub/internal/app/system/apierr"
	"github.com/dalemusser/pmhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/pmhub/internal/app/system/normalize"
	"github.com/dalemusser/pmhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	maxNameLen        = 200
	maxDescriptionLen = 5000
	maxTeamRoleLen    = 50
)

func cleanName(raw string) (string, error) {
	name := normalize.Name(htmlsanitize.PlainText(raw))
	if name == "" {
		return "", apierr.Validation("Project name is required")
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "", apierr.Validation(fmt.Sprintf("Project name must be at most %d characters", maxNameLen))
	}
	return name, nil
}

func cleanDescription(raw string) (string, error) {
	d := htmlsanitize.Sanitize(raw)
	if utf8.RuneCountInString(d) > maxDescriptionLen {
		return "", apierr.Validation(fmt.Sprintf("Description must be at most %d characters", maxDescriptionLen))
	}
	return d, nil
}

// cleanEnum normalizes v and checks it against allowed. Empty v yields def.
func cleanEnum(field, v, def string, allowed []string) (string, error) {
	v = normalize.Status(v)
	if v == "" {
		return def, nil
	}
	if !slices.Contains(allowed, v) {
		return "", apierr.Validation(fmt.Sprintf("Invalid %s %q (allowed: %s)", field, v, strings.Join(allowed, ", ")))
	}
	return v, nil
}

func checkDates(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return apierr.Validation("End date cannot be before start date")
	}
	return nil
}

func cleanTeamRole(raw string) (string, error) {
	role := normalize.Name(htmlsanitize.PlainText(raw))
	if role == "" {
		return models.DefaultTeamRole, nil
	}
	if utf8.RuneCountInString(role) > maxTeamRoleLen {
		return "", apierr.Validation(fmt.Sprintf("Team role must be at most %d characters", maxTeamRoleLen))
	}
	return role, nil
}

func parseUserID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil || oid.IsZero() {
		return primitive.NilObjectID, apierr.Validation("Invalid user id")
	}
	return oid, nil
}

// buildTeam validates a supplied team. Repeated users keep their first entry.
func buildTeam(in []TeamInput) ([]models.TeamMember, error) {
	team := make([]models.TeamMember, 0, len(in))
	seen := make(map[primitive.ObjectID]bool, len(in))
	for _, m := range in {
		uid, err := parseUserID(m.User)
		if err != nil {
			return nil, err
		}
		if seen[uid] {
			continue
		}
		role, err := cleanTeamRole(m.Role)
		if err != nil {
			return nil, err
		}
		seen[uid] = true
		team = append(team, models.TeamMember{User: uid, Role: role})
	}
	return team, nil
}

// buildProject turns a create request into a new project owned by manager.
func buildProject(manager primitive.ObjectID, in CreateInput) (models.Project, error) {
	name, err := cleanName(in.Name)
	if err != nil {
		return models.Project{}, err
	}
	desc, err := cleanDescription(in.Description)
	if err != nil {
		return models.Project{}, err
	}
	status, err := cleanEnum("status", in.Status, models.ProjectPlanned, models.ProjectStatuses)
	if err != nil {
		return models.Project{}, err
	}
	priority, err := cleanEnum("priority", in.Priority, models.PriorityMedium, models.Priorities)
	if err != nil {
		return models.Project{}, err
	}
	if err := checkDates(in.StartDate, in.EndDate); err != nil {
		return models.Project{}, err
	}
	team, err := buildTeam(in.Team)
	if err != nil {
		return models.Project{}, err
	}

	return models.Project{
		Name:        name,
		Description: desc,
		Status:      status,
		Priority:    priority,
		Manager:     manager,
		Team:        team,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}, nil
}

// buildPatch validates an update and returns the patch plus the names of
// the fields it sets.
func buildPatch(in UpdateInput) (projectstore.Patch, []string, error) {
	var (
		patch  projectstore.Patch
		fields []string
	)

	if in.Name != nil {
		name, err := cleanName(*in.Name)
		if err != nil {
			return patch, nil, err
		}
		patch.Name = &name
		fields = append(fields, "name")
	}
	if in.Description != nil {
		desc, err := cleanDescription(*in.Description)
		if err != nil {
			return patch, nil, err
		}
		patch.Description = &desc
		fields = append(fields, "description")
	}
	if in.Status != nil {
		if strings.TrimSpace(*in.Status) == "" {
			return patch, nil, apierr.Validation("Status cannot be empty")
		}
		status, err := cleanEnum("status", *in.Status, "", models.ProjectStatuses)
		if err != nil {
			return patch, nil, err
		}
		patch.Status = &status
		fields = append(fields, "status")
	}
	if in.Priority != nil {
		if strings.TrimSpace(*in.Priority) == "" {
			return patch, nil, apierr.Validation("Priority cannot be empty")
		}
		priority, err := cleanEnum("priority", *in.Priority, "", models.Priorities)
		if err != nil {
			return patch, nil, err
		}
		patch.Priority = &priority
		fields = append(fields, "priority")
	}
	if in.StartDate != nil {
		patch.StartDate = in.StartDate
		fields = append(fields, "startDate")
	}
	if in.EndDate != nil {
		patch.EndDate = in.EndDate
		fields = append(fields, "endDate")
	}
	return patch, fields, nil
}
