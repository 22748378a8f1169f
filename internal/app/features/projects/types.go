// internal/app/features/projects/types.go
package projects

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/pmhub/internal/domain/models"
)

// TeamInput is one requested team entry. User is a hex ObjectID.
type TeamInput struct {
	User string `json:"user"`
	Role string `json:"role"`
}

// CreateInput is the body of a create request. Empty Status and Priority
// take the defaults.
type CreateInput struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Status      string      `json:"status"`
	Priority    string      `json:"priority"`
	StartDate   *time.Time  `json:"startDate"`
	EndDate     *time.Time  `json:"endDate"`
	Team        []TeamInput `json:"team"`
}

// UpdateInput is a partial update. Absent (nil) fields are left alone.
type UpdateInput struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// UnmarshalJSON accepts RFC 3339 timestamps and YYYY-MM-DD dates.
func (in *CreateInput) UnmarshalJSON(b []byte) error {
	type plain CreateInput
	aux := struct {
		*plain
		StartDate *jsonDate `json:"startDate"`
		EndDate   *jsonDate `json:"endDate"`
	}{plain: (*plain)(in)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	in.StartDate, in.EndDate = aux.StartDate.time(), aux.EndDate.time()
	return nil
}

// UnmarshalJSON accepts RFC 3339 timestamps and YYYY-MM-DD dates.
func (in *UpdateInput) UnmarshalJSON(b []byte) error {
	type plain UpdateInput
	aux := struct {
		*plain
		StartDate *jsonDate `json:"startDate"`
		EndDate   *jsonDate `json:"endDate"`
	}{plain: (*plain)(in)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	in.StartDate, in.EndDate = aux.StartDate.time(), aux.EndDate.time()
	return nil
}

// jsonDate is a request date. A bare date is midnight UTC.
type jsonDate time.Time

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func (d *jsonDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			*d = jsonDate(t.UTC())
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

func (d *jsonDate) time() *time.Time {
	if d == nil {
		return nil
	}
	t := time.Time(*d)
	return &t
}

// AddMemberInput is the body of a team add request.
type AddMemberInput struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// ProjectPage is one page of a project listing.
type ProjectPage struct {
	Projects    []models.ProjectView `json:"projects"`
	Total       int64                `json:"total"`
	TotalPages  int                  `json:"totalPages"`
	CurrentPage int                  `json:"currentPage"`
}

// ProjectDetail is a project with its live tasks.
type ProjectDetail struct {
	Project models.ProjectView `json:"project"`
	Tasks   []models.TaskView  `json:"tasks"`
}
