// internal/domain/models/task.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task statuses.
const (
	TaskTodo       = "todo"
	TaskInProgress = "in_progress"
	TaskReview     = "review"
	TaskDone       = "done"
)

// TaskStatuses lists every valid task status.
var TaskStatuses = []string{TaskTodo, TaskInProgress, TaskReview, TaskDone}

// Task belongs to exactly one project. When its project is soft-deleted the
// task is soft-deleted with it.
type Task struct {
	ID          primitive.ObjectID  `bson:"_id" json:"id"`
	Project     primitive.ObjectID  `bson:"project" json:"project"`
	Title       string              `bson:"title" json:"title"`
	Description string              `bson:"description" json:"description"`
	Status      string              `bson:"status" json:"status"`
	Priority    string              `bson:"priority" json:"priority"`
	AssignedTo  *primitive.ObjectID `bson:"assigned_to,omitempty" json:"assignedTo,omitempty"`
	CreatedBy   primitive.ObjectID  `bson:"created_by" json:"createdBy"`
	DueDate     *time.Time          `bson:"due_date,omitempty" json:"dueDate,omitempty"`

	IsActive  bool      `bson:"is_active" json:"isActive"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// TaskView is a Task with assignee and creator resolved.
type TaskView struct {
	ID          primitive.ObjectID `json:"id"`
	Project     primitive.ObjectID `json:"project"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Status      string             `json:"status"`
	Priority    string             `json:"priority"`
	AssignedTo  *UserRef           `json:"assignedTo,omitempty"`
	CreatedBy   UserRef            `json:"createdBy"`
	DueDate     *time.Time         `json:"dueDate,omitempty"`
	IsActive    bool               `json:"isActive"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}
