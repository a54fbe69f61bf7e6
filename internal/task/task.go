// Package task provides the task records owned by account identities.
package task

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/AkashKarnatak/task-manager-api/internal/platform/errors"
	"github.com/AkashKarnatak/task-manager-api/internal/platform/id"
)

var (
	// ErrEmptyDescription indicates a missing task description.
	ErrEmptyDescription = apperrors.New(apperrors.CodeTaskDescriptionEmpty, "description is required")
	// ErrUpdateNotAllowed indicates an update touching a field outside the allow-list.
	ErrUpdateNotAllowed = apperrors.New(apperrors.CodeTaskUpdateNotAllowed, "invalid update key")
)

// Task represents a single task record. Every task has exactly one author
// and is visible only through that author's identity.
type Task struct {
	ID          string
	Description string
	Completed   bool
	AuthorID    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateTaskInput describes the client-supplied task fields. The author is
// never part of the input; it always comes from the authenticated identity.
type CreateTaskInput struct {
	Description string
	Completed   bool
}

// CreateTask builds a task record owned by authorID.
func CreateTask(authorID string, input CreateTaskInput, now func() time.Time, idGenerator func() (string, error)) (Task, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	description, err := NormalizeDescription(input.Description)
	if err != nil {
		return Task{}, err
	}

	taskID, err := idGenerator()
	if err != nil {
		return Task{}, fmt.Errorf("generate task id: %w", err)
	}

	createdAt := now().UTC()
	return Task{
		ID:          taskID,
		Description: description,
		Completed:   input.Completed,
		AuthorID:    authorID,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}, nil
}

// NormalizeDescription trims the description and requires it to be non-empty.
func NormalizeDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", ErrEmptyDescription
	}
	return description, nil
}

// allowedUpdateFields is the task mutation allow-list.
var allowedUpdateFields = map[string]bool{
	"description": true,
	"completed":   true,
}

// Update is a validated, allow-listed task mutation. Nil fields are left
// untouched.
type Update struct {
	Description *string
	Completed   *bool
}

// Empty reports whether the update touches no fields.
func (u Update) Empty() bool {
	return u.Description == nil && u.Completed == nil
}

// ParseUpdate checks the raw field mapping against the allow-list and
// validates each value. Any key outside {description, completed} rejects the
// whole update before any field is interpreted.
func ParseUpdate(fields map[string]any) (Update, error) {
	for key := range fields {
		if !allowedUpdateFields[key] {
			return Update{}, ErrUpdateNotAllowed
		}
	}

	var update Update
	if raw, ok := fields["description"]; ok {
		value, ok := raw.(string)
		if !ok {
			return Update{}, invalidValue("description")
		}
		description, err := NormalizeDescription(value)
		if err != nil {
			return Update{}, err
		}
		update.Description = &description
	}
	if raw, ok := fields["completed"]; ok {
		value, ok := raw.(bool)
		if !ok {
			return Update{}, invalidValue("completed")
		}
		update.Completed = &value
	}
	return update, nil
}

// Apply writes the update onto the task and stamps the mutation time.
func (u Update) Apply(t *Task, now time.Time) {
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Completed != nil {
		t.Completed = *u.Completed
	}
	t.UpdatedAt = now.UTC()
}

func invalidValue(field string) error {
	return apperrors.WithMetadata(apperrors.CodeTaskUpdateInvalidValue, "invalid value for "+field, map[string]string{"field": field})
}
