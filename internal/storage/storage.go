// Package storage defines the persistence interfaces the services depend on.
package storage

import (
	"context"

	"github.com/AkashKarnatak/task-manager-api/internal/auth/user"
	"github.com/AkashKarnatak/task-manager-api/internal/platform/errors"
	"github.com/AkashKarnatak/task-manager-api/internal/task"
	"github.com/AkashKarnatak/task-manager-api/internal/task/query"
)

// ErrNotFound indicates a requested record is missing. Owner-scoped task
// lookups return it both for absent ids and ids owned by another user.
var ErrNotFound = errors.New(errors.CodeNotFound, "record not found")

// ErrEmailTaken indicates a signup or profile update collided with an
// existing account's email.
var ErrEmailTaken = errors.New(errors.CodeUserEmailTaken, "email is already registered")

// UserStore persists account identity records.
type UserStore interface {
	// PutUser inserts or replaces a user record. A conflicting email on a
	// different record yields ErrEmailTaken.
	PutUser(ctx context.Context, u user.User) error
	GetUser(ctx context.Context, userID string) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	// DeleteUser removes the user record and its valid-token set.
	DeleteUser(ctx context.Context, userID string) error
}

// TokenStore persists each user's valid-token set. Membership in the set,
// not signature validity alone, decides whether a token is accepted.
type TokenStore interface {
	AppendUserToken(ctx context.Context, userID, token string) error
	HasUserToken(ctx context.Context, userID, token string) (bool, error)
	RemoveUserToken(ctx context.Context, userID, token string) error
	ClearUserTokens(ctx context.Context, userID string) error
}

// TaskStore persists task records. Every read and mutation of a single task
// is scoped by author id; a mismatch is indistinguishable from absence.
type TaskStore interface {
	PutTask(ctx context.Context, t task.Task) error
	GetTask(ctx context.Context, taskID, authorID string) (task.Task, error)
	ListTasks(ctx context.Context, authorID string, q query.ListQuery) ([]task.Task, error)
	// DeleteTask removes one owned task and returns the deleted record.
	DeleteTask(ctx context.Context, taskID, authorID string) (task.Task, error)
	// DeleteTasksByAuthor removes every task owned by the user. The
	// lifecycle coordinator calls this before the user record goes away.
	DeleteTasksByAuthor(ctx context.Context, authorID string) error
}
