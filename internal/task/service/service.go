// Package service implements owner-scoped task operations.
//
// Every operation takes the authenticated user's id and never trusts an
// author from request data. Single-task reads and mutations treat a task
// owned by someone else exactly like a missing one.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AkashKarnatak/task-manager-api/internal/platform/id"
	"github.com/AkashKarnatak/task-manager-api/internal/storage"
	"github.com/AkashKarnatak/task-manager-api/internal/task"
	"github.com/AkashKarnatak/task-manager-api/internal/task/query"
)

// Service coordinates task operations over the task store.
type Service struct {
	store       storage.TaskStore
	clock       func() time.Time
	idGenerator func() (string, error)
}

// NewService builds the task service.
func NewService(store storage.TaskStore) *Service {
	return &Service{
		store:       store,
		clock:       time.Now,
		idGenerator: id.NewID,
	}
}

// Create stores a new task owned by authorID.
func (s *Service) Create(ctx context.Context, authorID string, input task.CreateTaskInput) (task.Task, error) {
	if s == nil || s.store == nil {
		return task.Task{}, fmt.Errorf("task service is not configured")
	}

	created, err := task.CreateTask(authorID, input, s.clock, s.idGenerator)
	if err != nil {
		return task.Task{}, err
	}
	if err := s.store.PutTask(ctx, created); err != nil {
		return task.Task{}, fmt.Errorf("put task: %w", err)
	}
	return created, nil
}

// List returns the user's tasks under the given filter, sort, and pagination.
func (s *Service) List(ctx context.Context, authorID string, q query.ListQuery) ([]task.Task, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("task service is not configured")
	}
	listed, err := s.store.ListTasks(ctx, authorID, q)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return listed, nil
}

// Get fetches one owned task by id.
func (s *Service) Get(ctx context.Context, authorID, taskID string) (task.Task, error) {
	if s == nil || s.store == nil {
		return task.Task{}, fmt.Errorf("task service is not configured")
	}
	found, err := s.store.GetTask(ctx, taskID, authorID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return task.Task{}, storage.ErrNotFound
		}
		return task.Task{}, fmt.Errorf("get task: %w", err)
	}
	return found, nil
}

// Update applies an allow-listed field mapping to one owned task.
func (s *Service) Update(ctx context.Context, authorID, taskID string, fields map[string]any) (task.Task, error) {
	if s == nil || s.store == nil {
		return task.Task{}, fmt.Errorf("task service is not configured")
	}

	update, err := task.ParseUpdate(fields)
	if err != nil {
		return task.Task{}, err
	}

	current, err := s.store.GetTask(ctx, taskID, authorID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return task.Task{}, storage.ErrNotFound
		}
		return task.Task{}, fmt.Errorf("get task: %w", err)
	}

	update.Apply(&current, s.clock())
	if err := s.store.PutTask(ctx, current); err != nil {
		return task.Task{}, fmt.Errorf("put task: %w", err)
	}
	return current, nil
}

// Delete removes one owned task and returns the deleted record.
func (s *Service) Delete(ctx context.Context, authorID, taskID string) (task.Task, error) {
	if s == nil || s.store == nil {
		return task.Task{}, fmt.Errorf("task service is not configured")
	}
	deleted, err := s.store.DeleteTask(ctx, taskID, authorID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return task.Task{}, storage.ErrNotFound
		}
		return task.Task{}, fmt.Errorf("delete task: %w", err)
	}
	return deleted, nil
}
