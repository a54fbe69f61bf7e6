package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/AkashKarnatak/task-manager-api/internal/storage"
	"github.com/AkashKarnatak/task-manager-api/internal/task"
	"github.com/AkashKarnatak/task-manager-api/internal/task/query"
)

const taskColumns = "id, description, completed, author_id, created_at, updated_at"

// sortColumns maps sortBy field names to their column. Unknown fields fall
// back to the default creation-time order.
var sortColumns = map[string]string{
	"description": "description",
	"completed":   "completed",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

// PutTask inserts or replaces a task record by id.
func (s *Store) PutTask(ctx context.Context, t task.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("task id is required")
	}
	if strings.TrimSpace(t.AuthorID) == "" {
		return fmt.Errorf("author id is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO tasks (id, description, completed, author_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	description = excluded.description,
	completed = excluded.completed,
	updated_at = excluded.updated_at
`,
		t.ID,
		t.Description,
		boolToInt(t.Completed),
		t.AuthorID,
		toMillis(t.CreatedAt),
		toMillis(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put task: %w", err)
	}
	return nil
}

// GetTask fetches one task scoped to its author. A task owned by someone
// else is indistinguishable from a missing one.
func (s *Store) GetTask(ctx context.Context, taskID, authorID string) (task.Task, error) {
	if err := ctx.Err(); err != nil {
		return task.Task{}, err
	}
	if s == nil || s.sqlDB == nil {
		return task.Task{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(taskID) == "" || strings.TrimSpace(authorID) == "" {
		return task.Task{}, storage.ErrNotFound
	}

	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = ? AND author_id = ?", taskID, authorID)
	return scanTaskRow(row)
}

// ListTasks returns the author's tasks shaped by the query: optional
// completed filter, sort order, limit and skip.
func (s *Store) ListTasks(ctx context.Context, authorID string, q query.ListQuery) ([]task.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(authorID) == "" {
		return nil, fmt.Errorf("author id is required")
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + taskColumns + " FROM tasks WHERE author_id = ?")
	args := []any{authorID}

	if q.Completed != nil {
		sb.WriteString(" AND completed = ?")
		args = append(args, boolToInt(*q.Completed))
	}

	sb.WriteString(" ORDER BY ")
	if column, ok := sortColumns[q.SortField]; ok {
		sb.WriteString(column)
		if q.SortDesc {
			sb.WriteString(" DESC")
		} else {
			sb.WriteString(" ASC")
		}
		sb.WriteString(", id ASC")
	} else {
		sb.WriteString("created_at ASC, id ASC")
	}

	// sqlite treats LIMIT -1 as unlimited, which matches the unset sentinel.
	limit := int64(q.Limit)
	if q.Limit == query.Unset {
		limit = -1
	}
	skip := int64(q.Skip)
	if q.Skip == query.Unset {
		skip = 0
	}
	sb.WriteString(" LIMIT ? OFFSET ?")
	args = append(args, limit, skip)

	rows, err := s.sqlDB.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks rows: %w", err)
	}
	return tasks, nil
}

// DeleteTask removes one task scoped to its author and returns the record
// that was removed.
func (s *Store) DeleteTask(ctx context.Context, taskID, authorID string) (task.Task, error) {
	deleted, err := s.GetTask(ctx, taskID, authorID)
	if err != nil {
		return task.Task{}, err
	}

	result, err := s.sqlDB.ExecContext(ctx,
		"DELETE FROM tasks WHERE id = ? AND author_id = ?", taskID, authorID)
	if err != nil {
		return task.Task{}, fmt.Errorf("delete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return task.Task{}, fmt.Errorf("delete task rows affected: %w", err)
	}
	if affected == 0 {
		return task.Task{}, storage.ErrNotFound
	}
	return deleted, nil
}

// DeleteTasksByAuthor removes every task owned by the author.
func (s *Store) DeleteTasksByAuthor(ctx context.Context, authorID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(authorID) == "" {
		return fmt.Errorf("author id is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, "DELETE FROM tasks WHERE author_id = ?", authorID)
	if err != nil {
		return fmt.Errorf("delete tasks by author: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTaskRow(row *sql.Row) (task.Task, error) {
	t, err := scanTask(row)
	if err != nil && errors.Is(err, sql.ErrNoRows) {
		return task.Task{}, storage.ErrNotFound
	}
	return t, err
}

func scanTask(row rowScanner) (task.Task, error) {
	var t task.Task
	var completed int64
	var createdAt, updatedAt int64
	err := row.Scan(&t.ID, &t.Description, &completed, &t.AuthorID, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return task.Task{}, err
		}
		return task.Task{}, fmt.Errorf("scan task: %w", err)
	}
	t.Completed = completed != 0
	t.CreatedAt = fromMillis(createdAt)
	t.UpdatedAt = fromMillis(updatedAt)
	return t, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
