package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AkashKarnatak/task-manager-api/internal/auth/user"
	"github.com/AkashKarnatak/task-manager-api/internal/storage"
	"github.com/AkashKarnatak/task-manager-api/internal/task"
	"github.com/AkashKarnatak/task-manager-api/internal/task/query"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func testUser(id, email string) user.User {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	return user.User{
		ID:           id,
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$08$examplehashexamplehashexamplehashexample",
		Age:          30,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func testTask(id, authorID string, seq int, completed bool) task.Task {
	created := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(seq) * time.Minute)
	return task.Task{
		ID:          id,
		Description: fmt.Sprintf("task %d", seq),
		Completed:   completed,
		AuthorID:    authorID,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestStoreUserRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	u := testUser("user-1", "one@example.com")
	require.NoError(t, store.PutUser(ctx, u))

	got, err := store.GetUser(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, u.Email, got.Email)
	require.Equal(t, u.PasswordHash, got.PasswordHash)
	require.Equal(t, u.Age, got.Age)
	require.True(t, got.CreatedAt.Equal(u.CreatedAt))

	byEmail, err := store.GetUserByEmail(ctx, "one@example.com")
	require.NoError(t, err)
	require.Equal(t, "user-1", byEmail.ID)
}

func TestStoreUserEmailUnique(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutUser(ctx, testUser("user-1", "same@example.com")))

	err := store.PutUser(ctx, testUser("user-2", "same@example.com"))
	require.ErrorIs(t, err, storage.ErrEmailTaken)
}

func TestStoreUserUpdateKeepsID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	u := testUser("user-1", "one@example.com")
	require.NoError(t, store.PutUser(ctx, u))

	u.Name = "Renamed"
	u.UpdatedAt = u.UpdatedAt.Add(time.Hour)
	require.NoError(t, store.PutUser(ctx, u))

	got, err := store.GetUser(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Name)
	require.True(t, got.UpdatedAt.After(got.CreatedAt))
}

func TestStoreUserNotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetUser(ctx, "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.GetUserByEmail(ctx, "missing@example.com")
	require.ErrorIs(t, err, storage.ErrNotFound)

	err = store.DeleteUser(ctx, "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStoreUserTokens(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutUser(ctx, testUser("user-1", "one@example.com")))

	found, err := store.HasUserToken(ctx, "user-1", "tok-a")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.AppendUserToken(ctx, "user-1", "tok-a"))
	require.NoError(t, store.AppendUserToken(ctx, "user-1", "tok-b"))

	found, err = store.HasUserToken(ctx, "user-1", "tok-a")
	require.NoError(t, err)
	require.True(t, found)

	require.NoError(t, store.RemoveUserToken(ctx, "user-1", "tok-a"))
	found, err = store.HasUserToken(ctx, "user-1", "tok-a")
	require.NoError(t, err)
	require.False(t, found)

	found, err = store.HasUserToken(ctx, "user-1", "tok-b")
	require.NoError(t, err)
	require.True(t, found)

	require.NoError(t, store.ClearUserTokens(ctx, "user-1"))
	found, err = store.HasUserToken(ctx, "user-1", "tok-b")
	require.NoError(t, err)
	require.False(t, found)
}

func TestStoreDeleteUserClearsTokens(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutUser(ctx, testUser("user-1", "one@example.com")))
	require.NoError(t, store.AppendUserToken(ctx, "user-1", "tok-a"))

	require.NoError(t, store.DeleteUser(ctx, "user-1"))

	found, err := store.HasUserToken(ctx, "user-1", "tok-a")
	require.NoError(t, err)
	require.False(t, found)
}

func TestStoreTaskOwnershipScope(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutUser(ctx, testUser("owner", "owner@example.com")))
	require.NoError(t, store.PutUser(ctx, testUser("other", "other@example.com")))
	require.NoError(t, store.PutTask(ctx, testTask("task-1", "owner", 1, false)))

	got, err := store.GetTask(ctx, "task-1", "owner")
	require.NoError(t, err)
	require.Equal(t, "task 1", got.Description)

	_, err = store.GetTask(ctx, "task-1", "other")
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.DeleteTask(ctx, "task-1", "other")
	require.ErrorIs(t, err, storage.ErrNotFound)

	deleted, err := store.DeleteTask(ctx, "task-1", "owner")
	require.NoError(t, err)
	require.Equal(t, "task-1", deleted.ID)

	_, err = store.GetTask(ctx, "task-1", "owner")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStoreListTasksFilterAndOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutUser(ctx, testUser("owner", "owner@example.com")))
	require.NoError(t, store.PutUser(ctx, testUser("other", "other@example.com")))

	for i := 1; i <= 5; i++ {
		id := fmt.Sprintf("task-%d", i)
		require.NoError(t, store.PutTask(ctx, testTask(id, "owner", i, i%2 == 0)))
	}
	require.NoError(t, store.PutTask(ctx, testTask("task-x", "other", 9, false)))

	all, err := store.ListTasks(ctx, "owner", query.ListQuery{Limit: query.Unset, Skip: query.Unset})
	require.NoError(t, err)
	require.Len(t, all, 5)
	require.Equal(t, "task-1", all[0].ID)
	require.Equal(t, "task-5", all[4].ID)

	completed := true
	done, err := store.ListTasks(ctx, "owner", query.ListQuery{Completed: &completed, Limit: query.Unset, Skip: query.Unset})
	require.NoError(t, err)
	require.Len(t, done, 2)
	for _, item := range done {
		require.True(t, item.Completed)
	}
}

func TestStoreListTasksPagination(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutUser(ctx, testUser("owner", "owner@example.com")))
	for i := 1; i <= 5; i++ {
		id := fmt.Sprintf("task-%d", i)
		require.NoError(t, store.PutTask(ctx, testTask(id, "owner", i, false)))
	}

	page, err := store.ListTasks(ctx, "owner", query.ListQuery{Limit: 2, Skip: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, "task-3", page[0].ID)
	require.Equal(t, "task-4", page[1].ID)

	tail, err := store.ListTasks(ctx, "owner", query.ListQuery{Limit: query.Unset, Skip: 4})
	require.NoError(t, err)
	require.Len(t, tail, 1)
	require.Equal(t, "task-5", tail[0].ID)
}

func TestStoreListTasksSort(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutUser(ctx, testUser("owner", "owner@example.com")))
	require.NoError(t, store.PutTask(ctx, testTask("task-1", "owner", 1, true)))
	require.NoError(t, store.PutTask(ctx, testTask("task-2", "owner", 2, false)))
	require.NoError(t, store.PutTask(ctx, testTask("task-3", "owner", 3, true)))

	desc, err := store.ListTasks(ctx, "owner", query.ListQuery{
		SortField: "createdAt",
		SortDesc:  true,
		Limit:     query.Unset,
		Skip:      query.Unset,
	})
	require.NoError(t, err)
	require.Equal(t, "task-3", desc[0].ID)
	require.Equal(t, "task-1", desc[2].ID)

	byCompleted, err := store.ListTasks(ctx, "owner", query.ListQuery{
		SortField: "completed",
		Limit:     query.Unset,
		Skip:      query.Unset,
	})
	require.NoError(t, err)
	require.False(t, byCompleted[0].Completed)

	// Unknown sort fields fall back to creation-time order.
	fallback, err := store.ListTasks(ctx, "owner", query.ListQuery{
		SortField: "color",
		Limit:     query.Unset,
		Skip:      query.Unset,
	})
	require.NoError(t, err)
	require.Equal(t, "task-1", fallback[0].ID)
}

func TestStoreDeleteTasksByAuthor(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutUser(ctx, testUser("owner", "owner@example.com")))
	require.NoError(t, store.PutUser(ctx, testUser("other", "other@example.com")))
	require.NoError(t, store.PutTask(ctx, testTask("task-1", "owner", 1, false)))
	require.NoError(t, store.PutTask(ctx, testTask("task-2", "owner", 2, false)))
	require.NoError(t, store.PutTask(ctx, testTask("task-3", "other", 3, false)))

	require.NoError(t, store.DeleteTasksByAuthor(ctx, "owner"))

	mine, err := store.ListTasks(ctx, "owner", query.ListQuery{Limit: query.Unset, Skip: query.Unset})
	require.NoError(t, err)
	require.Empty(t, mine)

	theirs, err := store.ListTasks(ctx, "other", query.ListQuery{Limit: query.Unset, Skip: query.Unset})
	require.NoError(t, err)
	require.Len(t, theirs, 1)
}
