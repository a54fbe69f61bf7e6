package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AkashKarnatak/task-manager-api/internal/auth/user"
	"github.com/AkashKarnatak/task-manager-api/internal/storage"
)

// GetProfile returns the account record for an authenticated user.
func (s *Service) GetProfile(ctx context.Context, userID string) (user.User, error) {
	if s == nil || s.users == nil {
		return user.User{}, fmt.Errorf("auth service is not configured")
	}
	found, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return user.User{}, storage.ErrNotFound
		}
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	return found, nil
}

// UpdateProfile applies an allow-listed field mapping to the account.
//
// The allow-list check happens before any field is read, so one disallowed
// key rejects the whole update. A password change re-hashes exactly once; no
// other field triggers hashing and stored hashes are never re-hashed.
func (s *Service) UpdateProfile(ctx context.Context, userID string, fields map[string]any) (user.User, error) {
	if s == nil || s.users == nil {
		return user.User{}, fmt.Errorf("auth service is not configured")
	}

	update, err := user.ParseUpdate(fields)
	if err != nil {
		return user.User{}, err
	}

	current, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return user.User{}, storage.ErrNotFound
		}
		return user.User{}, fmt.Errorf("get user: %w", err)
	}

	if update.Name != nil {
		current.Name = *update.Name
	}
	if update.Email != nil {
		current.Email = *update.Email
	}
	if update.Age != nil {
		current.Age = *update.Age
	}
	if update.Password != nil {
		hash, err := s.hasher.Hash(*update.Password)
		if err != nil {
			return user.User{}, err
		}
		current.PasswordHash = hash
	}
	current.UpdatedAt = s.clock().UTC()

	if err := s.users.PutUser(ctx, current); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return user.User{}, storage.ErrEmailTaken
		}
		return user.User{}, fmt.Errorf("put user: %w", err)
	}
	return current, nil
}

// DeleteAccount removes the user and every task they own.
//
// The task cascade runs strictly before the user record is deleted; if it
// fails the account stays intact, so no orphaned tasks can outlive a removed
// user.
func (s *Service) DeleteAccount(ctx context.Context, userID string) (user.User, error) {
	if s == nil || s.users == nil || s.tasks == nil {
		return user.User{}, fmt.Errorf("auth service is not configured")
	}

	current, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return user.User{}, storage.ErrNotFound
		}
		return user.User{}, fmt.Errorf("get user: %w", err)
	}

	if err := s.tasks.DeleteTasksByAuthor(ctx, userID); err != nil {
		return user.User{}, fmt.Errorf("cascade delete tasks: %w", err)
	}
	if err := s.users.DeleteUser(ctx, userID); err != nil {
		return user.User{}, fmt.Errorf("delete user: %w", err)
	}
	return current, nil
}
