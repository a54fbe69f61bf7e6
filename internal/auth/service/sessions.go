package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AkashKarnatak/task-manager-api/internal/auth/user"
	"github.com/AkashKarnatak/task-manager-api/internal/storage"
)

// Signup registers a new account and opens its first session.
//
// The password is hashed exactly once, before the record is persisted; a
// hashing failure aborts the signup so plaintext can never reach the store.
func (s *Service) Signup(ctx context.Context, input user.CreateUserInput) (user.User, string, error) {
	if s == nil || s.users == nil || s.tokens == nil {
		return user.User{}, "", fmt.Errorf("auth service is not configured")
	}

	normalized, err := user.NormalizeCreateUserInput(input)
	if err != nil {
		return user.User{}, "", err
	}

	created, err := user.CreateUser(normalized, s.clock, s.idGenerator)
	if err != nil {
		return user.User{}, "", err
	}

	hash, err := s.hasher.Hash(normalized.Password)
	if err != nil {
		return user.User{}, "", err
	}
	created.PasswordHash = hash

	if err := s.users.PutUser(ctx, created); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return user.User{}, "", storage.ErrEmailTaken
		}
		return user.User{}, "", fmt.Errorf("put user: %w", err)
	}

	issued, err := s.tokens.Issue(ctx, created.ID)
	if err != nil {
		return user.User{}, "", err
	}
	return created, issued, nil
}

// Login verifies credentials and opens a new session.
func (s *Service) Login(ctx context.Context, email, password string) (user.User, string, error) {
	if s == nil || s.users == nil || s.tokens == nil {
		return user.User{}, "", fmt.Errorf("auth service is not configured")
	}

	normalized, err := user.NormalizeEmail(email)
	if err != nil {
		return user.User{}, "", ErrInvalidCredentials
	}

	found, err := s.users.GetUserByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return user.User{}, "", ErrInvalidCredentials
		}
		return user.User{}, "", fmt.Errorf("get user by email: %w", err)
	}

	if !s.hasher.Verify(password, found.PasswordHash) {
		return user.User{}, "", ErrInvalidCredentials
	}

	issued, err := s.tokens.Issue(ctx, found.ID)
	if err != nil {
		return user.User{}, "", err
	}
	return found, issued, nil
}

// Logout revokes the presented token, ending the current session only.
func (s *Service) Logout(ctx context.Context, userID, raw string) error {
	if s == nil || s.tokens == nil {
		return fmt.Errorf("auth service is not configured")
	}
	return s.tokens.Revoke(ctx, userID, raw)
}

// LogoutAll revokes every token the user holds.
func (s *Service) LogoutAll(ctx context.Context, userID string) error {
	if s == nil || s.tokens == nil {
		return fmt.Errorf("auth service is not configured")
	}
	return s.tokens.RevokeAll(ctx, userID)
}
