// Package service implements the account operations behind the HTTP surface:
// signup, login, session revocation, profile management, and account removal
// with its task cascade.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AkashKarnatak/task-manager-api/internal/auth/credential"
	"github.com/AkashKarnatak/task-manager-api/internal/auth/token"
	"github.com/AkashKarnatak/task-manager-api/internal/auth/user"
	apperrors "github.com/AkashKarnatak/task-manager-api/internal/platform/errors"
	"github.com/AkashKarnatak/task-manager-api/internal/platform/id"
	"github.com/AkashKarnatak/task-manager-api/internal/storage"
)

// ErrInvalidCredentials is the single login failure. Unknown email and wrong
// password are deliberately indistinguishable.
var ErrInvalidCredentials = apperrors.New(apperrors.CodeAuthInvalidCredentials, "unable to login")

// Service coordinates account identity operations over the stores.
type Service struct {
	users       storage.UserStore
	tasks       storage.TaskStore
	tokens      *token.Service
	hasher      credential.Hasher
	clock       func() time.Time
	idGenerator func() (string, error)
}

// NewService builds the account service. The task store is required so account
// deletion can cascade to owned tasks before the user record goes away.
func NewService(users storage.UserStore, tasks storage.TaskStore, tokens *token.Service) *Service {
	return &Service{
		users:       users,
		tasks:       tasks,
		tokens:      tokens,
		hasher:      credential.NewHasher(),
		clock:       time.Now,
		idGenerator: id.NewID,
	}
}

// Authenticate resolves a raw bearer token to a live user record.
//
// Every failure surfaces as the generic token error: a deleted user with a
// structurally valid token is rejected the same way as a forged one.
func (s *Service) Authenticate(ctx context.Context, raw string) (user.User, error) {
	if s == nil || s.users == nil || s.tokens == nil {
		return user.User{}, fmt.Errorf("auth service is not configured")
	}

	userID, err := s.tokens.Validate(ctx, raw)
	if err != nil {
		return user.User{}, err
	}

	found, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return user.User{}, token.ErrInvalidToken
		}
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	return found, nil
}
