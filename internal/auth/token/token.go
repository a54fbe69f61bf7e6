// Package token issues and validates the bearer tokens that prove identity.
package token

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/AkashKarnatak/task-manager-api/internal/platform/errors"
	"github.com/AkashKarnatak/task-manager-api/internal/storage"
)

// ErrInvalidToken covers every token rejection: malformed, bad signature,
// expired, revoked, or missing subject. Callers surface it without detail so
// a client cannot tell which check failed.
var ErrInvalidToken = apperrors.New(apperrors.CodeAuthTokenInvalid, "please authenticate")

// Service signs bearer tokens and checks them against each user's
// valid-token set. A token with a good signature that has been revoked is
// rejected; membership in the set decides validity.
type Service struct {
	secret []byte
	ttl    time.Duration
	store  storage.TokenStore
	clock  func() time.Time
}

// NewService builds a token service around the process-wide signing secret.
// A ttl of zero issues tokens without expiry.
func NewService(secret []byte, ttl time.Duration, store storage.TokenStore) *Service {
	return &Service{
		secret: secret,
		ttl:    ttl,
		store:  store,
		clock:  time.Now,
	}
}

// Issue signs a token for userID and appends it to the user's valid-token set.
func (s *Service) Issue(ctx context.Context, userID string) (string, error) {
	if s == nil || len(s.secret) == 0 {
		return "", fmt.Errorf("token signer is not configured")
	}
	if s.store == nil {
		return "", fmt.Errorf("token store is not configured")
	}

	now := s.clock().UTC()
	claims := jwt.RegisteredClaims{
		Subject:  userID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	if err := s.store.AppendUserToken(ctx, userID, signed); err != nil {
		return "", fmt.Errorf("append user token: %w", err)
	}
	return signed, nil
}

// Validate verifies the token's signature and expiry, then requires it to
// still be in the owning user's valid-token set. It returns the user id the
// token is bound to.
func (s *Service) Validate(ctx context.Context, raw string) (string, error) {
	if s == nil || len(s.secret) == 0 {
		return "", fmt.Errorf("token signer is not configured")
	}
	if s.store == nil {
		return "", fmt.Errorf("token store is not configured")
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.clock))
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeAuthTokenInvalid, "please authenticate", err)
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}

	valid, err := s.store.HasUserToken(ctx, claims.Subject, raw)
	if err != nil {
		return "", fmt.Errorf("check user token: %w", err)
	}
	if !valid {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// Revoke removes one token from the user's valid-token set.
func (s *Service) Revoke(ctx context.Context, userID, raw string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("token store is not configured")
	}
	if err := s.store.RemoveUserToken(ctx, userID, raw); err != nil {
		return fmt.Errorf("remove user token: %w", err)
	}
	return nil
}

// RevokeAll empties the user's valid-token set, ending every session.
func (s *Service) RevokeAll(ctx context.Context, userID string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("token store is not configured")
	}
	if err := s.store.ClearUserTokens(ctx, userID); err != nil {
		return fmt.Errorf("clear user tokens: %w", err)
	}
	return nil
}
