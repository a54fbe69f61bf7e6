// Package user provides the account identity records and their validation rules.
package user

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	apperrors "github.com/AkashKarnatak/task-manager-api/internal/platform/errors"
	"github.com/AkashKarnatak/task-manager-api/internal/platform/id"
)

var (
	// ErrEmptyName indicates a missing user name.
	ErrEmptyName = apperrors.New(apperrors.CodeUserNameEmpty, "name is required")
	// ErrEmptyEmail indicates a missing email address.
	ErrEmptyEmail = apperrors.New(apperrors.CodeUserEmailEmpty, "email is required")
	// ErrInvalidEmail indicates an email address that fails format validation.
	ErrInvalidEmail = apperrors.New(apperrors.CodeUserEmailInvalid, "email is not valid")
	// ErrPasswordTooShort indicates a password below the minimum length.
	ErrPasswordTooShort = apperrors.New(apperrors.CodeUserPasswordTooShort, "password must be at least 7 characters")
	// ErrPasswordTooCommon indicates a password containing a banned substring.
	ErrPasswordTooCommon = apperrors.New(apperrors.CodeUserPasswordCommon, "password is too common")
	// ErrNegativeAge indicates an age below zero.
	ErrNegativeAge = apperrors.New(apperrors.CodeUserAgeNegative, "age must not be negative")

	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 7

// User represents an account identity record.
//
// PasswordHash never holds a plaintext password; hashing happens before the
// record is constructed or updated. Avatar is an optional binary blob managed
// by external upload utilities.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Age          int64
	Avatar       []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUserInput describes the signup fields before validation.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Age      int64
}

// CreateUser builds a new identity record from validated signup input.
//
// The returned record carries no password hash; the caller hashes the
// plaintext from the normalized input and sets it explicitly, so a hashing
// failure aborts the signup instead of persisting plaintext.
func CreateUser(input CreateUserInput, now func() time.Time, idGenerator func() (string, error)) (User, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateUserInput(input)
	if err != nil {
		return User{}, err
	}

	userID, err := idGenerator()
	if err != nil {
		return User{}, fmt.Errorf("generate user id: %w", err)
	}

	createdAt := now().UTC()
	return User{
		ID:        userID,
		Name:      normalized.Name,
		Email:     normalized.Email,
		Age:       normalized.Age,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// NormalizeCreateUserInput trims and validates signup input.
func NormalizeCreateUserInput(input CreateUserInput) (CreateUserInput, error) {
	name, err := NormalizeName(input.Name)
	if err != nil {
		return CreateUserInput{}, err
	}
	email, err := NormalizeEmail(input.Email)
	if err != nil {
		return CreateUserInput{}, err
	}
	password, err := NormalizePassword(input.Password)
	if err != nil {
		return CreateUserInput{}, err
	}
	if err := ValidateAge(input.Age); err != nil {
		return CreateUserInput{}, err
	}
	return CreateUserInput{
		Name:     name,
		Email:    email,
		Password: password,
		Age:      input.Age,
	}, nil
}

// NormalizeName trims the name and requires it to be non-empty.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}

// NormalizeEmail lowercases and validates the address format.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrEmptyEmail
	}
	if !emailPattern.MatchString(email) {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// NormalizePassword enforces the password policy on the trimmed plaintext.
//
// Passwords containing the substring "password" in any casing are rejected
// regardless of length.
func NormalizePassword(password string) (string, error) {
	password = strings.TrimSpace(password)
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	if strings.Contains(strings.ToLower(password), "password") {
		return "", ErrPasswordTooCommon
	}
	return password, nil
}

// ValidateAge rejects negative ages. Zero is the documented default.
func ValidateAge(age int64) error {
	if age < 0 {
		return ErrNegativeAge
	}
	return nil
}
