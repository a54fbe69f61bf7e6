package user

import (
	"math"

	apperrors "github.com/AkashKarnatak/task-manager-api/internal/platform/errors"
)

// ErrUpdateNotAllowed indicates an update touching a field outside the allow-list.
var ErrUpdateNotAllowed = apperrors.New(apperrors.CodeUserUpdateNotAllowed, "invalid update key")

// allowedUpdateFields is the profile mutation allow-list.
var allowedUpdateFields = map[string]bool{
	"name":     true,
	"email":    true,
	"password": true,
	"age":      true,
}

// Update is a validated, allow-listed profile mutation. Nil fields are left
// untouched. Password carries normalized plaintext; the caller hashes it
// exactly once before persisting.
type Update struct {
	Name     *string
	Email    *string
	Password *string
	Age      *int64
}

// Empty reports whether the update touches no fields.
func (u Update) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Password == nil && u.Age == nil
}

// ParseUpdate checks the raw field mapping against the allow-list and
// validates each value. Any key outside {name, email, password, age} rejects
// the whole update before any field is interpreted.
func ParseUpdate(fields map[string]any) (Update, error) {
	for key := range fields {
		if !allowedUpdateFields[key] {
			return Update{}, ErrUpdateNotAllowed
		}
	}

	var update Update
	if raw, ok := fields["name"]; ok {
		value, ok := raw.(string)
		if !ok {
			return Update{}, invalidValue("name")
		}
		name, err := NormalizeName(value)
		if err != nil {
			return Update{}, err
		}
		update.Name = &name
	}
	if raw, ok := fields["email"]; ok {
		value, ok := raw.(string)
		if !ok {
			return Update{}, invalidValue("email")
		}
		email, err := NormalizeEmail(value)
		if err != nil {
			return Update{}, err
		}
		update.Email = &email
	}
	if raw, ok := fields["password"]; ok {
		value, ok := raw.(string)
		if !ok {
			return Update{}, invalidValue("password")
		}
		password, err := NormalizePassword(value)
		if err != nil {
			return Update{}, err
		}
		update.Password = &password
	}
	if raw, ok := fields["age"]; ok {
		age, ok := toInt64(raw)
		if !ok {
			return Update{}, invalidValue("age")
		}
		if err := ValidateAge(age); err != nil {
			return Update{}, err
		}
		update.Age = &age
	}
	return update, nil
}

// toInt64 accepts the integral numeric forms a decoded JSON body can carry.
func toInt64(raw any) (int64, bool) {
	switch value := raw.(type) {
	case float64:
		if value != math.Trunc(value) {
			return 0, false
		}
		return int64(value), true
	case int:
		return int64(value), true
	case int64:
		return value, true
	default:
		return 0, false
	}
}

func invalidValue(field string) error {
	return apperrors.WithMetadata(apperrors.CodeUserUpdateInvalidValue, "invalid value for "+field, map[string]string{"field": field})
}
