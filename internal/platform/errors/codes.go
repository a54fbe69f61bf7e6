// Package errors provides structured error handling for the task manager.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// User errors
	CodeUserNameEmpty          Code = "USER_NAME_EMPTY"
	CodeUserEmailEmpty         Code = "USER_EMAIL_EMPTY"
	CodeUserEmailInvalid       Code = "USER_EMAIL_INVALID"
	CodeUserEmailTaken         Code = "USER_EMAIL_TAKEN"
	CodeUserPasswordTooShort   Code = "USER_PASSWORD_TOO_SHORT"
	CodeUserPasswordCommon     Code = "USER_PASSWORD_COMMON"
	CodeUserAgeNegative        Code = "USER_AGE_NEGATIVE"
	CodeUserUpdateNotAllowed   Code = "USER_UPDATE_NOT_ALLOWED"
	CodeUserUpdateInvalidValue Code = "USER_UPDATE_INVALID_VALUE"

	// Task errors
	CodeTaskDescriptionEmpty   Code = "TASK_DESCRIPTION_EMPTY"
	CodeTaskUpdateNotAllowed   Code = "TASK_UPDATE_NOT_ALLOWED"
	CodeTaskUpdateInvalidValue Code = "TASK_UPDATE_INVALID_VALUE"

	// Auth errors
	CodeAuthInvalidCredentials Code = "AUTH_INVALID_CREDENTIALS"
	CodeAuthTokenInvalid       Code = "AUTH_TOKEN_INVALID"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// Bad request - validation failures and disallowed updates
	case CodeUserNameEmpty,
		CodeUserEmailEmpty,
		CodeUserEmailInvalid,
		CodeUserEmailTaken,
		CodeUserPasswordTooShort,
		CodeUserPasswordCommon,
		CodeUserAgeNegative,
		CodeUserUpdateNotAllowed,
		CodeUserUpdateInvalidValue,
		CodeTaskDescriptionEmpty,
		CodeTaskUpdateNotAllowed,
		CodeTaskUpdateInvalidValue:
		return http.StatusBadRequest

	// Unauthorized - identity could not be established
	case CodeAuthInvalidCredentials,
		CodeAuthTokenInvalid:
		return http.StatusUnauthorized

	// Not found - missing records and records owned by someone else
	case CodeNotFound:
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}
