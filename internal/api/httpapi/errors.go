package httpapi

import (
	"github.com/labstack/echo/v4"

	apperrors "github.com/AkashKarnatak/task-manager-api/internal/platform/errors"
)

// writeError maps a service error to its HTTP status and a JSON body. Codes
// unknown to the error package come back as a generic 500 so internal
// details never reach clients.
func writeError(c echo.Context, err error) error {
	status := apperrors.StatusFor(err)
	message := "internal error"
	if code := apperrors.GetCode(err); code != apperrors.CodeUnknown {
		message = err.Error()
	}
	return c.JSON(status, echo.Map{"error": message})
}
