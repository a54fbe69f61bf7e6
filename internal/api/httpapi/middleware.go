package httpapi

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/AkashKarnatak/task-manager-api/internal/auth/token"
	"github.com/AkashKarnatak/task-manager-api/internal/platform/requestctx"
)

// requireAuth validates the bearer token against the signing key and the
// user's valid-token set, then attaches the identity to the request context.
func (h *Handler) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return writeError(c, token.ErrInvalidToken)
		}

		ctx := c.Request().Context()
		u, err := h.auth.Authenticate(ctx, raw)
		if err != nil {
			return writeError(c, err)
		}

		ctx = requestctx.WithIdentity(ctx, requestctx.Identity{
			UserID: u.ID,
			Token:  raw,
		})
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if raw == "" {
		return "", false
	}
	return raw, true
}
