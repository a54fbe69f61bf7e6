package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AkashKarnatak/task-manager-api/internal/auth/token"
	"github.com/AkashKarnatak/task-manager-api/internal/auth/user"
	"github.com/AkashKarnatak/task-manager-api/internal/platform/requestctx"
)

func (h *Handler) signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	created, raw, err := h.auth.Signup(c.Request().Context(), user.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, sessionResponse{
		User:  newUserView(created),
		Token: raw,
	})
}

func (h *Handler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	u, raw, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, sessionResponse{
		User:  newUserView(u),
		Token: raw,
	})
}

func (h *Handler) logout(c echo.Context) error {
	identity, ok := requestctx.IdentityFromContext(c.Request().Context())
	if !ok {
		return writeError(c, token.ErrInvalidToken)
	}

	if err := h.auth.Logout(c.Request().Context(), identity.UserID, identity.Token); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

func (h *Handler) logoutAll(c echo.Context) error {
	identity, ok := requestctx.IdentityFromContext(c.Request().Context())
	if !ok {
		return writeError(c, token.ErrInvalidToken)
	}

	if err := h.auth.LogoutAll(c.Request().Context(), identity.UserID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

func (h *Handler) getProfile(c echo.Context) error {
	identity, ok := requestctx.IdentityFromContext(c.Request().Context())
	if !ok {
		return writeError(c, token.ErrInvalidToken)
	}

	u, err := h.auth.GetProfile(c.Request().Context(), identity.UserID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, newUserView(u))
}

func (h *Handler) updateProfile(c echo.Context) error {
	identity, ok := requestctx.IdentityFromContext(c.Request().Context())
	if !ok {
		return writeError(c, token.ErrInvalidToken)
	}

	var fields map[string]any
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	u, err := h.auth.UpdateProfile(c.Request().Context(), identity.UserID, fields)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, newUserView(u))
}

func (h *Handler) deleteAccount(c echo.Context) error {
	identity, ok := requestctx.IdentityFromContext(c.Request().Context())
	if !ok {
		return writeError(c, token.ErrInvalidToken)
	}

	u, err := h.auth.DeleteAccount(c.Request().Context(), identity.UserID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, newUserView(u))
}
