package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AkashKarnatak/task-manager-api/internal/auth/token"
	"github.com/AkashKarnatak/task-manager-api/internal/platform/requestctx"
	"github.com/AkashKarnatak/task-manager-api/internal/task"
	"github.com/AkashKarnatak/task-manager-api/internal/task/query"
)

func (h *Handler) createTask(c echo.Context) error {
	identity, ok := requestctx.IdentityFromContext(c.Request().Context())
	if !ok {
		return writeError(c, token.ErrInvalidToken)
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	created, err := h.tasks.Create(c.Request().Context(), identity.UserID, task.CreateTaskInput{
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, newTaskView(created))
}

func (h *Handler) listTasks(c echo.Context) error {
	identity, ok := requestctx.IdentityFromContext(c.Request().Context())
	if !ok {
		return writeError(c, token.ErrInvalidToken)
	}

	// Malformed filter or pagination values degrade to their defaults
	// instead of failing the request.
	q := query.Parse(c.QueryParams())

	tasks, err := h.tasks.List(c.Request().Context(), identity.UserID, q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, newTaskViews(tasks))
}

func (h *Handler) getTask(c echo.Context) error {
	identity, ok := requestctx.IdentityFromContext(c.Request().Context())
	if !ok {
		return writeError(c, token.ErrInvalidToken)
	}

	found, err := h.tasks.Get(c.Request().Context(), identity.UserID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, newTaskView(found))
}

func (h *Handler) updateTask(c echo.Context) error {
	identity, ok := requestctx.IdentityFromContext(c.Request().Context())
	if !ok {
		return writeError(c, token.ErrInvalidToken)
	}

	var fields map[string]any
	if err := (&echo.DefaultBinder{}).BindBody(c, &fields); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	updated, err := h.tasks.Update(c.Request().Context(), identity.UserID, c.Param("id"), fields)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, newTaskView(updated))
}

func (h *Handler) deleteTask(c echo.Context) error {
	identity, ok := requestctx.IdentityFromContext(c.Request().Context())
	if !ok {
		return writeError(c, token.ErrInvalidToken)
	}

	deleted, err := h.tasks.Delete(c.Request().Context(), identity.UserID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, newTaskView(deleted))
}
