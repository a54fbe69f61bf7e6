// Package httpapi exposes the account and task services over HTTP using
// echo. Handlers translate between JSON payloads and the service layer;
// all domain rules live below this package.
package httpapi

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	authservice "github.com/AkashKarnatak/task-manager-api/internal/auth/service"
	taskservice "github.com/AkashKarnatak/task-manager-api/internal/task/service"
)

// Handler holds the services the HTTP surface dispatches to.
type Handler struct {
	auth   *authservice.Service
	tasks  *taskservice.Service
	tracer trace.Tracer
}

// NewHandler creates a Handler backed by the provided services.
func NewHandler(auth *authservice.Service, tasks *taskservice.Service) *Handler {
	return &Handler{
		auth:   auth,
		tasks:  tasks,
		tracer: otel.Tracer("httpapi"),
	}
}

// Register wires all routes onto the echo instance. Session entry points
// are open; everything else sits behind the auth gate.
func (h *Handler) Register(e *echo.Echo) {
	e.Use(h.traceRequests)

	e.POST("/users", h.signup)
	e.POST("/users/login", h.login)

	users := e.Group("/users", h.requireAuth)
	users.POST("/logout", h.logout)
	users.POST("/logoutAll", h.logoutAll)
	users.GET("/me", h.getProfile)
	users.PATCH("/me", h.updateProfile)
	users.DELETE("/me", h.deleteAccount)

	tasks := e.Group("/tasks", h.requireAuth)
	tasks.POST("", h.createTask)
	tasks.GET("", h.listTasks)
	tasks.GET("/:id", h.getTask)
	tasks.PATCH("/:id", h.updateTask)
	tasks.DELETE("/:id", h.deleteTask)
}

func (h *Handler) traceRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := h.tracer.Start(c.Request().Context(), c.Request().Method+" "+c.Path(),
			trace.WithAttributes(
				attribute.String("http.method", c.Request().Method),
				attribute.String("http.route", c.Path()),
			))
		defer span.End()

		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
