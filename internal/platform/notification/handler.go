package notification

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meditrack/meditrack/internal/platform/apperr"
	"github.com/meditrack/meditrack/pkg/pagination"
)

// Handler exposes the outbox over HTTP.
type Handler struct {
	manager *Manager
}

func NewHandler(m *Manager) *Handler {
	return &Handler{manager: m}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/notifications")
	g.GET("", h.List)
	g.GET("/stats", h.Stats)
	g.GET("/:id", h.Get)
	g.POST("/:id/retry", h.Retry)
}

// List handles GET /notifications?recipient=&appointment_id=&status=
func (h *Handler) List(c echo.Context) error {
	f := Filter{
		Recipient:     c.QueryParam("recipient"),
		AppointmentID: c.QueryParam("appointment_id"),
		Status:        Status(c.QueryParam("status")),
	}
	switch f.Status {
	case "", StatusPending, StatusSent, StatusFailed:
	default:
		return apperr.InvalidData("status", "status must be one of [pending sent failed]")
	}

	items := h.manager.List(c.Request().Context(), f)
	return c.JSON(http.StatusOK, pagination.Paginate(items, pagination.FromContext(c)))
}

func (h *Handler) Get(c echo.Context) error {
	n, err := h.manager.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}

// Retry handles POST /notifications/:id/retry. A retry that fails again
// still answers 200 with the failed notification.
func (h *Handler) Retry(c echo.Context) error {
	n, err := h.manager.Retry(c.Request().Context(), c.Param("id"))
	if n == nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}

func (h *Handler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.manager.Stats(c.Request().Context()))
}
