package scheduling

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/meditrack/meditrack/internal/platform/apperr"
	"github.com/meditrack/meditrack/pkg/pagination"
)

type Handler struct {
	lc *Lifecycle
}

func NewHandler(lc *Lifecycle) *Handler {
	return &Handler{lc: lc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/appointments")
	g.POST("", h.CreateAppointment)
	g.GET("", h.ListAppointments)
	g.GET("/upcoming", h.UpcomingAppointments)
	g.GET("/analytics", h.AppointmentAnalytics)
	g.GET("/:id", h.GetAppointment)
	g.PUT("/:id/cancel", h.CancelAppointment)
	g.PUT("/:id/status", h.UpdateAppointmentStatus)
}

type createAppointmentRequest struct {
	DoctorID  string `json:"doctorId" validate:"notblank"`
	PatientID string `json:"patientId" validate:"notblank"`
	DateTime  string `json:"dateTime" validate:"notblank"`
	Notes     string `json:"notes"`
}

// Accepted dateTime layouts; zone-less values are read as UTC.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

func parseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperr.InvalidData("dateTime", "dateTime must be an ISO-8601 date-time")
}

func parseStatusParam(raw string) (Status, error) {
	st, ok := ParseStatus(raw)
	if !ok {
		return "", apperr.InvalidData("status", "Invalid appointment status: "+raw)
	}
	return st, nil
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	var req createAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	at, err := parseDateTime(req.DateTime)
	if err != nil {
		return err
	}

	a, err := h.lc.Create(c.Request().Context(), strings.TrimSpace(req.DoctorID), strings.TrimSpace(req.PatientID), at, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) GetAppointment(c echo.Context) error {
	a, err := h.lc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	f := Filter{
		DoctorID:  c.QueryParam("doctor_id"),
		PatientID: c.QueryParam("patient_id"),
	}
	if raw := c.QueryParam("status"); raw != "" {
		st, err := parseStatusParam(raw)
		if err != nil {
			return err
		}
		f.Status = st
	}

	items, err := h.lc.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.Paginate(items, pagination.FromContext(c)))
}

func (h *Handler) UpcomingAppointments(c echo.Context) error {
	items, err := h.lc.Upcoming(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.Paginate(items, pagination.FromContext(c)))
}

func (h *Handler) AppointmentAnalytics(c echo.Context) error {
	stats, err := h.lc.Analytics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) CancelAppointment(c echo.Context) error {
	a, err := h.lc.Cancel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) UpdateAppointmentStatus(c echo.Context) error {
	st, err := parseStatusParam(c.QueryParam("status"))
	if err != nil {
		return err
	}
	a, err := h.lc.UpdateStatus(c.Request().Context(), c.Param("id"), st)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}
