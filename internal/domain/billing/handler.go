package billing

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/meditrack/meditrack/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/bills")
	g.POST("", h.GenerateBill)
	g.GET("", h.ListBills)
	g.GET("/analytics/revenue", h.RevenueReport)
	g.GET("/rates", h.GetRates)
	g.GET("/:id", h.GetBill)
	g.GET("/:id/summary", h.GetBillSummary)
}

type generateBillRequest struct {
	AppointmentID string `json:"appointmentId" validate:"notblank"`
	BillType      string `json:"billType"`
}

func (h *Handler) GenerateBill(c echo.Context) error {
	var req generateBillRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.BillType == "" {
		req.BillType = TagStandard
	}

	b, err := h.svc.GenerateBill(c.Request().Context(), strings.TrimSpace(req.AppointmentID), req.BillType)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *Handler) GetBill(c echo.Context) error {
	b, err := h.svc.GetBill(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) ListBills(c echo.Context) error {
	items, err := h.svc.ListBills(c.Request().Context(), Filter{
		PatientID:     c.QueryParam("patient_id"),
		AppointmentID: c.QueryParam("appointment_id"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.Paginate(items, pagination.FromContext(c)))
}

func (h *Handler) GetBillSummary(c echo.Context) error {
	sum, err := h.svc.GetBillSummary(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sum)
}

func (h *Handler) RevenueReport(c echo.Context) error {
	r, err := h.svc.RevenueReport(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// GetRates handles GET /bills/rates.
func (h *Handler) GetRates(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"rates": h.svc.Rates(),
		"rules": h.svc.registry.Names(),
	})
}
