package discharge

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/apperror"
	"github.com/hms/hms/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the pipeline. Stage operations gate on the staff
// role carried in the request body, not the route middleware, so the
// role check and its outcome stay inside the stage itself.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/discharges", h.InitiateDischarge)
	api.POST("/discharges/:id/billing", h.CalculateBilling)
	api.POST("/billings/:id/payment", h.ProcessPayment)
	api.POST("/discharges/:id/bed-release", h.ReleaseBed)

	api.GET("/discharges", h.ListDischarges)
	api.GET("/discharges/:id", h.GetDischarge)
	api.GET("/discharges/:id/billing", h.GetBilling)
	api.GET("/billings/:id/payment", h.GetPayment)
}

type stageResponse struct {
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

func (h *Handler) InitiateDischarge(c echo.Context) error {
	var in DischargeInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.svc.InitiateDischarge(c.Request().Context(), in)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), apperror.Message(err))
	}
	return c.JSON(http.StatusCreated, stageResponse{
		Data:    rec,
		Message: "medical discharge completed",
	})
}

func (h *Handler) CalculateBilling(c echo.Context) error {
	dischargeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid discharge id")
	}
	var in BillingInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	bill, err := h.svc.CalculateBilling(c.Request().Context(), dischargeID, in)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), apperror.Message(err))
	}
	return c.JSON(http.StatusCreated, stageResponse{
		Data:    bill,
		Message: "billing calculated",
	})
}

func (h *Handler) ProcessPayment(c echo.Context) error {
	billingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid billing id")
	}
	var in PaymentInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	pay, err := h.svc.ProcessPayment(c.Request().Context(), billingID, in)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), apperror.Message(err))
	}
	return c.JSON(http.StatusCreated, stageResponse{
		Data:    pay,
		Message: "payment processed",
	})
}

func (h *Handler) ReleaseBed(c echo.Context) error {
	dischargeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid discharge id")
	}
	var in BedReleaseInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rel, err := h.svc.ReleaseBed(c.Request().Context(), dischargeID, in)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), apperror.Message(err))
	}
	return c.JSON(http.StatusCreated, stageResponse{
		Data:    rel,
		Message: "bed released",
	})
}

func (h *Handler) GetDischarge(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	rec, err := h.svc.GetDischarge(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), apperror.Message(err))
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) ListDischarges(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListDischarges(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), apperror.Message(err))
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetBilling(c echo.Context) error {
	dischargeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	bill, items, err := h.svc.GetBillingForDischarge(c.Request().Context(), dischargeID)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), apperror.Message(err))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"billing": bill,
		"items":   items,
	})
}

func (h *Handler) GetPayment(c echo.Context) error {
	billingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	pay, err := h.svc.GetPaymentForBilling(c.Request().Context(), billingID)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), apperror.Message(err))
	}
	return c.JSON(http.StatusOK, pay)
}
