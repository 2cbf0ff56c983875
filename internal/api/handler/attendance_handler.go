package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/workpulse/attendance-api/internal/api/metrics"
	"github.com/workpulse/attendance-api/internal/core/domain"
	"github.com/workpulse/attendance-api/internal/core/ports"
)

// AttendanceHandler handles HTTP requests for the attendance ledger.
type AttendanceHandler struct {
	service ports.AttendanceService
}

func NewAttendanceHandler(service ports.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

// CheckIn opens today's attendance record for the authenticated user.
//
// @Summary      Check in
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      checkInRequest  true  "Geolocation"
// @Success      201   {object}  checkInResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/attendance/checkin [post]
func (h *AttendanceHandler) CheckIn(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req checkInRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	result, err := h.service.CheckIn(c.Request().Context(), ports.CheckInInput{
		Username:  username,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		metrics.CheckInsTotal.WithLabelValues(checkInFailureLabel(err)).Inc()
		return err
	}

	metrics.CheckInsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusCreated, checkInResponse{CheckInTime: result.CheckInTime})
}

// CheckOut closes today's open record for the authenticated user.
//
// @Summary      Check out
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  checkOutResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/attendance/checkout [post]
func (h *AttendanceHandler) CheckOut(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.CheckOut(c.Request().Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrNoOpenCheckIn) {
			metrics.CheckOutsTotal.WithLabelValues("no_open_checkin").Inc()
		} else {
			metrics.CheckOutsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.CheckOutsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, checkOutResponse{CheckOutTime: result.CheckOutTime})
}

// History returns the authenticated user's attendance grouped by date,
// most recent first.
//
// @Summary      Attendance history
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  historyResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/attendance/history [get]
func (h *AttendanceHandler) History(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	summaries, err := h.service.History(c.Request().Context(), username)
	if err != nil {
		return err
	}
	if summaries == nil {
		summaries = []domain.DaySummary{}
	}

	return c.JSON(http.StatusOK, historyResponse{Data: summaries})
}

// AdminReport returns attendance across all users. The AdminOnly
// middleware has already gated access.
//
// @Summary      Admin attendance report
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  historyResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/attendance [get]
func (h *AttendanceHandler) AdminReport(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	summaries, err := h.service.AdminReport(c.Request().Context())
	if err != nil {
		return err
	}
	if summaries == nil {
		summaries = []domain.DaySummary{}
	}

	return c.JSON(http.StatusOK, historyResponse{Data: summaries})
}

func checkInFailureLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingLocation):
		return "missing_location"
	case errors.Is(err, domain.ErrInvalidCoordinates):
		return "invalid_coordinates"
	case errors.Is(err, domain.ErrAlreadyCheckedIn):
		return "already_checked_in"
	default:
		return "error"
	}
}
