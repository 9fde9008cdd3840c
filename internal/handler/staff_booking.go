package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bar-table-reservation/internal/model"
	"github.com/iliyamo/bar-table-reservation/internal/repository"
)

// ListBarBookings handles GET /v1/staff/bars/:bar_id/bookings with an
// optional ?status= filter.
func (h *StaffHandler) ListBarBookings(c echo.Context) error {
	barID, ok := pathID(c, "bar_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bar id"})
	}
	if ok, err := h.authorizeBar(c, barID); !ok {
		return err
	}
	status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	switch status {
	case "", model.BookingPending, model.BookingServing, model.BookingCompleted, model.BookingCancelled:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}
	items, err := h.Bookings.ListByBarAndStatus(c.Request().Context(), barID, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateBookingStatus handles POST /v1/staff/bars/:bar_id/bookings/:id/status.
// Only forward transitions are allowed (PENDING to SERVING or CANCELLED,
// SERVING to COMPLETED); anything else reports 409.
func (h *StaffHandler) UpdateBookingStatus(c echo.Context) error {
	barID, ok := pathID(c, "bar_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bar id"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	if ok, err := h.authorizeBar(c, barID); !ok {
		return err
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status required"})
	}

	err := h.Bookings.UpdateStatus(c.Request().Context(), id, barID, status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "invalid status transition"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update status"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Revenue handles GET /v1/staff/bars/:bar_id/revenue?from=&to= and
// returns completed-booking revenue grouped by reservation date. The
// range defaults to the last 30 days.
func (h *StaffHandler) Revenue(c echo.Context) error {
	barID, ok := pathID(c, "bar_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bar id"})
	}
	if ok, err := h.authorizeBar(c, barID); !ok {
		return err
	}
	const layout = "2006-01-02"
	now := time.Now().UTC()
	from := strings.TrimSpace(c.QueryParam("from"))
	to := strings.TrimSpace(c.QueryParam("to"))
	if from == "" {
		from = now.AddDate(0, 0, -30).Format(layout)
	}
	if to == "" {
		to = now.Format(layout)
	}
	if _, err := time.Parse(layout, from); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be YYYY-MM-DD"})
	}
	if _, err := time.Parse(layout, to); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must be YYYY-MM-DD"})
	}

	byDate, err := h.Bookings.RevenueByBar(c.Request().Context(), barID, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load revenue"})
	}
	var total uint64
	for _, cents := range byDate {
		total += cents
	}
	return c.JSON(http.StatusOK, echo.Map{
		"from":        from,
		"to":          to,
		"by_date":     byDate,
		"total_cents": total,
	})
}
