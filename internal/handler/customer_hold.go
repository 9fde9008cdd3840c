package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bar-table-reservation/internal/hold"
)

// HoldHandler exposes the table hold endpoints. It is a thin HTTP shim:
// all concurrency rules live in the hold manager, the handler only
// validates input and translates sentinel errors to status codes.
type HoldHandler struct {
	Holds *hold.Manager
}

func NewHoldHandler(m *hold.Manager) *HoldHandler {
	if m == nil {
		panic("nil manager passed to NewHoldHandler")
	}
	return &HoldHandler{Holds: m}
}

type holdReq struct {
	ReservationDate string `json:"reservation_date"` // YYYY-MM-DD
	ReservationTime string `json:"reservation_time"` // HH:MM
}

func (r *holdReq) normalize() error {
	r.ReservationDate = strings.TrimSpace(r.ReservationDate)
	r.ReservationTime = strings.TrimSpace(r.ReservationTime)
	if _, err := time.Parse("2006-01-02", r.ReservationDate); err != nil {
		return errors.New("reservation_date must be YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", r.ReservationTime); err != nil {
		return errors.New("reservation_time must be HH:MM")
	}
	return nil
}

// PlaceHold handles POST /v1/bars/:bar_id/tables/:table_id/hold. On
// success the table is held for the caller until the TTL lapses or the
// hold is released. Holding a slot the caller already holds refreshes
// the expiry instead of failing.
func (h *HoldHandler) PlaceHold(c echo.Context) error {
	accountID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	barID, ok := pathID(c, "bar_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bar id"})
	}
	tableID, ok := pathID(c, "table_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}
	var req holdReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.normalize(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	rec, err := h.Holds.Hold(c.Request().Context(), barID, tableID, req.ReservationDate, req.ReservationTime, accountID)
	if err != nil {
		switch {
		case errors.Is(err, hold.ErrTableNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		case errors.Is(err, hold.ErrTableHeld):
			return c.JSON(http.StatusConflict, echo.Map{"error": "table already held"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to place hold"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"hold": rec})
}

// ReleaseHold handles POST /v1/bars/:bar_id/tables/:table_id/release.
// Releasing a slot nobody holds succeeds silently unless strict release
// is configured, in which case it reports 404.
func (h *HoldHandler) ReleaseHold(c echo.Context) error {
	accountID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	barID, ok := pathID(c, "bar_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bar id"})
	}
	tableID, ok := pathID(c, "table_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}
	var req holdReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.normalize(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	rec, err := h.Holds.Release(c.Request().Context(), barID, tableID, req.ReservationDate, req.ReservationTime, accountID)
	if err != nil {
		switch {
		case errors.Is(err, hold.ErrTableNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		case errors.Is(err, hold.ErrHoldNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no active hold"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to release hold"})
	}
	return c.JSON(http.StatusOK, echo.Map{"hold": rec})
}
