package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bar-table-reservation/internal/hold"
	"github.com/iliyamo/bar-table-reservation/internal/model"
	"github.com/iliyamo/bar-table-reservation/internal/repository"
)

// StaffHandler groups the repositories staff and admins use to run a
// bar: floor layout, drink menu, events and the booking pipeline.
// Staff accounts are pinned to a single bar; admins may operate on any.
type StaffHandler struct {
	Accounts *repository.AccountRepo
	Tables   *repository.TableRepo
	Types    *repository.TableTypeRepo
	Drinks   *repository.DrinkRepo
	Events   *repository.EventRepo
	Bookings *repository.BookingRepo
	Holds    *hold.Manager
}

// NewStaffHandler constructs a StaffHandler and panics if any dependency is nil.
func NewStaffHandler(accounts *repository.AccountRepo, tables *repository.TableRepo, types *repository.TableTypeRepo, drinks *repository.DrinkRepo, events *repository.EventRepo, bookings *repository.BookingRepo, holds *hold.Manager) *StaffHandler {
	if accounts == nil || tables == nil || types == nil || drinks == nil || events == nil || bookings == nil || holds == nil {
		panic("nil dependency passed to NewStaffHandler")
	}
	return &StaffHandler{Accounts: accounts, Tables: tables, Types: types, Drinks: drinks, Events: events, Bookings: bookings, Holds: holds}
}

// authorizeBar checks that the caller may operate on the bar. Admins
// always pass; staff must be assigned to the bar. When ok is false the
// failure response has already been written and the handler must return
// the accompanying error value.
func (h *StaffHandler) authorizeBar(c echo.Context, barID uint64) (bool, error) {
	if currentRole(c) == model.RoleAdmin {
		return true, nil
	}
	accountID, err := getAccountID(c)
	if err != nil {
		return false, c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	a, err := h.Accounts.GetByID(ctx, accountID)
	if err != nil {
		return false, c.JSON(http.StatusInternalServerError, echo.Map{"error": "load account failed"})
	}
	if a.Role != model.RoleStaff || a.BarID != barID {
		return false, c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return true, nil
}

// ListHolds handles GET /v1/staff/bars/:bar_id/holds so staff can see
// the live hold state of their floor, including recently released and
// expired slots that are still within their retention window.
func (h *StaffHandler) ListHolds(c echo.Context) error {
	barID, ok := pathID(c, "bar_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bar id"})
	}
	if ok, err := h.authorizeBar(c, barID); !ok {
		return err
	}
	items, err := h.Holds.ListHolds(c.Request().Context(), barID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load holds"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
