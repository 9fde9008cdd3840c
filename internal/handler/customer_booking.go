package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bar-table-reservation/internal/hold"
	"github.com/iliyamo/bar-table-reservation/internal/model"
	"github.com/iliyamo/bar-table-reservation/internal/queue"
	"github.com/iliyamo/bar-table-reservation/internal/repository"
)

// BookingPublisher publishes a confirmation event after a booking
// commits. Satisfied by *queue.Publisher; nil disables publishing.
type BookingPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event queue.BookingConfirmedEvent) error
}

// BookingHandler converts holds into bookings and serves the customer's
// booking views. The conversion path re-validates against the bookings
// table inside the transaction: a hold is advisory, the database is the
// source of truth.
type BookingHandler struct {
	Bookings  *repository.BookingRepo
	Drinks    *repository.DrinkRepo
	Bars      *repository.BarRepo
	Tables    *repository.TableRepo
	Holds     *hold.Manager
	Publisher BookingPublisher
}

func NewBookingHandler(bookings *repository.BookingRepo, drinks *repository.DrinkRepo, bars *repository.BarRepo, tables *repository.TableRepo, holds *hold.Manager, pub BookingPublisher) *BookingHandler {
	if bookings == nil || drinks == nil || bars == nil || tables == nil || holds == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings, Drinks: drinks, Bars: bars, Tables: tables, Holds: holds, Publisher: pub}
}

type drinkLine struct {
	DrinkID  uint64 `json:"drink_id"`
	Quantity uint32 `json:"quantity"`
}

type createBookingReq struct {
	BarID      uint64      `json:"bar_id"`
	TableIDs   []uint64    `json:"table_ids"`
	holdReq                // reservation_date / reservation_time
	GuestCount uint32      `json:"guest_count"`
	Note       string      `json:"note"`
	Drinks     []drinkLine `json:"drinks"`
}

// CreateBooking handles POST /v1/bookings. Every requested table must
// currently be held by the caller for the slot; the handler then books
// all of them atomically, drops the holds and emits a confirmation
// event. Returns 409 when a table was already booked by someone else,
// which can happen when the caller's hold expired and the slot was
// rebooked before this request arrived.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	accountID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.BarID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bar_id required"})
	}
	if err := req.normalize(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	// Deduplicate table IDs; a repeated ID must not double-book.
	unique := make([]uint64, 0, len(req.TableIDs))
	seen := make(map[uint64]struct{})
	for _, id := range req.TableIDs {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "table_ids is required"})
	}

	ctx := c.Request().Context()

	bar, err := h.Bars.GetByID(ctx, req.BarID)
	if err != nil {
		if err == repository.ErrBarNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bar not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bar"})
	}

	// The caller must hold every requested table for the slot.
	holds, err := h.Holds.ListHolds(ctx, req.BarID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load holds"})
	}
	mine := make(map[uint64]bool)
	for _, rec := range holds {
		if rec.IsHeld && rec.AccountID == accountID &&
			rec.ReservationDate == req.ReservationDate && rec.ReservationTime == req.ReservationTime {
			mine[rec.TableID] = true
		}
	}
	missing := make([]uint64, 0)
	for _, id := range unique {
		if !mine[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":    "hold required before booking",
			"not_held": missing,
		})
	}

	// Resolve table names now; they go into the confirmation event.
	tableNames := make([]string, 0, len(unique))
	for _, id := range unique {
		t, err := h.Tables.GetByIDAndBar(ctx, id, req.BarID)
		if err != nil {
			if err == repository.ErrTableNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load table"})
		}
		tableNames = append(tableNames, t.Name)
	}

	// Price the drink pre-order against the bar's live menu.
	var total uint64
	lines := make([]model.BookingDrink, 0, len(req.Drinks))
	if len(req.Drinks) > 0 {
		ids := make([]uint64, 0, len(req.Drinks))
		for _, d := range req.Drinks {
			if d.DrinkID == 0 || d.Quantity == 0 {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid drink line"})
			}
			ids = append(ids, d.DrinkID)
		}
		prices, err := h.Drinks.PricesByIDs(ctx, req.BarID, ids)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to price drinks"})
		}
		for _, d := range req.Drinks {
			p, ok := prices[d.DrinkID]
			if !ok {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "drink not available at this bar"})
			}
			lines = append(lines, model.BookingDrink{DrinkID: d.DrinkID, Quantity: d.Quantity, PriceCents: p})
			total += uint64(p) * uint64(d.Quantity)
		}
	}

	tx, err := h.Bookings.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Final re-validation: a hold is in-memory state, a booking is not.
	for _, id := range unique {
		taken, err := h.Bookings.HasActiveBookingTx(ctx, tx, id, req.ReservationDate, req.ReservationTime)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
		}
		if taken {
			return c.JSON(http.StatusConflict, echo.Map{"error": "table already booked", "table_id": id})
		}
	}

	booking := &model.Booking{
		AccountID:       accountID,
		BarID:           req.BarID,
		ReservationDate: req.ReservationDate,
		ReservationTime: req.ReservationTime,
		GuestCount:      req.GuestCount,
		Note:            strings.TrimSpace(req.Note),
		TotalCents:      total,
	}
	if err := h.Bookings.CreateTx(ctx, tx, booking, unique, lines); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	// The booking now owns the slot; drop the holds so the table state
	// viewers see matches the database. Errors here are harmless, the
	// TTL would clean up anyway.
	for _, id := range unique {
		_, _ = h.Holds.Release(ctx, req.BarID, id, req.ReservationDate, req.ReservationTime, accountID)
	}

	if h.Publisher != nil {
		ev := queue.BookingConfirmedEvent{
			BookingID:       booking.ID,
			BookingCode:     booking.Code,
			AccountID:       accountID,
			BarID:           bar.ID,
			BarName:         bar.Name,
			ReservationDate: booking.ReservationDate,
			ReservationTime: booking.ReservationTime,
			TableNames:      tableNames,
			TotalCents:      total,
			ConfirmedAt:     time.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = h.Publisher.PublishBookingConfirmed(ctx, ev)
		}()
	}

	return c.JSON(http.StatusCreated, echo.Map{"booking": booking})
}

// ListBookings handles GET /v1/bookings and returns the caller's
// bookings, newest first.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	accountID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Bookings.ListByAccount(c.Request().Context(), accountID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetBooking handles GET /v1/bookings/:id with table and drink lines.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	accountID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()
	b, err := h.Bookings.GetByIDForAccount(ctx, id, accountID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking"})
	}
	tableIDs, err := h.Bookings.TableIDs(ctx, b.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking tables"})
	}
	drinks, err := h.Bookings.Drinks(ctx, b.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking drinks"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"booking":   b,
		"table_ids": tableIDs,
		"drinks":    drinks,
	})
}

// CancelBooking handles POST /v1/bookings/:id/cancel. Only pending
// bookings can be cancelled by the customer.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	accountID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	err = h.Bookings.CancelByAccount(c.Request().Context(), id, accountID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking can no longer be cancelled"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel booking"})
	}
	return c.NoContent(http.StatusNoContent)
}
