package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bar-table-reservation/internal/hold"
	"github.com/iliyamo/bar-table-reservation/internal/model"
	"github.com/iliyamo/bar-table-reservation/internal/repository"
)

// PublicHandler serves the unauthenticated browse endpoints: bar
// listings, table availability, drink menus, events and feedback.
// Availability merges the persisted table rows with the live hold state
// so viewers see tables flip to held in near real time.
type PublicHandler struct {
	Bars     *repository.BarRepo
	Tables   *repository.TableRepo
	Types    *repository.TableTypeRepo
	Drinks   *repository.DrinkRepo
	Events   *repository.EventRepo
	Feedback *repository.FeedbackRepo
	Holds    *hold.Manager
}

func NewPublicHandler(bars *repository.BarRepo, tables *repository.TableRepo, types *repository.TableTypeRepo, drinks *repository.DrinkRepo, events *repository.EventRepo, feedback *repository.FeedbackRepo, holds *hold.Manager) *PublicHandler {
	if bars == nil || tables == nil || types == nil || drinks == nil || events == nil || feedback == nil || holds == nil {
		panic("nil dependency passed to NewPublicHandler")
	}
	return &PublicHandler{Bars: bars, Tables: tables, Types: types, Drinks: drinks, Events: events, Feedback: feedback, Holds: holds}
}

// ListBars handles GET /v1/bars.
func (h *PublicHandler) ListBars(c echo.Context) error {
	bars, err := h.Bars.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bars"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": bars})
}

// GetBar handles GET /v1/bars/:bar_id.
func (h *PublicHandler) GetBar(c echo.Context) error {
	barID, ok := pathID(c, "bar_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bar id"})
	}
	b, err := h.Bars.GetByID(c.Request().Context(), barID)
	if err != nil {
		if err == repository.ErrBarNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bar not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bar"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": b})
}

// tableView is a table row decorated with live hold state for one slot.
type tableView struct {
	*model.BarTable
	IsHeld     bool   `json:"is_held"`
	HoldExpiry string `json:"hold_expiry,omitempty"`
}

// ListTables handles GET /v1/bars/:bar_id/tables. With ?date= and
// ?time= query parameters the is_held flag reflects the live hold state
// for that slot; without them every table reports free, since a hold
// only ever covers a specific slot.
func (h *PublicHandler) ListTables(c echo.Context) error {
	barID, ok := pathID(c, "bar_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bar id"})
	}
	ctx := c.Request().Context()

	tables, err := h.Tables.ListByBar(ctx, barID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load tables"})
	}

	date := strings.TrimSpace(c.QueryParam("date"))
	timeSlot := strings.TrimSpace(c.QueryParam("time"))

	held := map[uint64]hold.TableHold{}
	if date != "" && timeSlot != "" {
		holds, err := h.Holds.ListHolds(ctx, barID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load holds"})
		}
		for _, rec := range holds {
			if rec.IsHeld && rec.ReservationDate == date && rec.ReservationTime == timeSlot {
				held[rec.TableID] = rec
			}
		}
	}

	out := make([]tableView, 0, len(tables))
	for _, t := range tables {
		v := tableView{BarTable: t}
		if rec, ok := held[t.ID]; ok {
			v.IsHeld = true
			v.HoldExpiry = rec.HoldExpiry.UTC().Format(time.RFC3339)
		}
		out = append(out, v)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ListTableTypes handles GET /v1/bars/:bar_id/table-types.
func (h *PublicHandler) ListTableTypes(c echo.Context) error {
	barID, ok := pathID(c, "bar_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bar id"})
	}
	types, err := h.Types.ListByBar(c.Request().Context(), barID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load table types"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": types})
}

// ListDrinks handles GET /v1/bars/:bar_id/drinks.
func (h *PublicHandler) ListDrinks(c echo.Context) error {
	barID, ok := pathID(c, "bar_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bar id"})
	}
	drinks, err := h.Drinks.ListByBar(c.Request().Context(), barID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load drinks"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": drinks})
}

// ListDrinkCategories handles GET /v1/drink-categories.
func (h *PublicHandler) ListDrinkCategories(c echo.Context) error {
	cats, err := h.Drinks.ListCategories(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load categories"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": cats})
}

// ListEvents handles GET /v1/bars/:bar_id/events and returns upcoming
// events only.
func (h *PublicHandler) ListEvents(c echo.Context) error {
	barID, ok := pathID(c, "bar_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bar id"})
	}
	events, err := h.Events.ListUpcomingByBar(c.Request().Context(), barID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load events"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": events})
}

// ListFeedback handles GET /v1/bars/:bar_id/feedback.
func (h *PublicHandler) ListFeedback(c echo.Context) error {
	barID, ok := pathID(c, "bar_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bar id"})
	}
	items, err := h.Feedback.ListByBar(c.Request().Context(), barID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load feedback"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
