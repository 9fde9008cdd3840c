package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bar-table-reservation/internal/model"
	"github.com/iliyamo/bar-table-reservation/internal/repository"
)

type drinkReq struct {
	CategoryID uint64 `json:"category_id"`
	Name       string `json:"name"`
	PriceCents uint32 `json:"price_cents"`
}

func (r *drinkReq) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return "name is required"
	}
	if r.CategoryID == 0 {
		return "category_id is required"
	}
	if r.PriceCents == 0 {
		return "price_cents must be positive"
	}
	return ""
}

// CreateDrink handles POST /v1/staff/bars/:bar_id/drinks.
func (h *StaffHandler) CreateDrink(c echo.Context) error {
	barID, ok := pathID(c, "bar_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bar id"})
	}
	if ok, err := h.authorizeBar(c, barID); !ok {
		return err
	}
	var req drinkReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	d := &model.Drink{
		BarID:      barID,
		CategoryID: req.CategoryID,
		Name:       req.Name,
		PriceCents: req.PriceCents,
	}
	if err := h.Drinks.Create(c.Request().Context(), d); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create drink"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": d})
}

// UpdateDrink handles PUT /v1/staff/bars/:bar_id/drinks/:id.
func (h *StaffHandler) UpdateDrink(c echo.Context) error {
	barID, ok := pathID(c, "bar_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bar id"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid drink id"})
	}
	if ok, err := h.authorizeBar(c, barID); !ok {
		return err
	}
	var req drinkReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	d := &model.Drink{
		ID:         id,
		BarID:      barID,
		CategoryID: req.CategoryID,
		Name:       req.Name,
		PriceCents: req.PriceCents,
	}
	if err := h.Drinks.Update(c.Request().Context(), d); err != nil {
		if err == repository.ErrDrinkNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "drink not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update drink"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": d})
}

// DeleteDrink handles DELETE /v1/staff/bars/:bar_id/drinks/:id.
// Soft-deleted drinks vanish from the menu but stay priced on old
// booking lines.
func (h *StaffHandler) DeleteDrink(c echo.Context) error {
	barID, ok := pathID(c, "bar_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bar id"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid drink id"})
	}
	if ok, err := h.authorizeBar(c, barID); !ok {
		return err
	}
	if err := h.Drinks.SoftDelete(c.Request().Context(), id, barID); err != nil {
		if err == repository.ErrDrinkNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "drink not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete drink"})
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateDrinkCategory handles POST /v1/staff/drink-categories.
// Categories are shared across bars, so any staff member may add one.
func (h *StaffHandler) CreateDrinkCategory(c echo.Context) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	cat := &model.DrinkCategory{Name: req.Name, Description: strings.TrimSpace(req.Description)}
	if err := h.Drinks.CreateCategory(c.Request().Context(), cat); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create category"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": cat})
}
