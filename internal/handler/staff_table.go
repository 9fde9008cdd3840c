package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bar-table-reservation/internal/model"
	"github.com/iliyamo/bar-table-reservation/internal/repository"
)

// ----- table types -----

type tableTypeReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MinGuests   uint32 `json:"min_guests"`
	MaxGuests   uint32 `json:"max_guests"`
}

func (r *tableTypeReq) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	if r.Name == "" {
		return "name is required"
	}
	if r.MinGuests == 0 || r.MaxGuests < r.MinGuests {
		return "guest range is invalid"
	}
	return ""
}

// CreateTableType handles POST /v1/staff/bars/:bar_id/table-types.
func (h *StaffHandler) CreateTableType(c echo.Context) error {
	barID, ok := pathID(c, "bar_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bar id"})
	}
	if ok, err := h.authorizeBar(c, barID); !ok {
		return err
	}
	var req tableTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	tt := &model.TableType{
		BarID:       barID,
		Name:        req.Name,
		Description: req.Description,
		MinGuests:   req.MinGuests,
		MaxGuests:   req.MaxGuests,
	}
	if err := h.Types.Create(c.Request().Context(), tt); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create table type"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": tt})
}

// UpdateTableType handles PUT /v1/staff/bars/:bar_id/table-types/:id.
func (h *StaffHandler) UpdateTableType(c echo.Context) error {
	barID, ok := pathID(c, "bar_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bar id"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table type id"})
	}
	if ok, err := h.authorizeBar(c, barID); !ok {
		return err
	}
	var req tableTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	tt := &model.TableType{
		ID:          id,
		BarID:       barID,
		Name:        req.Name,
		Description: req.Description,
		MinGuests:   req.MinGuests,
		MaxGuests:   req.MaxGuests,
	}
	if err := h.Types.Update(c.Request().Context(), tt); err != nil {
		if err == repository.ErrTableTypeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update table type"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": tt})
}

// DeleteTableType handles DELETE /v1/staff/bars/:bar_id/table-types/:id.
// Types still referenced by live tables cannot be removed.
func (h *StaffHandler) DeleteTableType(c echo.Context) error {
	barID, ok := pathID(c, "bar_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bar id"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table type id"})
	}
	if ok, err := h.authorizeBar(c, barID); !ok {
		return err
	}
	if err := h.Types.SoftDelete(c.Request().Context(), id, barID); err != nil {
		switch err {
		case repository.ErrTableTypeNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table type not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "table type still in use"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete table type"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- tables -----

type tableReq struct {
	TableTypeID uint64 `json:"table_type_id"`
	Name        string `json:"name"`
}

// CreateTable handles POST /v1/staff/bars/:bar_id/tables.
func (h *StaffHandler) CreateTable(c echo.Context) error {
	barID, ok := pathID(c, "bar_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bar id"})
	}
	if ok, err := h.authorizeBar(c, barID); !ok {
		return err
	}
	var req tableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.TableTypeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and table_type_id are required"})
	}
	ctx := c.Request().Context()
	// The type must belong to the same bar.
	if _, err := h.Types.GetByIDAndBar(ctx, req.TableTypeID, barID); err != nil {
		if err == repository.ErrTableTypeNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown table type"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load table type"})
	}
	t := &model.BarTable{
		BarID:       barID,
		TableTypeID: req.TableTypeID,
		Name:        req.Name,
	}
	if err := h.Tables.Create(ctx, t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create table"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": t})
}

// UpdateTable handles PUT /v1/staff/bars/:bar_id/tables/:id.
func (h *StaffHandler) UpdateTable(c echo.Context) error {
	barID, ok := pathID(c, "bar_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bar id"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}
	if ok, err := h.authorizeBar(c, barID); !ok {
		return err
	}
	var req tableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.TableTypeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and table_type_id are required"})
	}
	ctx := c.Request().Context()
	if _, err := h.Types.GetByIDAndBar(ctx, req.TableTypeID, barID); err != nil {
		if err == repository.ErrTableTypeNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown table type"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load table type"})
	}
	t := &model.BarTable{
		ID:          id,
		BarID:       barID,
		TableTypeID: req.TableTypeID,
		Name:        req.Name,
	}
	if err := h.Tables.Update(ctx, t); err != nil {
		if err == repository.ErrTableNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update table"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": t})
}

// DeleteTable handles DELETE /v1/staff/bars/:bar_id/tables/:id. The row
// is soft-deleted so historical bookings keep their reference; any live
// hold on the table simply times out since holds on deleted tables can
// no longer be refreshed or converted.
func (h *StaffHandler) DeleteTable(c echo.Context) error {
	barID, ok := pathID(c, "bar_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bar id"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}
	if ok, err := h.authorizeBar(c, barID); !ok {
		return err
	}
	if err := h.Tables.SoftDelete(c.Request().Context(), id, barID); err != nil {
		if err == repository.ErrTableNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete table"})
	}
	return c.NoContent(http.StatusNoContent)
}
