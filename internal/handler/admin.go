package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bar-table-reservation/internal/model"
	"github.com/iliyamo/bar-table-reservation/internal/repository"
)

// AdminHandler covers platform-level administration: the bar registry
// and account management. All routes behind it require the ADMIN role.
type AdminHandler struct {
	Bars     *repository.BarRepo
	Accounts *repository.AccountRepo
}

func NewAdminHandler(bars *repository.BarRepo, accounts *repository.AccountRepo) *AdminHandler {
	if bars == nil || accounts == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Bars: bars, Accounts: accounts}
}

type barReq struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Description string `json:"description"`
	OpenTime    string `json:"open_time"`  // HH:MM
	CloseTime   string `json:"close_time"` // HH:MM
	Discount    uint8  `json:"discount"`   // percent
}

func (r *barReq) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	r.Address = strings.TrimSpace(r.Address)
	if r.Name == "" {
		return "name is required"
	}
	if r.Discount > 100 {
		return "discount must be 0-100"
	}
	return ""
}

// CreateBar handles POST /v1/admin/bars.
func (h *AdminHandler) CreateBar(c echo.Context) error {
	var req barReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	b := &model.Bar{
		Name:        req.Name,
		Address:     req.Address,
		Phone:       strings.TrimSpace(req.Phone),
		Email:       strings.TrimSpace(req.Email),
		Description: strings.TrimSpace(req.Description),
		OpenTime:    strings.TrimSpace(req.OpenTime),
		CloseTime:   strings.TrimSpace(req.CloseTime),
		Discount:    req.Discount,
	}
	if err := h.Bars.Create(c.Request().Context(), b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create bar"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": b})
}

// UpdateBar handles PUT /v1/admin/bars/:bar_id.
func (h *AdminHandler) UpdateBar(c echo.Context) error {
	barID, ok := pathID(c, "bar_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bar id"})
	}
	var req barReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	b := &model.Bar{
		ID:          barID,
		Name:        req.Name,
		Address:     req.Address,
		Phone:       strings.TrimSpace(req.Phone),
		Email:       strings.TrimSpace(req.Email),
		Description: strings.TrimSpace(req.Description),
		OpenTime:    strings.TrimSpace(req.OpenTime),
		CloseTime:   strings.TrimSpace(req.CloseTime),
		Discount:    req.Discount,
	}
	if err := h.Bars.Update(c.Request().Context(), b); err != nil {
		if err == repository.ErrBarNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bar not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update bar"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": b})
}

// DeleteBar handles DELETE /v1/admin/bars/:bar_id. Soft deletion keeps
// booking history intact; the bar simply disappears from public lists.
func (h *AdminHandler) DeleteBar(c echo.Context) error {
	barID, ok := pathID(c, "bar_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bar id"})
	}
	if err := h.Bars.SoftDelete(c.Request().Context(), barID); err != nil {
		if err == repository.ErrBarNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bar not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete bar"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListAccounts handles GET /v1/admin/accounts?role=.
func (h *AdminHandler) ListAccounts(c echo.Context) error {
	role := strings.ToUpper(strings.TrimSpace(c.QueryParam("role")))
	switch role {
	case "", model.RoleCustomer, model.RoleStaff, model.RoleAdmin:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}
	items, err := h.Accounts.ListByRole(c.Request().Context(), role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load accounts"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// AssignStaff handles POST /v1/admin/accounts/:id/assign-staff. The
// account becomes STAFF pinned to the given bar.
func (h *AdminHandler) AssignStaff(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid account id"})
	}
	var req struct {
		BarID uint64 `json:"bar_id"`
	}
	if err := c.Bind(&req); err != nil || req.BarID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bar_id required"})
	}
	ctx := c.Request().Context()
	if _, err := h.Bars.GetByID(ctx, req.BarID); err != nil {
		if err == repository.ErrBarNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bar not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bar"})
	}
	if err := h.Accounts.AssignStaff(ctx, id, req.BarID); err != nil {
		if err == repository.ErrAccountNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to assign staff"})
	}
	return c.NoContent(http.StatusNoContent)
}

// SetAccountActive handles POST /v1/admin/accounts/:id/active to
// disable or re-enable sign-in for an account.
func (h *AdminHandler) SetAccountActive(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid account id"})
	}
	var req struct {
		Active *bool `json:"active"`
	}
	if err := c.Bind(&req); err != nil || req.Active == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "active required"})
	}
	if err := h.Accounts.SetActive(c.Request().Context(), id, *req.Active); err != nil {
		if err == repository.ErrAccountNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update account"})
	}
	return c.NoContent(http.StatusNoContent)
}
