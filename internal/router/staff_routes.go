package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bar-table-reservation/internal/handler"
	"github.com/iliyamo/bar-table-reservation/internal/middleware"
)

// RegisterStaff registers bar-operation endpoints under /v1/staff.
// Routes accept both STAFF and ADMIN roles; per-bar authorization is
// enforced inside the handlers because staff are pinned to one bar
// while admins may touch any.
func RegisterStaff(e *echo.Echo, s *handler.StaffHandler, jwtSecret string) {
	g := e.Group(
		"/v1/staff",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("STAFF", "ADMIN"),
	)

	// ---- floor layout ----
	g.POST("/bars/:bar_id/table-types", s.CreateTableType)
	g.PUT("/bars/:bar_id/table-types/:id", s.UpdateTableType)
	g.DELETE("/bars/:bar_id/table-types/:id", s.DeleteTableType)
	g.POST("/bars/:bar_id/tables", s.CreateTable)
	g.PUT("/bars/:bar_id/tables/:id", s.UpdateTable)
	g.DELETE("/bars/:bar_id/tables/:id", s.DeleteTable)

	// ---- drink menu ----
	g.POST("/bars/:bar_id/drinks", s.CreateDrink)
	g.PUT("/bars/:bar_id/drinks/:id", s.UpdateDrink)
	g.DELETE("/bars/:bar_id/drinks/:id", s.DeleteDrink)
	g.POST("/drink-categories", s.CreateDrinkCategory)

	// ---- events ----
	g.POST("/bars/:bar_id/events", s.CreateEvent)
	g.PUT("/bars/:bar_id/events/:id", s.UpdateEvent)
	g.DELETE("/bars/:bar_id/events/:id", s.DeleteEvent)

	// ---- bookings and live floor state ----
	g.GET("/bars/:bar_id/bookings", s.ListBarBookings)
	g.POST("/bars/:bar_id/bookings/:id/status", s.UpdateBookingStatus)
	g.GET("/bars/:bar_id/revenue", s.Revenue)
	g.GET("/bars/:bar_id/holds", s.ListHolds)
}

// RegisterAdmin registers platform administration endpoints under
// /v1/admin, restricted to the ADMIN role: the bar registry, account
// management and maintenance hooks.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, s *handler.StaffHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	g.POST("/bars", a.CreateBar)
	g.PUT("/bars/:bar_id", a.UpdateBar)
	g.DELETE("/bars/:bar_id", a.DeleteBar)

	g.GET("/accounts", a.ListAccounts)
	g.POST("/accounts/:id/assign-staff", a.AssignStaff)
	g.POST("/accounts/:id/active", a.SetAccountActive)

	// Hit by an external cron; sweeps events whose end time has passed.
	g.POST("/maintenance/expire-events", s.ExpirePastEvents)
}
