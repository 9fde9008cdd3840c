package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bar-table-reservation/internal/handler"
	"github.com/iliyamo/bar-table-reservation/internal/middleware"
)

// RegisterCustomer registers customer-scoped endpoints under /v1. All
// routes require a valid JWT with the CUSTOMER role. Customers place
// and release table holds, convert holds into bookings, manage their
// own bookings and leave feedback. The optional limiter guards the
// hold endpoints against table-flipping abuse.
func RegisterCustomer(e *echo.Echo, holds *handler.HoldHandler, bookings *handler.BookingHandler, feedback *handler.FeedbackHandler, notifications *handler.NotificationHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER"),
	)

	// ---- table holds ----
	hg := g.Group("")
	if limiter != nil {
		hg.Use(limiter)
	}
	hg.POST("/bars/:bar_id/tables/:table_id/hold", holds.PlaceHold)
	hg.POST("/bars/:bar_id/tables/:table_id/release", holds.ReleaseHold)

	// ---- bookings ----
	g.POST("/bookings", bookings.CreateBooking)
	g.GET("/bookings", bookings.ListBookings)
	g.GET("/bookings/:id", bookings.GetBooking)
	g.POST("/bookings/:id/cancel", bookings.CancelBooking)

	// ---- feedback and notifications ----
	g.POST("/bars/:bar_id/feedback", feedback.CreateFeedback)
	g.GET("/notifications", notifications.ListNotifications)
	g.POST("/notifications/:id/read", notifications.MarkRead)
}
