package router // package router wires HTTP routes to their handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bar-table-reservation/internal/handler"
	"github.com/iliyamo/bar-table-reservation/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication at all.
// Currently that is only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Token issuing and
// exchange live under /v1/auth without middleware; /v1/me and profile
// updates require a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout runs without JWT middleware so an expired access token can
	// still terminate a session via its refresh token.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.PUT("/me", a.UpdateMe)
}

// RegisterPublic registers the unauthenticated browse endpoints: bars,
// table availability, menus, events and feedback. The optional cache
// middleware is applied to this group only; table availability carries
// live hold state, so the cache TTL must stay short.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if cache != nil {
		g.Use(cache)
	}
	g.GET("/bars", p.ListBars)
	g.GET("/bars/:bar_id", p.GetBar)
	// Pass ?date=YYYY-MM-DD&time=HH:MM to see per-slot hold state.
	g.GET("/bars/:bar_id/tables", p.ListTables)
	g.GET("/bars/:bar_id/table-types", p.ListTableTypes)
	g.GET("/bars/:bar_id/drinks", p.ListDrinks)
	g.GET("/bars/:bar_id/events", p.ListEvents)
	g.GET("/bars/:bar_id/feedback", p.ListFeedback)
	g.GET("/drink-categories", p.ListDrinkCategories)
}
