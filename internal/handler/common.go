package handler // handler defines the HTTP layer on top of the repositories

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

// getAccountID extracts the account_id stored by the JWT middleware and
// converts it to uint64. JWT numeric claims decode as float64, but other
// middleware may store the value differently, so accept the common shapes.
func getAccountID(c echo.Context) (uint64, error) {
	v := c.Get("account_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid account_id in context")
}

// currentRole returns the role claim stored by the JWT middleware, or ""
// when the request is unauthenticated.
func currentRole(c echo.Context) string {
	if s, ok := c.Get("role").(string); ok {
		return s
	}
	return ""
}

// pathID parses a numeric path parameter. Zero is treated as invalid
// because no table row ever has ID 0.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
