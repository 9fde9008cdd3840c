package middleware

// identity.go holds the account-identity helper shared by the caching and
// rate-limiting middleware. Keys built from the identity must be stable
// regardless of whether the request was authenticated.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentAccountID returns a string form of the authenticated account ID
// stored by JWTAuth, or "anon" for unauthenticated requests. The sub claim
// arrives as a JSON number, so float64 is the common case.
func currentAccountID(c echo.Context) string {
	switch v := c.Get("account_id").(type) {
	case float64:
		return strconv.FormatUint(uint64(v), 10)
	case string:
		if v != "" {
			return v
		}
	}
	return "anon"
}
