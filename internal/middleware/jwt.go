package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/movie-watchlist/internal/utils"
)

// Context keys under which JWTAuth stores the verified identity.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
)

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the token's identity into the request context. The
// provided secret must match the one used when issuing tokens. This
// middleware wraps every protected route, so a missing or invalid
// token always yields 401 before any handler logic runs. Handlers read
// the caller via CallerID(c).
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header is "Bearer <jwt>". Anything else is a
			// missing credential, not a malformed one worth detailing.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tc, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set(CtxUserID, tc.UserID)
			c.Set(CtxUsername, tc.Username)
			return next(c)
		}
	}
}

// CallerID returns the authenticated user's id stored by JWTAuth, or 0
// when the request carried no verified identity.
func CallerID(c echo.Context) uint64 {
	if v, ok := c.Get(CtxUserID).(uint64); ok {
		return v
	}
	return 0
}
