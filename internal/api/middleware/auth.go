// Package middleware provides HTTP middleware for the contact API.
package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/connectomedia/contact-api/internal/api/response"
	"github.com/connectomedia/contact-api/internal/logger"
	"github.com/labstack/echo/v4"
)

// HeaderAPIKey is the alternative to an Authorization bearer token
const HeaderAPIKey = "X-API-Key"

// AdminKeyAuth guards the admin read routes with a static key taken from
// "Authorization: Bearer <key>" or X-API-Key.
// An empty key disables the check.
// Uses constant-time comparison to prevent timing attacks.
func AdminKeyAuth(apiKey string, sec *logger.SecurityLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if apiKey == "" {
			return next
		}
		return func(c echo.Context) error {
			token := extractKey(c)
			if token == "" {
				sec.AuthFailure(c.RealIP(), c.Request().URL.Path, "missing_key")
				return response.Unauthorized(c, "Missing API key.")
			}

			if subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
				sec.AuthFailure(c.RealIP(), c.Request().URL.Path, "invalid_key")
				return response.Unauthorized(c, "Invalid API key.")
			}

			return next(c)
		}
	}
}

func extractKey(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(c.Request().Header.Get(HeaderAPIKey))
}
