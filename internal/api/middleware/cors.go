package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// DefaultDevOrigin is used when production filtering leaves no origin
const DefaultDevOrigin = "http://localhost:3000"

// CORS returns CORS middleware for the given origins.
// A "*" entry allows any origin outside production; production drops it.
// Credentials are only allowed for an explicit origin list.
func CORS(origins []string, production bool) echo.MiddlewareFunc {
	allowed := make([]string, 0, len(origins))
	wildcard := false
	for _, origin := range origins {
		if origin == "*" {
			if production {
				continue
			}
			wildcard = true
		}
		allowed = append(allowed, origin)
	}
	if len(allowed) == 0 {
		allowed = []string{DefaultDevOrigin}
	}
	if wildcard {
		allowed = []string{"*"}
	}

	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     allowed,
		AllowMethods:     []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, HeaderAPIKey},
		AllowCredentials: !wildcard,
		MaxAge:           300,
	})
}
