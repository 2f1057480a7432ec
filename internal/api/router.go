package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/connectomedia/contact-api/internal/api/handlers"
	"github.com/connectomedia/contact-api/internal/api/middleware"
	"github.com/connectomedia/contact-api/internal/api/response"
	"github.com/connectomedia/contact-api/internal/database"
	apperrors "github.com/connectomedia/contact-api/internal/errors"
	"github.com/connectomedia/contact-api/internal/logger"
	"github.com/connectomedia/contact-api/internal/repository"
	"github.com/connectomedia/contact-api/internal/services"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// MaxBodySize caps request bodies
const MaxBodySize = "64K"

// RouterConfig holds dependencies for the router
type RouterConfig struct {
	DB      *gorm.DB
	Dialect database.Dialect
	Logger  *slog.Logger

	// Security configuration
	AdminAPIKey    string   // Protects the admin read routes (empty = disabled)
	AllowedOrigins []string // Allowed CORS origins
	Production     bool
	RateLimit      float64 // Submissions per second per IP
	RateBurst      int     // Burst size for rate limiter

	// TrustedProxies may set X-Forwarded-For. When empty the peer address is the client IP.
	TrustedProxies []*net.IPNet

	Version string

	// Context stops background work such as the rate limiter janitor
	Context context.Context
}

// NewRouter creates and configures the Echo router with all routes
func NewRouter(cfg *RouterConfig) *echo.Echo {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	sec := logger.NewSecurityLoggerFrom(log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = newHTTPErrorHandler(log)
	e.IPExtractor = ipExtractor(cfg.TrustedProxies)

	// /api/contact/ and /api/contact are the same resource
	e.Pre(echomw.RemoveTrailingSlash())

	// Middleware (applied in order)
	// 1. Request ID so every later log line can carry it
	e.Use(middleware.RequestID())

	// 2. Request logging, outside Recover so panics are logged with their final status
	e.Use(middleware.RequestLogger(log))

	// 3. Recover from panics
	e.Use(middleware.Recover())

	// 4. Security headers (applied to all responses)
	e.Use(middleware.SecureHeaders())

	// 5. CORS
	e.Use(middleware.CORS(cfg.AllowedOrigins, cfg.Production))

	// 6. Body size limit
	e.Use(middleware.BodyLimit(MaxBodySize))

	// Submissions are rate limited per IP
	rps, burst := cfg.RateLimit, cfg.RateBurst
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 5
	}
	limiter := middleware.NewIPRateLimiter(rate.Limit(rps), burst)
	limiter.StartJanitor(ctx, middleware.DefaultCleanupInterval, middleware.DefaultMaxIdle)

	// Initialize services and handlers
	contactService := services.NewContactService(repository.NewContactRepository(cfg.DB), log)
	contactHandler := handlers.NewContactHandler(contactService)
	healthHandler := handlers.NewHealthHandler(cfg.DB)

	dbName := "unknown"
	if cfg.Dialect != nil {
		dbName = cfg.Dialect.DisplayName()
	}
	statusHandler := handlers.NewStatusHandler(cfg.Version, dbName)

	// Status and health routes (no auth required)
	e.GET("/", statusHandler.Status)
	e.GET("/health", healthHandler.Health)
	e.GET("/ready", healthHandler.Ready)

	// Contact routes
	adminAuth := middleware.AdminKeyAuth(cfg.AdminAPIKey, sec)
	contact := e.Group("/api/contact")
	contact.POST("", contactHandler.Submit, middleware.RateLimiter(limiter, sec))
	contact.GET("", contactHandler.List, adminAuth)
	contact.GET("/:id", contactHandler.Get, adminAuth)

	return e
}

// newHTTPErrorHandler renders every error as the JSON error envelope.
// Unmatched routes and methods become 404 "Route not found"; other client
// errors keep their status; anything else is logged and reported as a bare 500.
func newHTTPErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			switch {
			case he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed:
				_ = response.RouteNotFound(c)
				return
			case he.Code < http.StatusInternalServerError:
				msg, ok := he.Message.(string)
				if !ok {
					msg = http.StatusText(he.Code)
				}
				_ = c.JSON(he.Code, response.ErrorResponse{
					Success: false,
					Message: msg,
					Code:    apperrors.CodeInvalidInput,
				})
				return
			}
		}

		log.Error("unhandled request error",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Request().URL.Path),
			slog.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			slog.Any("error", err),
		)
		_ = response.InternalError(c, apperrors.InternalMessage)
	}
}

// ipExtractor resolves the client IP used for rate limiting and logs.
// Forwarding headers are only honoured from trusted proxy ranges.
func ipExtractor(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, ipNet := range trusted {
		opts = append(opts, echo.TrustIPRange(ipNet))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}
