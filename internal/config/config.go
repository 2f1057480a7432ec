package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/connectomedia/contact-api/internal/database"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DBDriver          string
	DatabaseURL       string
	DBHost            string
	DBPort            int
	DBUser            string
	DBPassword        string
	DBName            string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	RequireDatabase   bool

	// Server
	Port    int
	Version string

	// Logging
	LogLevel string

	// Security
	AdminAPIKey    string
	AllowedOrigins string
	AppEnv         string
	TrustedProxies string

	// Rate Limiting
	RateLimitRequests float64
	RateLimitBurst    int
}

// LoadEnvFile loads variables from the given .env files without overriding
// variables already present in the environment. Missing files are ignored.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// DB_DRIVER (default: postgres)
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(os.Getenv("DB_DRIVER")))
	if cfg.DBDriver == "" {
		cfg.DBDriver = database.DriverPostgres
	}

	// DATABASE_URL, falling back to POSTGRES_URL
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("POSTGRES_URL")
	}

	// Discrete MySQL connection settings, used when DATABASE_URL is empty
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBUser = getEnv("DB_USER", "root")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = getEnv("DB_NAME", "connectomedia_db")
	if cfg.DBPort, err = getEnvInt("DB_PORT", 3306); err != nil {
		return nil, err
	}

	// Pool limits
	if cfg.DBMaxOpenConns, err = getEnvInt("DB_MAX_OPEN_CONNS", database.DefaultMaxOpenConns); err != nil {
		return nil, err
	}
	if cfg.DBMaxIdleConns, err = getEnvInt("DB_MAX_IDLE_CONNS", database.DefaultMaxIdleConns); err != nil {
		return nil, err
	}
	if lifetime := os.Getenv("DB_CONN_MAX_LIFETIME"); lifetime != "" {
		d, err := time.ParseDuration(lifetime)
		if err != nil {
			return nil, fmt.Errorf("DB_CONN_MAX_LIFETIME must be a valid duration: %w", err)
		}
		cfg.DBConnMaxLifetime = d
	} else {
		cfg.DBConnMaxLifetime = database.DefaultConnMaxLifetime
	}

	// REQUIRE_DATABASE (default: true)
	if cfg.RequireDatabase, err = getEnvBool("REQUIRE_DATABASE", true); err != nil {
		return nil, err
	}

	// PORT (default: 3000)
	if cfg.Port, err = getEnvInt("PORT", 3000); err != nil {
		return nil, err
	}

	cfg.Version = getEnv("APP_VERSION", "1.0.0")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	// Security configuration
	cfg.AdminAPIKey = os.Getenv("ADMIN_API_KEY")
	cfg.AllowedOrigins = getEnv("FRONTEND_URL", "*")
	cfg.AppEnv = os.Getenv("APP_ENV")
	if cfg.AppEnv == "" {
		cfg.AppEnv = getEnv("NODE_ENV", "development")
	}
	cfg.TrustedProxies = os.Getenv("TRUSTED_PROXIES")

	// Rate limiting configuration
	if rps := os.Getenv("RATE_LIMIT_REQUESTS"); rps != "" {
		v, err := strconv.ParseFloat(rps, 64)
		if err != nil {
			return nil, fmt.Errorf("RATE_LIMIT_REQUESTS must be a valid number: %w", err)
		}
		cfg.RateLimitRequests = v
	} else {
		cfg.RateLimitRequests = 1.0
	}
	if cfg.RateLimitBurst, err = getEnvInt("RATE_LIMIT_BURST", 5); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadWithValidation loads and validates configuration, failing fast on errors
func LoadWithValidation() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.IsProduction() {
		if err := cfg.ValidateProduction(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := database.DialectFor(c.DBDriver); err != nil {
		return fmt.Errorf("DB_DRIVER: %w", err)
	}
	if c.DBDriver == database.DriverPostgres && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL or POSTGRES_URL is required for the postgres driver")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if c.DBMaxOpenConns <= 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be positive")
	}
	if c.DBMaxIdleConns <= 0 || c.DBMaxIdleConns > c.DBMaxOpenConns {
		return fmt.Errorf("DB_MAX_IDLE_CONNS must be between 1 and DB_MAX_OPEN_CONNS")
	}
	if c.RateLimitRequests <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_BURST must be positive")
	}
	if _, err := c.ProxyRanges(); err != nil {
		return err
	}
	return nil
}

// ValidateProduction performs additional validation for production environment
func (c *Config) ValidateProduction() error {
	if c.AdminAPIKey == "" {
		return fmt.Errorf("ADMIN_API_KEY is required in production")
	}

	if strings.Contains(c.AllowedOrigins, "*") {
		return fmt.Errorf("wildcard (*) origins are not allowed in production")
	}

	if c.DBDriver == database.DriverSQLite {
		return fmt.Errorf("the sqlite driver is not allowed in production")
	}

	if strings.Contains(c.DatabaseURL, "sslmode=disable") {
		return fmt.Errorf("sslmode=disable is not allowed in production")
	}

	return nil
}

// IsProduction reports whether APP_ENV (or NODE_ENV) is production
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Origins splits AllowedOrigins into trimmed, non-empty entries
func (c *Config) Origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// ProxyRanges parses TRUSTED_PROXIES, a comma-separated list of CIDRs or bare IPs
func (c *Config) ProxyRanges() ([]*net.IPNet, error) {
	var ranges []*net.IPNet
	for _, p := range strings.Split(c.TrustedProxies, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.Contains(p, "/") {
			ip := net.ParseIP(p)
			if ip == nil {
				return nil, fmt.Errorf("TRUSTED_PROXIES: invalid address %q", p)
			}
			bits := 128
			if ip.To4() != nil {
				ip = ip.To4()
				bits = 32
			}
			ranges = append(ranges, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, ipNet, err := net.ParseCIDR(p)
		if err != nil {
			return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
		}
		ranges = append(ranges, ipNet)
	}
	return ranges, nil
}

// DatabaseOptions returns the connection settings for database.Connect
func (c *Config) DatabaseOptions() database.Options {
	return database.Options{
		Driver:          c.DBDriver,
		URL:             c.DatabaseURL,
		Host:            c.DBHost,
		Port:            c.DBPort,
		User:            c.DBUser,
		Password:        c.DBPassword,
		Name:            c.DBName,
		MaxOpenConns:    c.DBMaxOpenConns,
		MaxIdleConns:    c.DBMaxIdleConns,
		ConnMaxLifetime: c.DBConnMaxLifetime,
		LogLevel:        c.LogLevel,
		Production:      c.IsProduction(),
	}
}

// LogConfig logs configuration values (excluding secrets)
func (c *Config) LogConfig(logger *slog.Logger) {
	logger.Info("configuration loaded",
		slog.String("db_driver", c.DBDriver),
		slog.Bool("database_url_set", c.DatabaseURL != ""),
		slog.Int("db_max_open_conns", c.DBMaxOpenConns),
		slog.Bool("require_database", c.RequireDatabase),
		slog.Int("port", c.Port),
		slog.String("version", c.Version),
		slog.String("log_level", c.LogLevel),
		slog.String("app_env", c.AppEnv),
		slog.Bool("admin_api_key_set", c.AdminAPIKey != ""),
		slog.String("allowed_origins", c.AllowedOrigins),
		slog.String("trusted_proxies", c.TrustedProxies),
		slog.Float64("rate_limit_rps", c.RateLimitRequests),
		slog.Int("rate_limit_burst", c.RateLimitBurst),
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a valid boolean: %w", key, err)
	}
	return b, nil
}
