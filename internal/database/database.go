package database

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connection pool configuration
const (
	DefaultMaxIdleConns    = 5
	DefaultMaxOpenConns    = 10
	DefaultConnMaxLifetime = time.Hour
	DefaultConnMaxIdleTime = 10 * time.Minute
)

// DefaultSQLitePath is used when the sqlite driver is selected without a URL
const DefaultSQLitePath = "contact.db"

// Options describes how to reach the database and size its pool
type Options struct {
	Driver string
	URL    string

	// Discrete MySQL settings, used when URL is empty
	Host     string
	Port     int
	User     string
	Password string
	Name     string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	LogLevel   string
	Production bool
}

// DSN resolves the driver-specific connection string
func (o Options) DSN() (string, error) {
	switch o.Driver {
	case DriverMySQL:
		return MySQLDSN(o)
	case DriverSQLite:
		if o.URL == "" {
			return DefaultSQLitePath, nil
		}
		return o.URL, nil
	default:
		if o.URL == "" {
			return "", fmt.Errorf("database URL is required for driver %q", o.Driver)
		}
		return o.URL, nil
	}
}

// MySQLDSN builds a go-sql-driver DSN from o.URL, or from the discrete
// settings when o.URL is empty. parseTime is always on so TIMESTAMP
// columns scan into time.Time.
func MySQLDSN(o Options) (string, error) {
	var cfg *gomysql.Config
	if o.URL != "" {
		parsed, err := gomysql.ParseDSN(o.URL)
		if err != nil {
			return "", fmt.Errorf("invalid MySQL DSN: %w", err)
		}
		cfg = parsed
	} else {
		cfg = gomysql.NewConfig()
		cfg.User = o.User
		cfg.Passwd = o.Password
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
		cfg.DBName = o.Name
		cfg.Collation = "utf8mb4_unicode_ci"
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

// Connect builds the process-wide connection pool for opts.Driver.
// It does not dial; use Ping to check connectivity.
func Connect(opts Options) (*gorm.DB, Dialect, error) {
	dialect, err := DialectFor(opts.Driver)
	if err != nil {
		return nil, nil, err
	}

	dsn, err := opts.DSN()
	if err != nil {
		return nil, nil, err
	}

	if opts.Production && dialect.Name() == DriverPostgres {
		if err := validateSSLMode(dsn); err != nil {
			return nil, nil, err
		}
	}

	db, err := Open(dialect.Dialector(dsn), opts)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("database pool created", slog.String("driver", dialect.Name()))
	return db, dialect, nil
}

// Open wraps dialector in a GORM handle with the pool configured from opts.
// Each operation runs as a single autocommitted statement.
func Open(dialector gorm.Dialector, opts Options) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(GormLogLevel(opts.LogLevel)),
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := configureConnectionPool(db, opts); err != nil {
		return nil, err
	}

	return db, nil
}

// validateSSLMode ensures SSL is enabled in production
func validateSSLMode(databaseURL string) error {
	if strings.Contains(databaseURL, "sslmode=disable") {
		return fmt.Errorf("SSL mode cannot be disabled in production")
	}
	return nil
}

// configureConnectionPool sets up connection pool limits, filling zero values with defaults
func configureConnectionPool(db *gorm.DB, opts Options) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpen := opts.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = DefaultMaxOpenConns
	}
	maxIdle := opts.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = DefaultMaxIdleConns
	}
	if maxIdle > maxOpen {
		maxIdle = maxOpen
	}
	lifetime := opts.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = DefaultConnMaxLifetime
	}
	idleTime := opts.ConnMaxIdleTime
	if idleTime <= 0 {
		idleTime = DefaultConnMaxIdleTime
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(lifetime)
	sqlDB.SetConnMaxIdleTime(idleTime)

	return nil
}

// Ping checks that a connection can be acquired from the pool
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// GormLogLevel maps LOG_LEVEL to GORM's logger. SQL is only traced at debug.
func GormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logger.Info
	case "error":
		return logger.Error
	default:
		return logger.Warn
	}
}
