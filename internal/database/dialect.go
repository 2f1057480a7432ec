package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Supported DB_DRIVER values
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Dialect adapts the contact store to one database engine.
// Everything engine-specific lives behind it: the GORM dialector
// (placeholder syntax, RETURNING support) and the schema DDL.
type Dialect interface {
	// Name is the DB_DRIVER value selecting this dialect
	Name() string
	// DisplayName is reported by the root status route
	DisplayName() string
	// Dialector opens a GORM dialector for dsn
	Dialector(dsn string) gorm.Dialector
	// SchemaStatements are idempotent DDL statements, run in order
	SchemaStatements() []string
}

// DialectFor returns the dialect registered for driver
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverPostgres, "postgresql", "pg":
		return Postgres{}, nil
	case DriverMySQL:
		return MySQL{}, nil
	case DriverSQLite, "sqlite3":
		return SQLite{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}
}

// Postgres is the PostgreSQL dialect
type Postgres struct{}

func (Postgres) Name() string        { return DriverPostgres }
func (Postgres) DisplayName() string { return "PostgreSQL" }

func (Postgres) Dialector(dsn string) gorm.Dialector {
	return postgres.Open(dsn)
}

func (Postgres) SchemaStatements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS contact_messages (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			company VARCHAR(255),
			message TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_email ON contact_messages(email)`,
		`CREATE INDEX IF NOT EXISTS idx_created_at ON contact_messages(created_at)`,
	}
}

// MySQL is the MySQL dialect.
// MySQL has no CREATE INDEX IF NOT EXISTS, so indexes are declared inline.
type MySQL struct{}

func (MySQL) Name() string        { return DriverMySQL }
func (MySQL) DisplayName() string { return "MySQL" }

// Dialector skips the VERSION() probe the stock dialector runs while opening,
// so an unreachable server surfaces from Ping rather than from Open.
func (MySQL) Dialector(dsn string) gorm.Dialector {
	return mysql.New(mysql.Config{DSN: dsn, SkipInitializeWithVersion: true})
}

func (MySQL) SchemaStatements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS contact_messages (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			company VARCHAR(255),
			message TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_email (email),
			INDEX idx_created_at (created_at)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	}
}

// SQLite is the SQLite dialect, used for local development and tests
type SQLite struct{}

func (SQLite) Name() string        { return DriverSQLite }
func (SQLite) DisplayName() string { return "SQLite" }

func (SQLite) Dialector(dsn string) gorm.Dialector {
	return sqlite.Open(dsn)
}

func (SQLite) SchemaStatements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS contact_messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			company VARCHAR(255),
			message TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_email ON contact_messages(email)`,
		`CREATE INDEX IF NOT EXISTS idx_created_at ON contact_messages(created_at)`,
	}
}
