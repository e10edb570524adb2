package database

import (
	"database/sql"
	"regexp"
	"strconv"
)

// Dialect abstracts the differences between the supported SQL backends.
type Dialect interface {
	// DriverName returns the driver name for sql.Open.
	DriverName() string

	// DSN returns the data source name for the connection.
	DSN(cfg DialectConfig) string

	// Rewrite converts ? placeholders to the dialect's syntax.
	Rewrite(query string) string

	// SupportsLastInsertID reports whether the driver implements
	// sql.Result.LastInsertId. Drivers that don't need INSERT ... RETURNING.
	SupportsLastInsertID() bool

	// Configure applies dialect-specific connection settings.
	Configure(db *sql.DB) error

	// GooseDialect returns the dialect name goose expects.
	GooseDialect() string

	// MigrationsDir returns the embedded migrations subdirectory.
	MigrationsDir() string
}

// DialectConfig holds the connection parameters a dialect may need.
type DialectConfig struct {
	// Path is the database file path (SQLite only).
	Path string

	// URL is the connection URL (PostgreSQL only).
	URL string
}

var placeholderRegexp = regexp.MustCompile(`\?`)

// numberPlaceholders converts ? placeholders to $1, $2, ...
func numberPlaceholders(query string) string {
	n := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(string) string {
		n++
		return "$" + strconv.Itoa(n)
	})
}
