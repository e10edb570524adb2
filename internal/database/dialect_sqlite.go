package database

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// SQLiteDialect implements Dialect for the cgo-free modernc driver.
type SQLiteDialect struct{}

func NewSQLiteDialect() *SQLiteDialect {
	return &SQLiteDialect{}
}

func (d *SQLiteDialect) DriverName() string {
	return "sqlite"
}

func (d *SQLiteDialect) DSN(cfg DialectConfig) string {
	return cfg.Path + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
}

func (d *SQLiteDialect) Rewrite(query string) string {
	// SQLite uses ? placeholders natively.
	return query
}

func (d *SQLiteDialect) SupportsLastInsertID() bool {
	return true
}

func (d *SQLiteDialect) Configure(db *sql.DB) error {
	// The DSN pragmas only apply to the connection that opened them;
	// re-apply foreign key enforcement for the whole pool.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return err
	}
	return nil
}

func (d *SQLiteDialect) GooseDialect() string {
	return "sqlite3"
}

func (d *SQLiteDialect) MigrationsDir() string {
	return "migrations/sqlite"
}
