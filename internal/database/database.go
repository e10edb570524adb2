package database

import (
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrations embed.FS

// DB wraps the connection pool with its dialect so stores can write
// queries once, with ? placeholders, against either backend.
type DB struct {
	*sql.DB
	dialect Dialect
}

// Open opens a SQLite database at the given path and runs migrations.
func Open(dbPath string) (*DB, error) {
	return openDialect(NewSQLiteDialect(), DialectConfig{Path: dbPath})
}

// OpenURL opens a database selected by driver name ("sqlite" or
// "postgres") and runs migrations. For sqlite, dsn is a file path; for
// postgres, a connection URL.
func OpenURL(driver, dsn string) (*DB, error) {
	switch strings.ToLower(driver) {
	case "sqlite", "sqlite3", "":
		return openDialect(NewSQLiteDialect(), DialectConfig{Path: dsn})
	case "postgres", "postgresql":
		return openDialect(NewPostgresDialect(), DialectConfig{URL: dsn})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func openDialect(dialect Dialect, cfg DialectConfig) (*DB, error) {
	db, err := sql.Open(dialect.DriverName(), dialect.DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := dialect.Configure(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure db: %w", err)
	}

	if err := runMigrations(db, dialect); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &DB{DB: db, dialect: dialect}, nil
}

func runMigrations(db *sql.DB, dialect Dialect) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect(dialect.GooseDialect()); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.Up(db, dialect.MigrationsDir()); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

// Dialect returns the dialect the pool was opened with.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Query rewrites ? placeholders for the dialect and runs the query.
func (db *DB) Query(query string, args ...any) (*sql.Rows, error) {
	return db.DB.Query(db.dialect.Rewrite(query), args...)
}

// QueryRow rewrites ? placeholders for the dialect and runs the query.
func (db *DB) QueryRow(query string, args ...any) *sql.Row {
	return db.DB.QueryRow(db.dialect.Rewrite(query), args...)
}

// Exec rewrites ? placeholders for the dialect and executes the statement.
func (db *DB) Exec(query string, args ...any) (sql.Result, error) {
	return db.DB.Exec(db.dialect.Rewrite(query), args...)
}

// ExecInsert executes an INSERT and returns the new row's id. idCol
// names the primary key column, needed for drivers without LastInsertId.
func (db *DB) ExecInsert(query, idCol string, args ...any) (int64, error) {
	query = db.dialect.Rewrite(query)

	if db.dialect.SupportsLastInsertID() {
		result, err := db.DB.Exec(query, args...)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	}

	var id int64
	err := db.DB.QueryRow(query+" RETURNING "+idCol, args...).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}
