package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB is the cell's embedded SQLite database: twin rows, quality records,
// work orders, and the outbox all live in one file next to the binary.
type DB struct {
	*sql.DB
}

// Open opens (or creates) the database file and applies the schema.
// The connection pool is capped at one: SQLite serializes writers anyway,
// and a single connection keeps the tick loop and the handlers from
// tripping SQLITE_BUSY on each other.
func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", path)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	db := &DB{sqlDB}
	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}
