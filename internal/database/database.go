// Package database centralises sqlx connection helpers.  The driver is
// modernc.org/sqlite, a pure-Go SQLite build, so the binary stays a single
// self-contained executable with its data in one local file.
//
// Public entry points:
//
//	Open(path) – open (and create if absent) the database file.
//
// Open pings the database before returning so callers can fail fast during
// bootstrap.  Callers should Close() the returned *sqlx.DB when done.
package database

import (
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Open returns a *sqlx.DB for the SQLite file at path.  The pool is pinned
// to one connection: SQLite allows a single writer, and a one-connection
// pool also keeps ":memory:" databases coherent under test.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
