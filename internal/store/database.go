// Package store owns the on-disk SQLite schema and its CRUD primitives.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

// Querier is the subset of *sql.DB / *sql.Tx used by the query and mutation
// layers. *Database and *Tx satisfy it as well.
type Querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Database is the handle for one profile's database file.
type Database struct {
	ops
	db   *sql.DB
	path string
}

// Tx is a transaction exposing the same primitives as Database.
type Tx struct {
	ops
	tx *sql.Tx
}

// Open opens an existing database file. It does not create the schema.
func Open(path string) (*Database, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrDatabaseMissing)
		}
		return nil, fmt.Errorf("failed to stat database: %w", err)
	}
	return open(path)
}

// Create opens (creating if needed) the database file and initializes the
// schema. It fails with ErrSchemaExists if the file already holds the tables.
func Create(path string) (*Database, error) {
	d, err := open(path)
	if err != nil {
		return nil, err
	}
	if err := d.CreateSchema(); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

// OpenInMemory opens an initialized in-memory database (for testing).
func OpenInMemory() (*Database, error) {
	d, err := open(":memory:")
	if err != nil {
		return nil, err
	}
	if err := d.CreateSchema(); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

func open(path string) (*Database, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: LastInsertId is resolved on the connection that
	// inserted, and :memory: databases are per connection.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Database{ops: ops{q: db}, db: db, path: path}, nil
}

// Close closes the database.
func (d *Database) Close() error {
	return d.db.Close()
}

// Path returns the file the database was opened from.
func (d *Database) Path() string {
	return d.path
}

// CreateSchema creates all tables. It is a one-time initialization and
// refuses to run when any of the tables already exists.
func (d *Database) CreateSchema() error {
	names := make([]string, 0, len(Kinds))
	for _, k := range Kinds {
		names = append(names, k.Table())
	}
	var existing int
	err := d.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name IN ('`+strings.Join(names, "', '")+`')`,
	).Scan(&existing)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if existing > 0 {
		return ErrSchemaExists
	}

	return d.WithTx(func(tx *Tx) error {
		for _, stmt := range schemaDDL {
			if _, err := tx.tx.Exec(stmt); err != nil {
				return fmt.Errorf("failed to initialize database schema: %w", err)
			}
		}
		return nil
	})
}

// WithTx runs fn inside a transaction, committing if it returns nil.
func (d *Database) WithTx(fn func(tx *Tx) error) error {
	sqlTx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&Tx{ops: ops{q: sqlTx}, tx: sqlTx}); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
