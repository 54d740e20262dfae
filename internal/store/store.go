// Package store wraps the host application's SQLite database: schema
// introspection for the installed-state probe, the migration runner, and
// transactional writes for role seeding.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/tallcms/cms-installer/internal/messages"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// DB is a lazily opened handle on the host database. Read methods never create
// the database file: a missing file reads as an empty schema.
type DB struct {
	path   string
	logger *zap.Logger

	mu sync.Mutex
	db *sql.DB
}

// Open returns a DB for the SQLite file at path. Nothing touches the disk until
// the first query.
func Open(path string, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{path: path, logger: logger}
}

// Path returns the database file location.
func (d *DB) Path() string {
	return d.path
}

// handle returns the open connection. With create false and no database file
// it returns nil so readers can answer without creating one.
func (d *DB) handle(create bool) (*sql.DB, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db != nil {
		return d.db, nil
	}
	if _, err := os.Stat(d.path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf(messages.StoreOpenFailedFmt, d.path, err)
		}
		if !create {
			return nil, nil
		}
		if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
			return nil, fmt.Errorf(messages.StoreCreateDirFailedFmt, d.path, err)
		}
	}
	db, err := sql.Open("sqlite", d.path)
	if err != nil {
		return nil, fmt.Errorf(messages.StoreOpenFailedFmt, d.path, err)
	}
	// A single connection keeps pragmas and transactions on one SQLite handle.
	db.SetMaxOpenConns(1)
	d.db = db
	d.logger.Debug("database opened", zap.String("path", d.path))
	return db, nil
}

// Close releases the connection if one was opened.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}

// HasTable reports whether table exists.
func (d *DB) HasTable(ctx context.Context, table string) (bool, error) {
	if !identPattern.MatchString(table) {
		return false, fmt.Errorf(messages.StoreInvalidIdentFmt, table)
	}
	db, err := d.handle(false)
	if err != nil || db == nil {
		return false, err
	}
	var name string
	err = db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf(messages.StoreQueryFailedFmt, "sqlite_master", err)
	}
	return true, nil
}

// HasColumn reports whether table has column. A missing table has no columns.
func (d *DB) HasColumn(ctx context.Context, table string, column string) (bool, error) {
	if !identPattern.MatchString(table) {
		return false, fmt.Errorf(messages.StoreInvalidIdentFmt, table)
	}
	db, err := d.handle(false)
	if err != nil || db == nil {
		return false, err
	}
	return hasColumn(ctx, db, table, column)
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func hasColumn(ctx context.Context, q queryer, table string, column string) (bool, error) {
	rows, err := q.QueryContext(ctx, fmt.Sprintf(`SELECT name FROM pragma_table_info('%s')`, table))
	if err != nil {
		return false, fmt.Errorf(messages.StoreQueryFailedFmt, table, err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, fmt.Errorf(messages.StoreQueryFailedFmt, table, err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// RoleExists reports whether a role named name exists. It errors when the
// roles table is missing.
func (d *DB) RoleExists(ctx context.Context, name string) (bool, error) {
	db, err := d.handle(false)
	if err != nil {
		return false, err
	}
	if db == nil {
		return false, fmt.Errorf(messages.StoreQueryFailedFmt, "roles", fs.ErrNotExist)
	}
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM roles WHERE name = ?`, name).Scan(&count); err != nil {
		return false, fmt.Errorf(messages.StoreQueryFailedFmt, "roles", err)
	}
	return count > 0, nil
}

// InTx runs fn in a transaction, creating the database file if needed.
// The transaction commits when fn returns nil and rolls back otherwise.
func (d *DB) InTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	db, err := d.handle(true)
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf(messages.StoreOpenFailedFmt, d.path, err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
