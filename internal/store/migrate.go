package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/tallcms/cms-installer/internal/messages"
	"github.com/tallcms/cms-installer/internal/templates"
)

// PrefixPlaceholder is replaced with the configured table prefix in CMS migrations.
const PrefixPlaceholder = "{{prefix}}"

// Migration is one schema change, identified by its sortable name.
type Migration struct {
	Name string
	Up   func(ctx context.Context, tx *sql.Tx) error
}

// Migrator applies pending migrations from the embedded CMS set, the host
// migrations directory, and built-in schema fixes, in name order.
type Migrator struct {
	db      *DB
	prefix  string
	hostDir string
	logger  *zap.Logger
}

// NewMigrator returns a Migrator. hostDir may be empty.
func NewMigrator(db *DB, prefix string, hostDir string, logger *zap.Logger) *Migrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Migrator{db: db, prefix: prefix, hostDir: hostDir, logger: logger}
}

// Migrations returns every known migration sorted by name.
func (m *Migrator) Migrations() ([]Migration, error) {
	var all []Migration
	cms, err := m.cmsMigrations()
	if err != nil {
		return nil, err
	}
	all = append(all, cms...)
	host, err := m.hostMigrations()
	if err != nil {
		return nil, err
	}
	all = append(all, host...)
	all = append(all, builtinMigrations()...)

	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	for i := 1; i < len(all); i++ {
		if all[i].Name == all[i-1].Name {
			return nil, fmt.Errorf(messages.StoreDuplicateMigration, all[i].Name)
		}
	}
	return all, nil
}

func (m *Migrator) cmsMigrations() ([]Migration, error) {
	entries, err := templates.ReadDir(templates.CMSMigrationsDir)
	if err != nil {
		return nil, fmt.Errorf(messages.StoreReadMigrationsFmt, templates.CMSMigrationsDir, err)
	}
	var out []Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		data, err := templates.Read(path.Join(templates.CMSMigrationsDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf(messages.StoreReadMigrationsFmt, templates.CMSMigrationsDir, err)
		}
		body := strings.ReplaceAll(string(data), PrefixPlaceholder, m.prefix)
		out = append(out, sqlMigration(strings.TrimSuffix(entry.Name(), ".sql"), body))
	}
	return out, nil
}

func (m *Migrator) hostMigrations() ([]Migration, error) {
	if m.hostDir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(m.hostDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(messages.StoreReadMigrationsFmt, m.hostDir, err)
	}
	var out []Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(m.hostDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf(messages.StoreReadMigrationsFmt, m.hostDir, err)
		}
		out = append(out, sqlMigration(strings.TrimSuffix(entry.Name(), ".sql"), string(data)))
	}
	return out, nil
}

func sqlMigration(name string, body string) Migration {
	return Migration{
		Name: name,
		Up: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, body)
			return err
		},
	}
}

// builtinMigrations are schema fixes expressed in code because they depend on
// the current schema.
func builtinMigrations() []Migration {
	return []Migration{
		{Name: "2026_01_27_200001_add_expires_at_to_personal_access_tokens", Up: addTokenExpiry},
	}
}

// addTokenExpiry adds personal_access_tokens.expires_at for hosts whose token
// table predates it. Hosts without the table are left alone.
func addTokenExpiry(ctx context.Context, tx *sql.Tx) error {
	var name string
	err := tx.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'personal_access_tokens'`).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	present, err := hasColumn(ctx, tx, "personal_access_tokens", "expires_at")
	if err != nil || present {
		return err
	}
	_, err = tx.ExecContext(ctx, `ALTER TABLE personal_access_tokens ADD COLUMN expires_at TEXT NULL`)
	return err
}

// Pending returns migrations not yet recorded in the migrations table.
func (m *Migrator) Pending(ctx context.Context) ([]Migration, error) {
	all, err := m.Migrations()
	if err != nil {
		return nil, err
	}
	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}
	var pending []Migration
	for _, mig := range all {
		if !applied[mig.Name] {
			pending = append(pending, mig)
		}
	}
	return pending, nil
}

func (m *Migrator) applied(ctx context.Context) (map[string]bool, error) {
	applied := map[string]bool{}
	ok, err := m.db.HasTable(ctx, "migrations")
	if err != nil || !ok {
		return applied, err
	}
	db, err := m.db.handle(false)
	if err != nil || db == nil {
		return applied, err
	}
	rows, err := db.QueryContext(ctx, `SELECT migration FROM migrations`)
	if err != nil {
		return nil, fmt.Errorf(messages.StoreQueryFailedFmt, "migrations", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf(messages.StoreQueryFailedFmt, "migrations", err)
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

// Migrate applies every pending migration, each in its own transaction, and
// returns the names applied. It stops at the first failure; earlier
// migrations stay applied.
func (m *Migrator) Migrate(ctx context.Context) ([]string, error) {
	pending, err := m.Pending(ctx)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, nil
	}

	err = m.db.InTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			migration TEXT NOT NULL UNIQUE,
			batch INTEGER NOT NULL
		)`)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf(messages.StoreMigrationsTableFmt, err)
	}

	db, err := m.db.handle(true)
	if err != nil {
		return nil, err
	}
	var batch int
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(batch), 0) + 1 FROM migrations`).Scan(&batch); err != nil {
		return nil, fmt.Errorf(messages.StoreQueryFailedFmt, "migrations", err)
	}

	var applied []string
	for _, mig := range pending {
		err := m.db.InTx(ctx, func(tx *sql.Tx) error {
			if err := mig.Up(ctx, tx); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, `INSERT INTO migrations (migration, batch) VALUES (?, ?)`, mig.Name, batch)
			return err
		})
		if err != nil {
			return applied, fmt.Errorf(messages.StoreMigrationFailedFmt, mig.Name, err)
		}
		m.logger.Debug("migration applied", zap.String("migration", mig.Name), zap.Int("batch", batch))
		applied = append(applied, mig.Name)
	}
	return applied, nil
}
