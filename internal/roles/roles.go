// Package roles seeds the CMS roles and permissions into the host's
// permission tables.
package roles

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/tallcms/cms-installer/internal/messages"
	"github.com/tallcms/cms-installer/internal/store"
)

// Role names.
const (
	SuperAdmin    = "super_admin"
	Administrator = "administrator"
	Editor        = "editor"
	Author        = "author"
)

// Resource operations, named the way the authorization plugin generates them.
var resourceOps = []string{"view_any", "view", "create", "update", "delete", "delete_any", "restore", "force_delete"}

var resources = []string{
	"cms_page",
	"cms_post",
	"cms_category",
	"tallcms_menu",
	"tallcms_media",
	"tallcms_contact_submission",
}

var pages = []string{
	"page_SiteSettings",
	"page_ThemeManager",
	"page_PluginLicenses",
}

// Permissions returns every permission the CMS defines, sorted.
func Permissions() []string {
	out := make([]string, 0, len(resources)*len(resourceOps)+len(pages))
	for _, resource := range resources {
		for _, op := range resourceOps {
			out = append(out, op+"_"+resource)
		}
	}
	out = append(out, pages...)
	sort.Strings(out)
	return out
}

// grantsFor returns the permissions a role receives.
func grantsFor(role string) []string {
	switch role {
	case SuperAdmin:
		return Permissions()
	case Administrator:
		var out []string
		for _, p := range Permissions() {
			if p != "page_PluginLicenses" {
				out = append(out, p)
			}
		}
		return out
	case Editor:
		var out []string
		for _, resource := range []string{"cms_page", "cms_post", "cms_category", "tallcms_media"} {
			for _, op := range []string{"view_any", "view", "create", "update", "delete"} {
				out = append(out, op+"_"+resource)
			}
		}
		return append(out, "view_any_tallcms_menu", "view_tallcms_menu", "update_tallcms_menu")
	case Author:
		return []string{
			"view_any_cms_post", "view_cms_post", "create_cms_post", "update_cms_post",
			"view_any_cms_category", "view_cms_category",
			"view_any_tallcms_media", "view_tallcms_media", "create_tallcms_media",
		}
	}
	return nil
}

// Roles returns the roles the CMS defines, most privileged first.
func Roles() []string {
	return []string{SuperAdmin, Administrator, Editor, Author}
}

// Result counts rows created by a seeding run.
type Result struct {
	Roles       int
	Permissions int
	Grants      int
}

// Seeder creates roles and permissions for one auth guard.
type Seeder struct {
	db     *store.DB
	guard  string
	logger *zap.Logger
}

// NewSeeder returns a Seeder writing to db for guard.
func NewSeeder(db *store.DB, guard string, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{db: db, guard: guard, logger: logger}
}

// Run seeds roles, permissions, and grants in one transaction. Existing rows
// are kept, so repeated runs create nothing. With force the super_admin grants
// are rebuilt so the role holds exactly the current permission set.
func (s *Seeder) Run(ctx context.Context, force bool) (Result, error) {
	var result Result
	err := s.db.InTx(ctx, func(tx *sql.Tx) error {
		roleIDs := map[string]int64{}
		for _, role := range Roles() {
			created, id, err := s.ensure(ctx, tx, "roles", role)
			if err != nil {
				return err
			}
			if created {
				result.Roles++
			}
			roleIDs[role] = id
		}

		permIDs := map[string]int64{}
		for _, perm := range Permissions() {
			created, id, err := s.ensure(ctx, tx, "permissions", perm)
			if err != nil {
				return err
			}
			if created {
				result.Permissions++
			}
			permIDs[perm] = id
		}

		if force {
			if _, err := tx.ExecContext(ctx, `DELETE FROM role_has_permissions WHERE role_id = ?`, roleIDs[SuperAdmin]); err != nil {
				return fmt.Errorf(messages.StoreQueryFailedFmt, "role_has_permissions", err)
			}
		}

		for _, role := range Roles() {
			for _, perm := range grantsFor(role) {
				permID, ok := permIDs[perm]
				if !ok {
					return fmt.Errorf(messages.StorePermissionMissingFmt, perm)
				}
				res, err := tx.ExecContext(ctx,
					`INSERT OR IGNORE INTO role_has_permissions (permission_id, role_id) VALUES (?, ?)`,
					permID, roleIDs[role])
				if err != nil {
					return fmt.Errorf(messages.StoreQueryFailedFmt, "role_has_permissions", err)
				}
				if n, _ := res.RowsAffected(); n > 0 {
					result.Grants++
				}
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	s.logger.Debug("roles seeded",
		zap.Int("roles", result.Roles),
		zap.Int("permissions", result.Permissions),
		zap.Int("grants", result.Grants),
		zap.Bool("force", force))
	return result, nil
}

// ensure inserts name into table (roles or permissions) for the seeder's guard
// when missing and returns its id.
func (s *Seeder) ensure(ctx context.Context, tx *sql.Tx, table string, name string) (bool, int64, error) {
	res, err := tx.ExecContext(ctx,
		fmt.Sprintf(`INSERT OR IGNORE INTO %s (name, guard_name, created_at, updated_at) VALUES (?, ?, datetime('now'), datetime('now'))`, table),
		name, s.guard)
	if err != nil {
		return false, 0, fmt.Errorf(messages.StoreQueryFailedFmt, table, err)
	}
	created := false
	if n, _ := res.RowsAffected(); n > 0 {
		created = true
	}
	var id int64
	err = tx.QueryRowContext(ctx, fmt.Sprintf(`SELECT id FROM %s WHERE name = ? AND guard_name = ?`, table), name, s.guard).Scan(&id)
	if err != nil {
		return false, 0, fmt.Errorf(messages.StoreQueryFailedFmt, table, err)
	}
	return created, id, nil
}
