// Package templates embeds the files the installer publishes into a host
// application: the config template, static assets, bundled themes, and
// migrations.
package templates

import (
	"embed"
	"io/fs"
	"path"
)

//go:embed config assets migrations themes
var files embed.FS

// Template roots.
const (
	ConfigTemplate      = "config/tallcms.toml"
	AssetsDir           = "assets"
	ThemesDir           = "themes"
	PermissionMigration = "migrations/permission/2024_01_01_000000_create_permission_tables.sql"
	CMSMigrationsDir    = "migrations/cms"
)

// Read returns the content of the embedded file at name.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// Walk visits every embedded entry under root.
func Walk(root string, fn fs.WalkDirFunc) error {
	return fs.WalkDir(files, root, fn)
}

// ReadDir lists the embedded entries directly under name, sorted by name.
func ReadDir(name string) ([]fs.DirEntry, error) {
	return files.ReadDir(name)
}

// Exists reports whether name is an embedded file or directory.
func Exists(name string) bool {
	_, err := fs.Stat(files, path.Clean(name))
	return err == nil
}
