package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "tallcms.toml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Panel.Path != DefaultPanelPath {
		t.Fatalf("expected default panel path %q, got %q", DefaultPanelPath, cfg.Panel.Path)
	}
	if cfg.Database.Prefix != DefaultDatabasePrefix {
		t.Fatalf("expected default prefix, got %q", cfg.Database.Prefix)
	}
	if !cfg.ThemesEnabled() {
		t.Fatal("expected themes enabled by default")
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	data := []byte(`
[panel]
path = ""
id = "app"

[plugin_mode]
themes_enabled = false
`)
	cfg, err := Parse(data, "test.toml")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.Panel.Path != "" {
		t.Fatalf("expected empty panel path to be kept, got %q", cfg.Panel.Path)
	}
	if cfg.Panel.ID != "app" {
		t.Fatalf("expected panel id app, got %q", cfg.Panel.ID)
	}
	if cfg.ThemesEnabled() {
		t.Fatal("expected themes disabled")
	}
	if cfg.Auth.Guard != DefaultAuthGuard {
		t.Fatalf("expected default guard, got %q", cfg.Auth.Guard)
	}
	if cfg.PagesTable() != "tallcms_pages" {
		t.Fatalf("unexpected pages table %q", cfg.PagesTable())
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("[panel]\npaht = \"admin\"\n"), "test.toml")
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !errors.Is(err, ErrConfigValidation) {
		t.Fatalf("expected ErrConfigValidation, got %v", err)
	}
}

func TestParseSyntaxErrorIsNotValidation(t *testing.T) {
	_, err := Parse([]byte("[panel\n"), "test.toml")
	if err == nil {
		t.Fatal("expected syntax error")
	}
	if errors.Is(err, ErrConfigValidation) {
		t.Fatalf("syntax errors must not wrap ErrConfigValidation: %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "panel id", mutate: func(c *Config) { c.Panel.ID = " " }, wantErr: "panel.id"},
		{name: "multi segment panel path", mutate: func(c *Config) { c.Panel.Path = "/admin/cms/" }, wantErr: "panel.path"},
		{name: "prefix", mutate: func(c *Config) { c.Database.Prefix = "tall-cms;" }, wantErr: "database.prefix"},
		{name: "database path", mutate: func(c *Config) { c.Database.Path = "" }, wantErr: "database.path"},
		{name: "guard", mutate: func(c *Config) { c.Auth.Guard = "" }, wantErr: "auth.guard"},
		{name: "app url", mutate: func(c *Config) { c.App.URL = "localhost" }, wantErr: "app.url"},
		{name: "host command", mutate: func(c *Config) { c.Host.Command = nil }, wantErr: "host.command"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.mutate(&cfg)
			err := cfg.Validate("cfg.toml")
			if err == nil {
				t.Fatalf("expected error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}

	cfg := Defaults()
	cfg.Panel.Path = "/admin/"
	if err := cfg.Validate("cfg.toml"); err != nil {
		t.Fatalf("slash-wrapped single segment should validate: %v", err)
	}
}

func TestDatabasePath(t *testing.T) {
	root := t.TempDir()
	cfg := Defaults()

	got, err := cfg.DatabasePath(root)
	if err != nil {
		t.Fatalf("DatabasePath error: %v", err)
	}
	if got != filepath.Join(root, "database", "database.sqlite") {
		t.Fatalf("unexpected relative resolution %q", got)
	}

	abs := filepath.Join(t.TempDir(), "cms.sqlite")
	cfg.Database.Path = abs
	got, err = cfg.DatabasePath(root)
	if err != nil {
		t.Fatalf("DatabasePath error: %v", err)
	}
	if got != abs {
		t.Fatalf("expected absolute path kept, got %q", got)
	}

	home, err := homedir.Dir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	cfg.Database.Path = "~/cms.sqlite"
	got, err = cfg.DatabasePath(root)
	if err != nil {
		t.Fatalf("DatabasePath error: %v", err)
	}
	if got != filepath.Join(home, "cms.sqlite") {
		t.Fatalf("expected home expansion, got %q", got)
	}
}

func TestGuardUserModel(t *testing.T) {
	cfg := Defaults()
	if got := cfg.GuardUserModel(); got != DefaultUserModel {
		t.Fatalf("expected default model, got %q", got)
	}

	cfg.Auth.Guard = "admin"
	cfg.Host.Auth.Guards["admin"] = HostGuard{Provider: "admins"}
	cfg.Host.Auth.Providers["admins"] = HostProvider{Model: `App\Models\Admin`}
	if got := cfg.GuardUserModel(); got != `App\Models\Admin` {
		t.Fatalf("expected admin model, got %q", got)
	}

	cfg.Auth.Guard = "missing"
	if got := cfg.GuardUserModel(); got != DefaultUserModel {
		t.Fatalf("expected fallback for unknown guard, got %q", got)
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tallcms.toml")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error when config path is a directory")
	}
}
