package config

import "path/filepath"

// Paths holds resolved locations inside a host application.
type Paths struct {
	Root                 string
	ConfigPath           string
	ThemeConfigPath      string
	MigrationsDir        string
	PublicAssetsDir      string
	ThemesDir            string
	ProvidersDir         string
	FilamentProvidersDir string
	BootstrapProviders   string
	PanelManifest        string
	ComposerJSON         string
	ComposerLock         string
	ComposerInstalled    string
	EnvFile              string
}

// DefaultPaths returns the default locations for a host root.
func DefaultPaths(root string) Paths {
	return Paths{
		Root:                 root,
		ConfigPath:           filepath.Join(root, "config", "tallcms.toml"),
		ThemeConfigPath:      filepath.Join(root, "config", "theme.toml"),
		MigrationsDir:        filepath.Join(root, "database", "migrations"),
		PublicAssetsDir:      filepath.Join(root, "public", "vendor", "tallcms"),
		ThemesDir:            filepath.Join(root, "public", "themes"),
		ProvidersDir:         filepath.Join(root, "app", "Providers"),
		FilamentProvidersDir: filepath.Join(root, "app", "Providers", "Filament"),
		BootstrapProviders:   filepath.Join(root, "bootstrap", "providers.php"),
		PanelManifest:        filepath.Join(root, "bootstrap", "cache", "panels.yaml"),
		ComposerJSON:         filepath.Join(root, "composer.json"),
		ComposerLock:         filepath.Join(root, "composer.lock"),
		ComposerInstalled:    filepath.Join(root, "vendor", "composer", "installed.json"),
		EnvFile:              filepath.Join(root, ".env"),
	}
}
