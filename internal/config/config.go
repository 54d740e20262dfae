package config

// Config is the TallCMS configuration read from config/tallcms.toml.
type Config struct {
	App        AppConfig        `toml:"app"`
	Database   DatabaseConfig   `toml:"database"`
	Panel      PanelConfig      `toml:"panel"`
	PluginMode PluginModeConfig `toml:"plugin_mode"`
	Auth       AuthConfig       `toml:"auth"`
	Host       HostConfig       `toml:"host"`
}

// AppConfig describes the host application.
type AppConfig struct {
	URL string `toml:"url"`
}

// DatabaseConfig locates the CMS database and its table-name prefix.
type DatabaseConfig struct {
	Prefix string `toml:"prefix"`
	Path   string `toml:"path"`
}

// PanelConfig identifies the host admin panel the CMS attaches to.
// Path may be empty when the panel is mounted at the application root.
type PanelConfig struct {
	Path string `toml:"path"`
	ID   string `toml:"id"`
}

// PluginModeConfig holds settings used when the CMS runs as a panel plugin.
type PluginModeConfig struct {
	ThemesEnabled *bool  `toml:"themes_enabled"`
	UserModel     string `toml:"user_model"`
}

// AuthConfig selects the authentication guard used for roles.
type AuthConfig struct {
	Guard string `toml:"guard"`
}

// HostConfig describes how to reach the host framework.
type HostConfig struct {
	Command []string       `toml:"command"`
	Auth    HostAuthConfig `toml:"auth"`
}

// HostAuthConfig mirrors the host's guard and user-provider mapping.
type HostAuthConfig struct {
	Guards    map[string]HostGuard    `toml:"guards"`
	Providers map[string]HostProvider `toml:"providers"`
}

// HostGuard points a guard at a user provider.
type HostGuard struct {
	Provider string `toml:"provider"`
}

// HostProvider names the user model class of a provider.
type HostProvider struct {
	Model string `toml:"model"`
}

// Default values applied before the config file is decoded.
const (
	DefaultAppURL         = "http://localhost"
	DefaultDatabasePrefix = "tallcms_"
	DefaultDatabasePath   = "database/database.sqlite"
	DefaultPanelPath      = "admin"
	DefaultPanelID        = "admin"
	DefaultAuthGuard      = "web"
	DefaultUserModel      = `App\Models\User`
)

// Defaults returns the configuration used when no config file has been published.
func Defaults() Config {
	themes := true
	return Config{
		App:        AppConfig{URL: DefaultAppURL},
		Database:   DatabaseConfig{Prefix: DefaultDatabasePrefix, Path: DefaultDatabasePath},
		Panel:      PanelConfig{Path: DefaultPanelPath, ID: DefaultPanelID},
		PluginMode: PluginModeConfig{ThemesEnabled: &themes},
		Auth:       AuthConfig{Guard: DefaultAuthGuard},
		Host: HostConfig{
			Command: []string{"php", "artisan"},
			Auth: HostAuthConfig{
				Guards:    map[string]HostGuard{DefaultAuthGuard: {Provider: "users"}},
				Providers: map[string]HostProvider{"users": {Model: DefaultUserModel}},
			},
		},
	}
}

// ThemesEnabled reports whether theme auto-activation is on. Unset means enabled.
func (c *Config) ThemesEnabled() bool {
	return c.PluginMode.ThemesEnabled == nil || *c.PluginMode.ThemesEnabled
}

// PagesTable returns the prefixed name of the primary content table.
func (c *Config) PagesTable() string {
	return c.Database.Prefix + "pages"
}

// GuardUserModel resolves the user model configured for the auth guard, following
// guard -> provider -> model. Returns DefaultUserModel when the chain is incomplete.
func (c *Config) GuardUserModel() string {
	guard, ok := c.Host.Auth.Guards[c.Auth.Guard]
	if !ok {
		return DefaultUserModel
	}
	provider, ok := c.Host.Auth.Providers[guard.Provider]
	if !ok || provider.Model == "" {
		return DefaultUserModel
	}
	return provider.Model
}
