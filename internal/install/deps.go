package install

import (
	"context"

	"go.uber.org/zap"

	"github.com/tallcms/cms-installer/internal/config"
	"github.com/tallcms/cms-installer/internal/detect"
	"github.com/tallcms/cms-installer/internal/publish"
	"github.com/tallcms/cms-installer/internal/roles"
)

// Schema answers read-only questions about the host database.
type Schema interface {
	HasTable(ctx context.Context, table string) (bool, error)
	RoleExists(ctx context.Context, name string) (bool, error)
}

// Migrator applies pending migrations and returns the names applied.
type Migrator interface {
	Migrate(ctx context.Context) ([]string, error)
}

// Publisher copies bundled files into the host.
type Publisher interface {
	PermissionSchema() (bool, error)
	Config() (publish.ConfigResult, error)
	Assets() (int, error)
}

// Themes reads and sets the active frontend theme.
type Themes interface {
	ConfigExists() (bool, error)
	Active() (string, error)
	Activate(name string) error
}

// HostCommands runs host framework commands.
type HostCommands interface {
	PublishPanelAssets(ctx context.Context) error
}

// RoleSeeder creates roles and permissions.
type RoleSeeder interface {
	Run(ctx context.Context, force bool) (roles.Result, error)
}

// Inspector introspects the host application.
type Inspector interface {
	HasPanel() detect.Detection
	PluginRegistered() detect.Detection
	AuthorizationPluginInstalled() detect.Detection
	UserModelHasRoles(model string) detect.Detection
	ResolveUserModel(cfg *config.Config) string
	PanelPath(cfg *config.Config) string
}

// Reloader is implemented by config providers that can re-read their file.
type Reloader interface {
	Reload() error
}

// ConfirmFunc asks a yes/no question with yes as the default.
type ConfirmFunc func(question string) (bool, error)

// OpenURLFunc opens a URL in the operator's browser.
type OpenURLFunc func(ctx context.Context, url string) error

// Deps are the collaborators the orchestrator drives.
type Deps struct {
	Config    config.Provider
	Schema    Schema
	Migrator  Migrator
	Publisher Publisher
	Themes    Themes
	Host      HostCommands
	Roles     RoleSeeder
	Inspector Inspector

	// Confirm is nil when the terminal is not interactive.
	Confirm ConfirmFunc
	OpenURL OpenURLFunc
	Logger  *zap.Logger
}

// TaskOutcome is the result shown on a task line. An empty Detail prints the
// default done or failed label.
type TaskOutcome struct {
	Detail string
	Failed bool
}

// Reporter renders operator-facing output.
type Reporter interface {
	Banner()
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Line(msg string)
	NewLine()
	Task(description string, fn func() TaskOutcome)
	BulletList(items []string)
}
