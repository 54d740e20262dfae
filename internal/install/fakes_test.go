package install

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tallcms/cms-installer/internal/config"
	"github.com/tallcms/cms-installer/internal/detect"
	"github.com/tallcms/cms-installer/internal/publish"
	"github.com/tallcms/cms-installer/internal/roles"
)

// recordingReporter captures output as plain lines.
type recordingReporter struct {
	lines []string
	tasks []string
}

func (r *recordingReporter) Banner()          {}
func (r *recordingReporter) Info(msg string)  { r.lines = append(r.lines, "INFO "+msg) }
func (r *recordingReporter) Warn(msg string)  { r.lines = append(r.lines, "WARN "+msg) }
func (r *recordingReporter) Error(msg string) { r.lines = append(r.lines, "ERROR "+msg) }
func (r *recordingReporter) Line(msg string)  { r.lines = append(r.lines, msg) }
func (r *recordingReporter) NewLine()         {}
func (r *recordingReporter) BulletList(items []string) {
	for _, item := range items {
		r.lines = append(r.lines, "- "+item)
	}
}

func (r *recordingReporter) Task(description string, fn func() TaskOutcome) {
	outcome := fn()
	label := "DONE"
	if outcome.Detail != "" {
		label = outcome.Detail
	}
	if outcome.Failed {
		label = "FAIL"
	}
	line := description + " " + label
	r.tasks = append(r.tasks, line)
	r.lines = append(r.lines, "TASK "+line)
}

func (r *recordingReporter) output() string {
	return strings.Join(r.lines, "\n")
}

func (r *recordingReporter) hasTask(prefix string) bool {
	for _, task := range r.tasks {
		if strings.HasPrefix(task, prefix) {
			return true
		}
	}
	return false
}

type fakeSchema struct {
	tables   map[string]bool
	roles    map[string]bool
	tableErr error
	roleErr  error
}

func (f *fakeSchema) HasTable(_ context.Context, table string) (bool, error) {
	if f.tableErr != nil {
		return false, f.tableErr
	}
	return f.tables[table], nil
}

func (f *fakeSchema) RoleExists(_ context.Context, name string) (bool, error) {
	if f.roleErr != nil {
		return false, f.roleErr
	}
	return f.roles[name], nil
}

// calls records mutating collaborator calls in order.
type calls []string

func (c *calls) add(name string) { *c = append(*c, name) }

type fakeMigrator struct {
	calls   *calls
	applied []string
	err     error
}

func (f *fakeMigrator) Migrate(context.Context) ([]string, error) {
	f.calls.add("migrate")
	return f.applied, f.err
}

type fakePublisher struct {
	calls        *calls
	configResult publish.ConfigResult
	assetsErr    error
}

func (f *fakePublisher) PermissionSchema() (bool, error) {
	f.calls.add("permission-schema")
	return true, nil
}

func (f *fakePublisher) Config() (publish.ConfigResult, error) {
	f.calls.add("config")
	return f.configResult, nil
}

func (f *fakePublisher) Assets() (int, error) {
	f.calls.add("assets")
	return 2, f.assetsErr
}

type fakeThemes struct {
	calls       *calls
	exists      bool
	active      string
	activeErr   error
	activateErr error
}

func (f *fakeThemes) ConfigExists() (bool, error) { return f.exists, nil }
func (f *fakeThemes) Active() (string, error)     { return f.active, f.activeErr }
func (f *fakeThemes) Activate(name string) error {
	f.calls.add("activate:" + name)
	return f.activateErr
}

type fakeHost struct {
	calls *calls
	err   error
}

func (f *fakeHost) PublishPanelAssets(context.Context) error {
	f.calls.add("panel-assets")
	return f.err
}

type fakeRoles struct {
	calls *calls
	err   error
}

func (f *fakeRoles) Run(_ context.Context, force bool) (roles.Result, error) {
	f.calls.add(fmt.Sprintf("roles:force=%t", force))
	return roles.Result{Roles: 4, Permissions: 51, Grants: 120}, f.err
}

type fakeInspector struct {
	hasPanel  detect.Detection
	plugin    detect.Detection
	shield    detect.Detection
	userRoles detect.Detection
	panelPath string
}

func passingInspector() *fakeInspector {
	return &fakeInspector{
		hasPanel:  detect.Confirmed(true),
		plugin:    detect.Confirmed(true),
		shield:    detect.Confirmed(true),
		userRoles: detect.Inferred(true),
		panelPath: "/admin",
	}
}

func (f *fakeInspector) HasPanel() detect.Detection                     { return f.hasPanel }
func (f *fakeInspector) PluginRegistered() detect.Detection             { return f.plugin }
func (f *fakeInspector) AuthorizationPluginInstalled() detect.Detection { return f.shield }
func (f *fakeInspector) UserModelHasRoles(string) detect.Detection      { return f.userRoles }
func (f *fakeInspector) ResolveUserModel(cfg *config.Config) string     { return cfg.GuardUserModel() }
func (f *fakeInspector) PanelPath(*config.Config) string                { return f.panelPath }

type reloadingProvider struct {
	config.Static
	reloads int
}

func (r *reloadingProvider) Reload() error {
	r.reloads++
	return nil
}

type fixture struct {
	calls     *calls
	schema    *fakeSchema
	migrator  *fakeMigrator
	publisher *fakePublisher
	themes    *fakeThemes
	host      *fakeHost
	roles     *fakeRoles
	inspector *fakeInspector
	cfg       config.Config
	confirm   ConfirmFunc
	openURL   OpenURLFunc
}

func newFixture() *fixture {
	c := &calls{}
	return &fixture{
		calls:     c,
		schema:    &fakeSchema{tables: map[string]bool{}, roles: map[string]bool{}},
		migrator:  &fakeMigrator{calls: c},
		publisher: &fakePublisher{calls: c},
		themes:    &fakeThemes{calls: c},
		host:      &fakeHost{calls: c},
		roles:     &fakeRoles{calls: c},
		inspector: passingInspector(),
		cfg:       config.Defaults(),
	}
}

func (f *fixture) installed() {
	f.schema.tables["tallcms_pages"] = true
	f.schema.tables["roles"] = true
	f.schema.roles[roles.SuperAdmin] = true
}

func (f *fixture) run(opts Options) (ExitStatus, *recordingReporter) {
	out := &recordingReporter{}
	o := New(f.deps(config.NewStatic(f.cfg)), out)
	return o.Run(context.Background(), opts), out
}

func (f *fixture) deps(provider config.Provider) Deps {
	return Deps{
		Config:    provider,
		Schema:    f.schema,
		Migrator:  f.migrator,
		Publisher: f.publisher,
		Themes:    f.themes,
		Host:      f.host,
		Roles:     f.roles,
		Inspector: f.inspector,
		Confirm:   f.confirm,
		OpenURL:   f.openURL,
	}
}

var errBoom = errors.New("boom")
