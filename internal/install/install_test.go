package install

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallcms/cms-installer/internal/config"
	"github.com/tallcms/cms-installer/internal/detect"
	"github.com/tallcms/cms-installer/internal/messages"
	"github.com/tallcms/cms-installer/internal/publish"
	"github.com/tallcms/cms-installer/internal/testutil"
)

var fullPipeline = []string{
	"permission-schema",
	"config",
	"migrate",
	"assets",
	"activate:talldaisy",
	"panel-assets",
	"roles:force=false",
}

func TestRunFullPipeline(t *testing.T) {
	f := newFixture()
	status, out := f.run(Options{})

	assert.Equal(t, Success, status)
	assert.Equal(t, fullPipeline, []string(*f.calls))
	assert.Contains(t, out.output(), messages.InstallPrerequisitesMet)
	assert.Contains(t, out.output(), messages.InstallSucceeded)
	assert.Contains(t, out.output(), "- Visit /admin to access the admin panel")
	assert.Contains(t, out.output(), messages.InstallAssetsOverwrite)
}

func TestRunAlreadyInstalledIsNoOp(t *testing.T) {
	f := newFixture()
	f.installed()

	status, out := f.run(Options{})

	assert.Equal(t, Success, status)
	assert.Empty(t, *f.calls, "an installed host must see zero writes")
	assert.Contains(t, out.output(), "WARN "+messages.InstallAlreadyInstalled)
	assert.Contains(t, out.output(), messages.InstallUseForce)
	assert.NotContains(t, out.output(), messages.InstallSucceeded)
}

func TestRunForceReinstalls(t *testing.T) {
	f := newFixture()
	f.installed()

	status, _ := f.run(Options{Force: true})

	assert.Equal(t, Success, status)
	assert.Contains(t, []string(*f.calls), "roles:force=true")
	assert.Contains(t, []string(*f.calls), "migrate")
}

func TestState(t *testing.T) {
	ctx := context.Background()

	f := newFixture()
	o := New(f.deps(config.NewStatic(f.cfg)), &recordingReporter{})
	assert.Equal(t, StateNotInstalled, o.State(ctx))

	f.schema.tables["tallcms_pages"] = true
	f.schema.tables["roles"] = true
	assert.Equal(t, StateNotInstalled, o.State(ctx), "super_admin role is required")

	f.installed()
	assert.Equal(t, StateInstalled, o.State(ctx))

	f.schema.roleErr = errBoom
	assert.Equal(t, StateIndeterminate, o.State(ctx))

	f.schema.tableErr = errBoom
	assert.Equal(t, StateIndeterminate, o.State(ctx))
}

func TestStateUsesTablePrefix(t *testing.T) {
	f := newFixture()
	f.cfg.Database.Prefix = "cms_"
	f.installed()
	o := New(f.deps(config.NewStatic(f.cfg)), &recordingReporter{})
	assert.Equal(t, StateNotInstalled, o.State(context.Background()))

	f.schema.tables["cms_pages"] = true
	assert.Equal(t, StateInstalled, o.State(context.Background()))
}

func TestRunIndeterminateStateProceeds(t *testing.T) {
	f := newFixture()
	f.schema.tableErr = errBoom

	status, out := f.run(Options{})

	assert.Equal(t, Success, status)
	assert.NotContains(t, out.output(), messages.InstallAlreadyInstalled)
	assert.Contains(t, out.output(), "WARN Could not inspect the roles table")
	assert.Contains(t, []string(*f.calls), "permission-schema")
}

func TestRunReportsAllFailedPrerequisites(t *testing.T) {
	f := newFixture()
	f.inspector = &fakeInspector{
		hasPanel:  detect.Inferred(false),
		plugin:    detect.Confirmed(false),
		shield:    detect.Unknown(),
		userRoles: detect.Inferred(false),
	}

	status, out := f.run(Options{})

	assert.Equal(t, Failure, status)
	assert.Empty(t, *f.calls, "no step after the prerequisite check may run")

	got := Issues(Prerequisites(&f.cfg, f.inspector))
	want := []Issue{
		{Check: messages.PrereqCheckUserModel, Message: `User model (App\Models\User) is missing the HasRoles trait`, Remediation: messages.PrereqUserModelFix, Detection: detect.Inferred(false)},
		{Check: messages.PrereqCheckPanel, Message: messages.PrereqPanelMissing, Remediation: messages.PrereqPanelFix, Detection: detect.Inferred(false)},
		{Check: messages.PrereqCheckAuthorization, Message: messages.PrereqShieldMissing, Remediation: messages.PrereqShieldFix, Detection: detect.Unknown()},
		{Check: messages.PrereqCheckPlugin, Message: messages.PrereqPluginMissing, Remediation: messages.PrereqPluginFix, Detection: detect.Confirmed(false)},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(detect.Detection{})); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}

	text := out.output()
	assert.Contains(t, text, "ERROR "+messages.InstallPrerequisitesFailed)
	for i, issue := range want {
		assert.Contains(t, text, fmt.Sprintf(messages.InstallIssueLineFmt, i+1, issue.Message))
	}
	assert.Equal(t, 4, strings.Count(text, messages.InstallIssueFixLabel))
	for _, issue := range want {
		for _, line := range strings.Split(issue.Remediation, "\n") {
			assert.Contains(t, text, fmt.Sprintf(messages.InstallIssueFixLineFmt, line))
		}
	}
	assert.Contains(t, text, "     "+messages.PrereqShieldFix)
	assert.Contains(t, text, "         composer require filament/filament:\"^4.0\"")
	assert.Contains(t, text, messages.InstallPrerequisitesRerun)
}

func TestRunSingleFailedPrerequisite(t *testing.T) {
	f := newFixture()
	f.inspector.plugin = detect.Inferred(false)

	status, out := f.run(Options{})

	assert.Equal(t, Failure, status)
	assert.Contains(t, out.output(), "1. "+messages.PrereqPluginMissing)
	assert.NotContains(t, out.output(), "2. ")
}

func TestRunSkipChecks(t *testing.T) {
	f := newFixture()
	f.inspector = &fakeInspector{panelPath: "/admin"}

	status, out := f.run(Options{SkipChecks: true})

	assert.Equal(t, Success, status)
	assert.False(t, out.hasTask(messages.InstallTaskCheckingPrerequisites))
	assert.Contains(t, out.output(), "WARN "+messages.InstallSkipChecksRemind)
}

func TestRunSkipMigrations(t *testing.T) {
	f := newFixture()

	status, _ := f.run(Options{SkipMigrations: true})

	assert.Equal(t, Success, status)
	assert.Equal(t, []string{"config", "assets", "activate:talldaisy", "panel-assets", "roles:force=false"}, []string(*f.calls))
}

func TestRunSkipSetup(t *testing.T) {
	f := newFixture()

	status, out := f.run(Options{SkipSetup: true})

	assert.Equal(t, Success, status)
	assert.NotContains(t, []string(*f.calls), "roles:force=false")
	assert.NotContains(t, out.output(), messages.InstallSettingUpRoles)
}

func TestRunPermissionSchemaAlreadyPublished(t *testing.T) {
	f := newFixture()
	f.schema.tables["roles"] = true

	status, out := f.run(Options{})

	assert.Equal(t, Success, status)
	assert.NotContains(t, []string(*f.calls), "permission-schema")
	assert.True(t, out.hasTask(messages.InstallTaskPermissionSchema+" "+messages.InstallAlreadyPublished))
}

func TestRunMigrationFailureIsFatal(t *testing.T) {
	f := newFixture()
	f.migrator.err = errBoom

	status, out := f.run(Options{})

	assert.Equal(t, Failure, status)
	assert.Equal(t, []string{"permission-schema", "config", "migrate"}, []string(*f.calls), "earlier steps stay applied and later steps do not run")
	assert.Contains(t, out.output(), "ERROR "+messages.InstallMigrationsFailed)
	assert.Contains(t, out.output(), "boom")
	assert.NotContains(t, out.output(), messages.InstallSucceeded)
}

func TestRunMigrationsAppliedCount(t *testing.T) {
	f := newFixture()
	f.migrator.applied = []string{"a", "b"}

	_, out := f.run(Options{})
	assert.True(t, out.hasTask(messages.InstallTaskMigrations+" 2 applied"))
}

func TestRunConfigAlreadyPublishedShowsDiff(t *testing.T) {
	f := newFixture()
	f.publisher.configResult = publish.ConfigResult{Diff: "--- a\n+++ b\n-x\n+y\n", Truncated: true}

	_, out := f.run(Options{})

	text := out.output()
	assert.True(t, out.hasTask(messages.InstallTaskPublishConfig+" "+messages.InstallAlreadyPublished))
	assert.Contains(t, text, messages.InstallConfigDiffersHeader)
	assert.Contains(t, text, "  +y")
	assert.Contains(t, text, messages.InstallConfigDiffTruncated)
}

func TestRunReloadsConfigAfterPublishing(t *testing.T) {
	f := newFixture()
	f.publisher.configResult = publish.ConfigResult{Written: true}
	provider := &reloadingProvider{Static: config.NewStatic(f.cfg)}

	status := New(f.deps(provider), &recordingReporter{}).Run(context.Background(), Options{})

	assert.Equal(t, Success, status)
	assert.Equal(t, 1, provider.reloads)
}

func TestRunNonFatalFailuresWarn(t *testing.T) {
	f := newFixture()
	f.publisher.assetsErr = errBoom
	f.host.err = errBoom
	f.roles.err = errBoom

	status, out := f.run(Options{})

	assert.Equal(t, Success, status)
	assert.Equal(t, fullPipeline, []string(*f.calls))
	text := out.output()
	assert.True(t, out.hasTask(messages.InstallTaskAssets+" FAIL"))
	assert.Contains(t, text, "WARN Could not publish Filament assets: boom")
	assert.Contains(t, text, "WARN Could not set up roles and permissions: boom")
	assert.Contains(t, text, messages.InstallSucceeded)
}

func TestConfigureTheme(t *testing.T) {
	tests := []struct {
		name        string
		themes      bool
		exists      bool
		active      string
		activeErr   error
		activateErr error
		force       bool
		wantCall    bool
		wantTask    string
		wantWarn    string
	}{
		{name: "fresh host", themes: true, wantCall: true, wantTask: messages.InstallTaskActivateTheme + " DONE"},
		{name: "themes disabled", themes: false, wantTask: messages.InstallTaskTheme + " " + messages.InstallThemeDisabled},
		{name: "custom theme kept", themes: true, exists: true, active: "corporate", wantTask: messages.InstallTaskTheme + " keeping 'corporate'"},
		{name: "default theme replaced", themes: true, exists: true, active: "default", wantCall: true},
		{name: "talldaisy reactivated", themes: true, exists: true, active: "talldaisy", wantCall: true},
		{name: "empty active treated as default", themes: true, exists: true, active: "", wantCall: true},
		{name: "force overrides custom theme", themes: true, exists: true, active: "corporate", force: true, wantCall: true},
		{name: "unreadable config", themes: true, exists: true, activeErr: errBoom, wantCall: true, wantWarn: messages.InstallThemeUnreadable},
		{name: "activation failure", themes: true, activateErr: errBoom, wantCall: true, wantTask: messages.InstallTaskActivateTheme + " FAIL", wantWarn: messages.InstallThemeActivateFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.cfg.PluginMode.ThemesEnabled = testutil.BoolPtr(tt.themes)
			f.themes.exists = tt.exists
			f.themes.active = tt.active
			f.themes.activeErr = tt.activeErr
			f.themes.activateErr = tt.activateErr

			status, out := f.run(Options{Force: tt.force})

			assert.Equal(t, Success, status)
			assert.Equal(t, tt.wantCall, contains(*f.calls, "activate:talldaisy"))
			if tt.wantTask != "" {
				assert.True(t, out.hasTask(tt.wantTask), "tasks: %v", out.tasks)
			}
			if tt.wantWarn != "" {
				assert.Contains(t, out.output(), "WARN "+tt.wantWarn)
			}
			if tt.activateErr != nil {
				assert.Contains(t, out.output(), messages.InstallThemeListHint)
			}
		})
	}
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func TestStarPrompt(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		f := newFixture()
		var opened []string
		f.confirm = func(question string) (bool, error) {
			assert.Equal(t, messages.InstallStarPrompt, question)
			return true, nil
		}
		f.openURL = func(_ context.Context, url string) error {
			opened = append(opened, url)
			return nil
		}

		_, out := f.run(Options{})
		assert.Equal(t, []string{messages.InstallRepoURL}, opened)
		assert.Contains(t, out.output(), messages.InstallStarThanks)
	})

	t.Run("declined", func(t *testing.T) {
		f := newFixture()
		f.confirm = func(string) (bool, error) { return false, nil }
		f.openURL = func(context.Context, string) error {
			t.Fatal("must not open the browser")
			return nil
		}
		_, out := f.run(Options{})
		assert.NotContains(t, out.output(), messages.InstallStarThanks)
	})

	t.Run("non-interactive", func(t *testing.T) {
		f := newFixture()
		f.openURL = func(context.Context, string) error {
			t.Fatal("must not open the browser")
			return nil
		}
		status, _ := f.run(Options{})
		require.Equal(t, Success, status)
	})
}

func TestExitStatusCode(t *testing.T) {
	assert.Equal(t, 0, Success.Code())
	assert.Equal(t, 1, Failure.Code())
}
