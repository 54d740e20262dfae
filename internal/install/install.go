// Package install drives the TallCMS install pipeline: an installed-state
// gate, prerequisite checks, publishing, migrations, theme activation, and
// role setup, reported step by step.
package install

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tallcms/cms-installer/internal/messages"
	"github.com/tallcms/cms-installer/internal/roles"
	"github.com/tallcms/cms-installer/internal/theme"
)

// Orchestrator runs the install pipeline against its collaborators.
type Orchestrator struct {
	deps   Deps
	out    Reporter
	logger *zap.Logger
}

// New returns an Orchestrator.
func New(deps Deps, out Reporter) *Orchestrator {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{deps: deps, out: out, logger: logger}
}

// State probes whether TallCMS is installed: the prefixed pages table, the
// roles table, and a super_admin role must all exist. It never writes and
// never fails; probe errors yield StateIndeterminate.
func (o *Orchestrator) State(ctx context.Context) State {
	cfg := o.deps.Config.Current()
	for _, table := range []string{cfg.PagesTable(), "roles"} {
		ok, err := o.deps.Schema.HasTable(ctx, table)
		if err != nil {
			o.logger.Debug("install probe failed", zap.String("table", table), zap.Error(err))
			return StateIndeterminate
		}
		if !ok {
			return StateNotInstalled
		}
	}
	ok, err := o.deps.Schema.RoleExists(ctx, roles.SuperAdmin)
	if err != nil {
		o.logger.Debug("install probe failed", zap.String("role", roles.SuperAdmin), zap.Error(err))
		return StateIndeterminate
	}
	if !ok {
		return StateNotInstalled
	}
	return StateInstalled
}

// Run executes the pipeline. Only failed prerequisites and failed migrations
// stop it; other step failures are reported as warnings. Nothing is rolled
// back, so steps completed before a failure stay applied.
func (o *Orchestrator) Run(ctx context.Context, opts Options) ExitStatus {
	o.out.Banner()
	o.out.Info(messages.InstallHeader)
	o.out.NewLine()

	if !opts.Force {
		state := o.State(ctx)
		o.logger.Debug("install state", zap.Stringer("state", state))
		if state == StateInstalled {
			o.out.Warn(messages.InstallAlreadyInstalled)
			o.out.Line(messages.InstallUseForce)
			o.out.NewLine()
			return Success
		}
	}

	steps := []struct {
		name string
		skip bool
		run  func(context.Context, Options) bool
	}{
		{"prerequisites", opts.SkipChecks, o.checkPrerequisites},
		{"permission-schema", opts.SkipMigrations, o.publishPermissionSchema},
		{"config", false, o.publishConfig},
		{"migrations", opts.SkipMigrations, o.runMigrations},
		{"assets", false, o.publishAssets},
		{"theme", false, o.configureTheme},
		{"panel-assets", false, o.publishPanelAssets},
		{"roles", opts.SkipSetup, o.setupRoles},
	}
	for _, step := range steps {
		if step.skip {
			o.logger.Debug("step skipped", zap.String("step", step.name))
			continue
		}
		o.logger.Debug("step started", zap.String("step", step.name))
		if !step.run(ctx, opts) {
			o.logger.Debug("step failed", zap.String("step", step.name))
			return Failure
		}
	}

	o.showCompletion(ctx, opts)
	return Success
}

func (o *Orchestrator) checkPrerequisites(_ context.Context, _ Options) bool {
	o.out.Task(messages.InstallTaskCheckingPrerequisites, func() TaskOutcome { return TaskOutcome{} })

	cfg := o.deps.Config.Current()
	results := Prerequisites(cfg, o.deps.Inspector)
	for _, result := range results {
		o.logger.Debug("prerequisite", zap.String("check", result.Check), zap.Stringer("detection", result.Detection))
	}
	issues := Issues(results)
	if len(issues) == 0 {
		o.out.Line(messages.InstallPrerequisitesMet)
		o.out.NewLine()
		return true
	}

	o.out.NewLine()
	o.out.Error(messages.InstallPrerequisitesFailed)
	o.out.NewLine()
	for i, issue := range issues {
		o.out.Line(fmt.Sprintf(messages.InstallIssueLineFmt, i+1, issue.Message))
		o.out.NewLine()
		o.out.Line(messages.InstallIssueFixLabel)
		for _, line := range strings.Split(issue.Remediation, "\n") {
			o.out.Line(fmt.Sprintf(messages.InstallIssueFixLineFmt, line))
		}
		o.out.NewLine()
	}
	o.out.Line(messages.InstallPrerequisitesRerun)
	o.out.NewLine()
	return false
}

func (o *Orchestrator) publishPermissionSchema(ctx context.Context, _ Options) bool {
	exists, err := o.deps.Schema.HasTable(ctx, "roles")
	if err != nil {
		o.out.Warn(fmt.Sprintf(messages.InstallPermissionProbeFailedFmt, err))
	}
	if exists {
		o.out.Task(messages.InstallTaskPermissionSchema, func() TaskOutcome {
			return TaskOutcome{Detail: messages.InstallAlreadyPublished}
		})
		return true
	}
	o.out.Task(messages.InstallTaskPublishPermissionSchema, func() TaskOutcome {
		written, err := o.deps.Publisher.PermissionSchema()
		if err != nil {
			o.logger.Warn("permission schema publish failed", zap.Error(err))
			return TaskOutcome{Failed: true}
		}
		if !written {
			return TaskOutcome{Detail: messages.InstallAlreadyPublished}
		}
		return TaskOutcome{}
	})
	return true
}

func (o *Orchestrator) publishConfig(_ context.Context, _ Options) bool {
	var result struct {
		diff      string
		truncated bool
	}
	o.out.Task(messages.InstallTaskPublishConfig, func() TaskOutcome {
		res, err := o.deps.Publisher.Config()
		if err != nil {
			o.logger.Warn("config publish failed", zap.Error(err))
			return TaskOutcome{Failed: true}
		}
		if !res.Written {
			result.diff, result.truncated = res.Diff, res.Truncated
			return TaskOutcome{Detail: messages.InstallAlreadyPublished}
		}
		if reloader, ok := o.deps.Config.(Reloader); ok {
			if err := reloader.Reload(); err != nil {
				o.out.Warn(fmt.Sprintf(messages.InstallConfigReloadFailedFmt, err))
			}
		}
		return TaskOutcome{}
	})
	if result.diff != "" {
		o.out.Line(messages.InstallConfigDiffersHeader)
		for _, line := range strings.Split(strings.TrimRight(result.diff, "\n"), "\n") {
			o.out.Line("  " + line)
		}
		if result.truncated {
			o.out.Line(messages.InstallConfigDiffTruncated)
		}
	}
	return true
}

func (o *Orchestrator) runMigrations(ctx context.Context, _ Options) bool {
	var migrateErr error
	o.out.Task(messages.InstallTaskMigrations, func() TaskOutcome {
		applied, err := o.deps.Migrator.Migrate(ctx)
		if err != nil {
			migrateErr = err
			return TaskOutcome{Failed: true}
		}
		if len(applied) == 0 {
			return TaskOutcome{}
		}
		return TaskOutcome{Detail: fmt.Sprintf(messages.InstallMigrationsAppliedN, len(applied))}
	})
	if migrateErr != nil {
		o.out.NewLine()
		o.out.Error(messages.InstallMigrationsFailed)
		o.out.Line("  " + migrateErr.Error())
		o.out.NewLine()
		o.out.Line(messages.InstallMigrationsRemedy)
		o.out.NewLine()
		return false
	}
	return true
}

func (o *Orchestrator) publishAssets(_ context.Context, _ Options) bool {
	o.out.Task(messages.InstallTaskAssets, func() TaskOutcome {
		if _, err := o.deps.Publisher.Assets(); err != nil {
			o.logger.Warn("asset publish failed", zap.Error(err))
			return TaskOutcome{Failed: true}
		}
		return TaskOutcome{}
	})
	o.out.Info(messages.InstallAssetsOverwrite)
	return true
}

func (o *Orchestrator) configureTheme(_ context.Context, opts Options) bool {
	cfg := o.deps.Config.Current()
	if !cfg.ThemesEnabled() {
		o.out.Task(messages.InstallTaskTheme, func() TaskOutcome {
			return TaskOutcome{Detail: messages.InstallThemeDisabled}
		})
		return true
	}

	if !opts.Force {
		exists, err := o.deps.Themes.ConfigExists()
		if err != nil {
			o.logger.Debug("theme config probe failed", zap.Error(err))
		}
		if exists {
			active, err := o.deps.Themes.Active()
			if err != nil {
				o.out.Warn(messages.InstallThemeUnreadable)
				active = theme.DefaultTheme
			}
			if active == "" {
				active = theme.DefaultTheme
			}
			if active != theme.DefaultTheme && active != theme.BundledTheme {
				o.out.Task(messages.InstallTaskTheme, func() TaskOutcome {
					return TaskOutcome{Detail: fmt.Sprintf(messages.InstallThemeKeepingFmt, active)}
				})
				return true
			}
		}
	}

	o.out.Task(messages.InstallTaskActivateTheme, func() TaskOutcome {
		if err := o.deps.Themes.Activate(theme.BundledTheme); err != nil {
			o.logger.Debug("theme activation failed", zap.Error(err))
			o.out.Warn(messages.InstallThemeActivateFailed)
			o.out.Line(messages.InstallThemeListHint)
			o.out.Line(messages.InstallThemeCheckHint)
			return TaskOutcome{Failed: true}
		}
		return TaskOutcome{}
	})
	return true
}

func (o *Orchestrator) publishPanelAssets(ctx context.Context, _ Options) bool {
	var hostErr error
	o.out.Task(messages.InstallTaskPanelAssets, func() TaskOutcome {
		if err := o.deps.Host.PublishPanelAssets(ctx); err != nil {
			hostErr = err
			return TaskOutcome{Failed: true}
		}
		return TaskOutcome{}
	})
	if hostErr != nil {
		o.out.Warn(fmt.Sprintf(messages.InstallPanelAssetsFailedFmt, hostErr))
		o.out.Line(messages.InstallPanelAssetsRemedyHint)
	}
	return true
}

func (o *Orchestrator) setupRoles(ctx context.Context, opts Options) bool {
	o.out.NewLine()
	o.out.Info(messages.InstallSettingUpRoles)
	o.out.NewLine()

	var seedErr error
	o.out.Task(messages.InstallTaskRoles, func() TaskOutcome {
		result, err := o.deps.Roles.Run(ctx, opts.Force)
		if err != nil {
			seedErr = err
			return TaskOutcome{Failed: true}
		}
		return TaskOutcome{Detail: fmt.Sprintf(messages.InstallRolesSummaryFmt, result.Roles, result.Permissions, result.Grants)}
	})
	if seedErr != nil {
		o.out.Warn(fmt.Sprintf(messages.InstallRolesFailedFmt, seedErr))
		o.out.Line(messages.InstallRolesRemedyHint)
	}
	return true
}
