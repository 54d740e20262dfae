package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/tallcms/cms-installer/internal/config"
	"github.com/tallcms/cms-installer/internal/detect"
	"github.com/tallcms/cms-installer/internal/fsutil"
	"github.com/tallcms/cms-installer/internal/host"
	"github.com/tallcms/cms-installer/internal/install"
	"github.com/tallcms/cms-installer/internal/messages"
	"github.com/tallcms/cms-installer/internal/publish"
	"github.com/tallcms/cms-installer/internal/roles"
	"github.com/tallcms/cms-installer/internal/store"
	"github.com/tallcms/cms-installer/internal/terminal"
	"github.com/tallcms/cms-installer/internal/theme"
	"github.com/tallcms/cms-installer/internal/ui"
)

var openURLFunc = host.OpenURL

func newInstallCmd(g *globalOptions) *cobra.Command {
	var opts install.Options
	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnvironment(g)
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			deps := env.installDeps(cmd)
			if isTerminal() {
				deps.Confirm = confirm
				deps.OpenURL = openURLFunc
			}

			out := ui.NewConsole(cmd.OutOrStdout(), terminal.Width())
			status := install.New(deps, out).Run(cmd.Context(), opts)
			if status != install.Success {
				return &SilentExitError{Code: status.Code()}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.SkipChecks, "skip-checks", false, messages.InstallFlagSkipChecks)
	flags.BoolVar(&opts.SkipMigrations, "skip-migrations", false, messages.InstallFlagSkipMigrations)
	flags.BoolVar(&opts.SkipSetup, "skip-setup", false, messages.InstallFlagSkipSetup)
	flags.BoolVar(&opts.Force, "force", false, messages.InstallFlagForce)
	return cmd
}

// environment is an opened host: its config, paths, and database.
type environment struct {
	g     *globalOptions
	root  string
	paths config.Paths
	cfg   *config.Store
	db    *store.DB
}

func openEnvironment(g *globalOptions) (*environment, error) {
	cfgStore, paths, err := g.openConfig()
	if err != nil {
		return nil, err
	}
	dbPath, err := cfgStore.Current().DatabasePath(paths.Root)
	if err != nil {
		return nil, err
	}
	return &environment{
		g:     g,
		root:  paths.Root,
		paths: paths,
		cfg:   cfgStore,
		db:    store.Open(dbPath, g.logger),
	}, nil
}

// Close releases the database and stops any config watcher.
func (e *environment) Close() error {
	dbErr := e.db.Close()
	if err := e.cfg.Close(); err != nil {
		return err
	}
	return dbErr
}

func (e *environment) inspector() *detect.Inspector {
	return detect.NewInspector(fsutil.RealSystem{}, e.paths, e.g.logger)
}

func (e *environment) migrator() *store.Migrator {
	return store.NewMigrator(e.db, e.cfg.Current().Database.Prefix, e.paths.MigrationsDir, e.g.logger)
}

// installDeps wires the real collaborators for the install pipeline.
func (e *environment) installDeps(cmd *cobra.Command) install.Deps {
	sys := fsutil.RealSystem{}
	cfg := e.cfg.Current()
	logger := e.g.logger
	hostOut := io.Discard
	if e.g.verbose {
		hostOut = cmd.ErrOrStderr()
	}
	return install.Deps{
		Config:    e.cfg,
		Schema:    e.db,
		Migrator:  e.migrator(),
		Publisher: publish.New(sys, e.paths, publish.DefaultDiffMaxLines, logger),
		Themes:    theme.NewManager(sys, e.paths, logger),
		Host: host.Runner{
			Command: cfg.Host.Command,
			Dir:     e.root,
			Stdout:  hostOut,
			Stderr:  cmd.ErrOrStderr(),
			Logger:  logger,
		},
		Roles:     roles.NewSeeder(e.db, cfg.Auth.Guard, logger),
		Inspector: e.inspector(),
		Logger:    logger,
	}
}
