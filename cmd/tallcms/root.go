package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tallcms/cms-installer/internal/config"
	"github.com/tallcms/cms-installer/internal/logging"
	"github.com/tallcms/cms-installer/internal/messages"
	"github.com/tallcms/cms-installer/internal/root"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	root    string
	config  string
	verbose bool
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{logger: zap.NewNop()}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.logger = logging.New(opts.verbose, cmd.ErrOrStderr())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.root, "root", "", messages.RootFlagRoot)
	flags.StringVar(&opts.config, "config", "", messages.RootFlagConfig)
	flags.BoolVar(&opts.verbose, "verbose", false, messages.RootFlagVerbose)

	cmd.AddCommand(
		newInstallCmd(opts),
		newPostInstallCmd(opts),
		newDoctorCmd(opts),
		newRoutesCmd(opts),
		newPanelCmd(opts),
		newThemeCmd(opts),
	)
	return cmd
}

// hostRoot resolves --root, or discovers the host root above the working directory.
func (o *globalOptions) hostRoot() (string, error) {
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	return root.ResolveHostRoot(o.root, cwd)
}

// paths returns the host paths with --config applied.
func (o *globalOptions) paths(hostRoot string) config.Paths {
	p := config.DefaultPaths(hostRoot)
	if o.config != "" {
		p.ConfigPath = o.config
	}
	return p
}

// openConfig resolves the host and loads its config into a reloadable store.
func (o *globalOptions) openConfig() (*config.Store, config.Paths, error) {
	hostRoot, err := o.hostRoot()
	if err != nil {
		return nil, config.Paths{}, err
	}
	p := o.paths(hostRoot)
	store, err := config.OpenStore(p.ConfigPath, o.logger)
	if err != nil {
		return nil, config.Paths{}, err
	}
	return store, p, nil
}
