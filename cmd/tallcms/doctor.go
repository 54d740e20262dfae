package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tallcms/cms-installer/internal/config"
	"github.com/tallcms/cms-installer/internal/doctor"
	"github.com/tallcms/cms-installer/internal/install"
	"github.com/tallcms/cms-installer/internal/messages"
	"github.com/tallcms/cms-installer/internal/store"
)

func newDoctorCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.DoctorUse,
		Short: messages.DoctorShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			hostRoot, err := g.hostRoot()
			if err != nil {
				return err
			}
			paths := g.paths(hostRoot)

			_, _ = fmt.Fprintf(out, messages.DoctorHealthCheckFmt, hostRoot)

			var allResults []doctor.Result

			// 1. Host layout
			allResults = append(allResults, doctor.CheckStructure(hostRoot)...)

			// 2. Config
			configResults, cfg := doctor.CheckConfig(paths.ConfigPath)
			allResults = append(allResults, configResults...)

			if cfg != nil {
				// 3. Routes, database, and prerequisites need a config.
				allResults = append(allResults, doctor.CheckPanelPath(cfg))
				allResults = append(allResults, doctor.CheckFrontendRoutes(paths.EnvFile, cfg))
				dbResults, err := checkDatabase(cmd, g, paths, cfg)
				if err != nil {
					return err
				}
				allResults = append(allResults, dbResults...)

				env := &environment{g: g, root: hostRoot, paths: paths}
				allResults = append(allResults, doctor.CheckPrerequisites(cfg, env.inspector())...)
			}

			for _, r := range allResults {
				printResult(out, r)
			}
			_, _ = fmt.Fprintln(out)

			switch doctor.Worst(allResults) {
			case doctor.StatusFail:
				_, _ = fmt.Fprintln(out, color.RedString(messages.DoctorFailureSummary))
				return errors.New(messages.DoctorFailureError)
			case doctor.StatusWarn:
				_, _ = fmt.Fprintln(out, color.YellowString(messages.DoctorWarnSummary))
			default:
				_, _ = fmt.Fprintln(out, color.GreenString(messages.DoctorSuccessSummary))
			}
			return nil
		},
	}
}

// checkDatabase probes installation state and pending migrations without
// creating the database.
func checkDatabase(cmd *cobra.Command, g *globalOptions, paths config.Paths, cfg *config.Config) ([]doctor.Result, error) {
	dbPath, err := cfg.DatabasePath(paths.Root)
	if err != nil {
		return nil, err
	}
	db := store.Open(dbPath, g.logger)
	defer func() { _ = db.Close() }()

	orchestrator := install.New(install.Deps{
		Config: config.NewStatic(*cfg),
		Schema: db,
		Logger: g.logger,
	}, nil)
	state := orchestrator.State(cmd.Context())
	migrator := store.NewMigrator(db, cfg.Database.Prefix, paths.MigrationsDir, g.logger)

	return []doctor.Result{
		doctor.CheckInstallation(state),
		doctor.CheckMigrations(cmd.Context(), migrator),
	}, nil
}

func printResult(out io.Writer, r doctor.Result) {
	var status string
	switch r.Status {
	case doctor.StatusOK:
		status = color.GreenString(messages.DoctorStatusOKLabel)
	case doctor.StatusWarn:
		status = color.YellowString(messages.DoctorStatusWarnLabel)
	case doctor.StatusFail:
		status = color.RedString(messages.DoctorStatusFailLabel)
	}

	_, _ = fmt.Fprintf(out, messages.DoctorResultLineFmt, status, r.CheckName, r.Message)
	if r.Recommendation != "" {
		printRecommendation(out, r.Recommendation)
	}
}

// printRecommendation renders a multi-line recommendation with consistent indentation.
func printRecommendation(out io.Writer, recommendation string) {
	lines := strings.Split(recommendation, "\n")
	for i, line := range lines {
		if i == 0 {
			_, _ = fmt.Fprintf(out, "%s%s\n", messages.DoctorRecommendationPrefix, line)
			continue
		}
		if line == "" {
			_, _ = fmt.Fprintf(out, "%s\n", messages.DoctorRecommendationIndent)
			continue
		}
		_, _ = fmt.Fprintf(out, "%s%s\n", messages.DoctorRecommendationIndent, line)
	}
}
