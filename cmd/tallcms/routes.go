package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tallcms/cms-installer/internal/messages"
	"github.com/tallcms/cms-installer/internal/routeguard"
)

func newRoutesCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.RoutesUse,
		Short: messages.RoutesShort,
	}
	cmd.AddCommand(newRoutesCheckCmd(g))
	return cmd
}

func newRoutesCheckCmd(g *globalOptions) *cobra.Command {
	var fromStdin bool
	cmd := &cobra.Command{
		Use:   messages.RoutesCheckUse,
		Short: messages.RoutesCheckShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !fromStdin && len(args) == 0 {
				return errors.New(messages.RoutesPathsRequired)
			}
			cfgStore, _, err := g.openConfig()
			if err != nil {
				return err
			}
			defer func() { _ = cfgStore.Close() }()

			guard := routeguard.New(cfgStore)
			out := cmd.OutOrStdout()
			reserved := false
			for _, path := range args {
				if !printVerdict(out, guard, path) {
					reserved = true
				}
			}

			if fromStdin {
				if err := cfgStore.Watch(); err != nil {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), messages.RoutesWatchFailedFmt, err)
				}
				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					path := strings.TrimSpace(scanner.Text())
					if path == "" {
						continue
					}
					if !printVerdict(out, guard, path) {
						reserved = true
					}
				}
				if err := scanner.Err(); err != nil {
					return fmt.Errorf(messages.RoutesReadStdinFmt, err)
				}
			}

			if reserved {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), messages.RoutesHasUnsafe)
				return &SilentExitError{Code: 1}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, messages.RoutesFlagStdin)
	return cmd
}

// printVerdict prints one path's verdict and reports whether it is safe.
func printVerdict(out io.Writer, guard routeguard.Guard, path string) bool {
	if guard.IsRouteSafe(path) {
		_, _ = fmt.Fprintf(out, messages.RoutesVerdictFmt, color.GreenString(messages.RoutesSafeLabel), path)
		return true
	}
	_, _ = fmt.Fprintf(out, messages.RoutesVerdictFmt, color.RedString(messages.RoutesUnsafeLabel), path)
	return false
}
