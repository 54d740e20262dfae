package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tallcms/cms-installer/internal/fsutil"
	"github.com/tallcms/cms-installer/internal/messages"
	"github.com/tallcms/cms-installer/internal/theme"
)

func newThemeCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.ThemeUse,
		Short: messages.ThemeShort,
	}
	cmd.AddCommand(newThemeListCmd(g))
	return cmd
}

func newThemeListCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.ThemeListUse,
		Short: messages.ThemeListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hostRoot, err := g.hostRoot()
			if err != nil {
				return err
			}
			manager := theme.NewManager(fsutil.RealSystem{}, g.paths(hostRoot), g.logger)
			themes, err := manager.Available()
			if err != nil {
				return err
			}

			active, err := manager.Active()
			if err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), messages.ThemeActiveFailedFmt, err)
			}
			if active == "" {
				active = theme.DefaultTheme
			}

			out := cmd.OutOrStdout()
			for _, info := range themes {
				marker := " "
				name := fmt.Sprintf("%-12s", info.Name)
				if info.Name == active {
					marker = messages.ThemeActiveMarker
					name = color.GreenString("%-12s", info.Name)
				}
				_, _ = fmt.Fprintf(out, messages.ThemeListLineFmt, marker, name, info.Label, themeTags(info))
			}
			return nil
		},
	}
}

func themeTags(info theme.Info) string {
	var tags []string
	if info.Bundled {
		tags = append(tags, messages.ThemeBundled)
	}
	if info.Published {
		tags = append(tags, messages.ThemePublished)
	} else {
		tags = append(tags, messages.ThemeNotInstalled)
	}
	return strings.Join(tags, ", ")
}
