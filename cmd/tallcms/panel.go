package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tallcms/cms-installer/internal/messages"
	"github.com/tallcms/cms-installer/internal/panel"
)

func newPanelCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.PanelUse,
		Short: messages.PanelShort,
	}
	cmd.AddCommand(newPanelURLCmd(g), newPanelRouteCmd(g))
	return cmd
}

func newPanelURLCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.PanelURLUse,
		Short: messages.PanelURLShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgStore, _, err := g.openConfig()
			if err != nil {
				return err
			}
			subpath := ""
			if len(args) == 1 {
				subpath = args[0]
			}
			helper := panel.NewHelper(cfgStore, panel.CMSRoutes(cfgStore.Current()))
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), helper.URL(subpath))
			return nil
		},
	}
}

func newPanelRouteCmd(g *globalOptions) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   messages.PanelRouteUse,
		Short: messages.PanelRouteShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgStore, _, err := g.openConfig()
			if err != nil {
				return err
			}
			routes := panel.CMSRoutes(cfgStore.Current())
			out := cmd.OutOrStdout()

			if list {
				for _, name := range routes.Names() {
					_, _ = fmt.Fprintln(out, name)
				}
				return nil
			}
			if len(args) == 0 {
				return errors.New(messages.PanelRouteNameArg)
			}

			params, err := parseRouteParams(args[1:])
			if err != nil {
				return err
			}
			url, err := panel.NewHelper(cfgStore, routes).Route(args[0], params)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, url)
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, messages.PanelRouteFlagList)
	return cmd
}

// parseRouteParams turns key=value arguments into route parameters.
func parseRouteParams(args []string) (map[string]any, error) {
	params := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf(messages.PanelRouteParamFmt, arg)
		}
		params[key] = value
	}
	return params, nil
}
