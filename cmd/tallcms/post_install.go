package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tallcms/cms-installer/internal/messages"
)

func newPostInstallCmd(_ *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:    messages.PostInstallUse,
		Short:  messages.PostInstallShort,
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := getwd()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			lines := []string{
				"",
				messages.PostInstallSuccess,
				"",
				messages.PostInstallNext,
				fmt.Sprintf(messages.PostInstallCdFmt, filepath.Base(cwd)),
				messages.PostInstallNpm,
				messages.PostInstallServe,
				messages.PostInstallVisit,
				"",
				messages.PostInstallDocsLine,
				"",
			}
			for _, line := range lines {
				_, _ = fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
