package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/pascal/pkg/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Zeigt die Version an",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, version.String())
		for _, c := range []string{"interpreter", "repl", "server", "tui", "history"} {
			fmt.Fprintf(out, "  %-12s %s\n", c+":", version.ComponentVersion(c))
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
