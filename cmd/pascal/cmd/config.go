package cmd

import (
	"github.com/spf13/cobra"
)

var configFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Konfiguration anzeigen",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Zeigt die wirksame Konfiguration an",
	Long: `Gibt die geladene Konfiguration inklusive Defaults aus.

Beispiele:
  pascal config show
  pascal config show --format yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			printError("Config", err)
			return err
		}
		return cfg.Encode(cmd.OutOrStdout(), configFormat)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Ausgabeformat (toml, yaml)")
}
