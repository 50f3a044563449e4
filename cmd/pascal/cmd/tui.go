package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/pascal/internal/tui/calculator"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Startet die Terminal-Oberfläche",
	Long: `Startet den Rechner in einer Terminal-Oberfläche.

Tastenkuerzel:
  Enter       Zeile auswerten
  ↑ / ↓       Eingabeverlauf
  Ctrl+L      Verlauf leeren (Variablen bleiben erhalten)
  Esc/Ctrl+C  Beenden`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		printError("Config", err)
		return err
	}
	defer env.Close()

	sess, err := env.newSession()
	if err != nil {
		printError("Session", err)
		return err
	}

	cfg := calculator.DefaultConfig()
	return calculator.Run(sess, cfg)
}
