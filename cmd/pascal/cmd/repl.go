package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/msto63/pascal/internal/pascal/repl"
)

var (
	replNoColor bool
	replEcho    bool
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Startet die interaktive Eingabeschleife",
	Long: `Liest Zeilen von der Standardeingabe und wertet sie aus.

Die Schleife endet mit 'quit', 'exit', Ctrl+D oder Ctrl+C.

Beispiele:
  pascal repl
  echo "a = 3; a ** 2" | pascal repl --echo`,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
	for _, c := range []*cobra.Command{rootCmd, replCmd} {
		c.Flags().BoolVar(&replNoColor, "no-color", false, "Farbige Ausgabe abschalten")
		c.Flags().BoolVar(&replEcho, "echo", false, "Eingabezeilen wiederholen (für Pipes)")
	}
}

func runREPL(cmd *cobra.Command, args []string) error {
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

	ctx, cancel := signalContext()
	defer cancel()

	return repl.Run(ctx, sess, os.Stdin, cmd.OutOrStdout(), repl.Options{
		Prompt:   env.cfg.REPL.Prompt,
		Farewell: env.cfg.REPL.Farewell,
		Color:    !replNoColor && !env.cfg.REPL.NoColor && !color.NoColor,
		Echo:     replEcho,
	})
}
