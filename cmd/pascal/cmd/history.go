package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/pascal/internal/pascal/store"
)

var (
	historySession string
	historyLimit   int
	historyPrune   time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Zeigt oder bereinigt den Eingabeverlauf",
	Long: `Zeigt gespeicherte Sitzungen und ihre Eingaben.

Ohne --session werden die letzten Sitzungen aufgelistet.

Beispiele:
  pascal history
  pascal history --session 3f2a... --limit 20
  pascal history --prune 720h     # Einträge älter als 30 Tage löschen`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVar(&historySession, "session", "", "Sitzungs-ID")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Maximale Anzahl (default aus Config)")
	historyCmd.Flags().DurationVar(&historyPrune, "prune", 0, "Einträge löschen, die älter sind als diese Dauer")
}

func runHistory(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		printError("Config", err)
		return err
	}
	defer env.Close()

	if env.history == nil {
		return errors.New("history is disabled in the configuration")
	}

	limit := historyLimit
	if limit <= 0 {
		limit = env.cfg.History.Limit
	}

	ctx := context.Background()
	out := cmd.OutOrStdout()

	if historyPrune > 0 {
		n, err := env.history.Prune(ctx, time.Now().Add(-historyPrune))
		if err != nil {
			printError("Bereinigen", err)
			return err
		}
		fmt.Fprintf(out, "%d Einträge gelöscht\n", n)
		return nil
	}

	if historySession != "" {
		entries, err := env.history.Entries(ctx, historySession, limit)
		if err != nil {
			printError("Verlauf", err)
			return err
		}
		printEntries(out, entries)
		return nil
	}

	sessions, err := env.history.Sessions(ctx, limit)
	if err != nil {
		printError("Verlauf", err)
		return err
	}
	printSessions(out, sessions)
	return nil
}

func printSessions(w io.Writer, sessions []*store.SessionSummary) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "Keine Sitzungen gespeichert")
		return
	}
	fmt.Fprintf(w, "%-36s  %-19s  %-19s  %s\n", "SITZUNG", "BEGINN", "ZULETZT", "ZEILEN")
	for _, s := range sessions {
		fmt.Fprintf(w, "%-36s  %-19s  %-19s  %d\n",
			s.ID,
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
			s.LastSeenAt.Local().Format("2006-01-02 15:04:05"),
			s.Lines,
		)
	}
}

func printEntries(w io.Writer, entries []*store.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "Keine Einträge")
		return
	}
	for _, e := range entries {
		marker := " "
		if !e.Success {
			marker = "!"
		}
		fmt.Fprintf(w, "%s %s  %s\n", marker, e.CreatedAt.Local().Format("15:04:05"), e.Line)
		if len(e.Output) > 0 {
			fmt.Fprintf(w, "             %s\n", strings.Join(e.Output, "\n             "))
		}
	}
}
