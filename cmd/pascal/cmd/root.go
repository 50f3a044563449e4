package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/pascal/foundation/core/log"
	"github.com/msto63/pascal/internal/pascal/session"
	"github.com/msto63/pascal/internal/pascal/store"
	"github.com/msto63/pascal/pkg/core/config"
	"github.com/msto63/pascal/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pascal",
	Short: "Pascal - Zeilenorientierter Rechner",
	Long: `Pascal ist ein zeilenorientierter Rechner mit Variablen.

Jede Eingabezeile enthält eine oder mehrere durch ';' getrennte
Anweisungen:

  a = 2 * PI        Zuweisung
  sqrt(a) ** 2      Ausdruck (Operatoren + - * / **)
  clear a           Variable löschen
  list              Alle Variablen anzeigen
  quit / exit       Beenden

Ohne Unterbefehl startet die interaktive Eingabeschleife.`,
	SilenceUsage: true,
	RunE:         runREPL,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: ./configs/pascal.toml, $PASCAL_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output")
}

// loadConfig reads --config, $PASCAL_CONFIG or the default locations
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadFromEnv()
}

// newLogger creates the process logger and installs it as default
func newLogger(cfg *config.Config) *mdwlog.Logger {
	level := cfg.General.LogLevel
	if verbose {
		level = "debug"
	}
	logger := logging.NewLogger(logging.LoggerConfig{
		ServiceName: "pascal",
		Level:       level,
		Format:      cfg.General.LogFormat,
		Output:      os.Stderr,
	})
	mdwlog.SetDefault(logger)
	return logger
}

// openHistory opens the history store if enabled. A store that cannot be
// opened is reported and skipped.
func openHistory(cfg *config.Config, logger *mdwlog.Logger) store.HistoryStore {
	if !cfg.History.Enabled {
		return nil
	}
	hs, err := store.NewSQLiteHistoryStore(store.SQLiteHistoryConfig{Path: cfg.History.Path})
	if err != nil {
		logger.WarnWithErr("History disabled", err, mdwlog.Fields{"path": cfg.History.Path})
		return nil
	}
	return hs
}

// environment bundles what every interactive command needs
type environment struct {
	cfg     *config.Config
	logger  *mdwlog.Logger
	history store.HistoryStore
}

func setup() (*environment, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)
	return &environment{
		cfg:     cfg,
		logger:  logger,
		history: openHistory(cfg, logger),
	}, nil
}

func (e *environment) newSession() (*session.Session, error) {
	opts := session.Options{
		Logger:    e.logger,
		Precision: e.cfg.REPL.Precision,
		Presets:   e.cfg.REPL.Presets,
	}
	if e.history != nil {
		opts.Recorder = e.history
	}
	return session.New(opts)
}

func (e *environment) Close() {
	if e.history != nil {
		if err := e.history.Close(); err != nil {
			e.logger.WarnWithErr("Failed to close history", err)
		}
	}
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Fehler: %s: %v\n", msg, err)
}
