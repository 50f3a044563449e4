package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/pascal/internal/pascal/server"
	"github.com/msto63/pascal/pkg/core/version"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Startet den WebSocket- und HTTP-Server",
	Long: `Startet den Pascal-Server.

Endpunkte:
  GET  /ws           WebSocket, eine Sitzung pro Verbindung
  POST /api/v1/eval  Stapelauswertung {"lines": [...]}
  GET  /health       Zustand und Version

Beispiele:
  pascal serve
  pascal serve --host 0.0.0.0 --port 9400`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen-Adresse (default aus Config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port (default aus Config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		printError("Config", err)
		return err
	}
	defer env.Close()

	sc := env.cfg.Server
	if serveHost != "" {
		sc.Host = serveHost
	}
	if servePort != 0 {
		sc.Port = servePort
	}

	srv := server.New(server.Config{
		Host:           sc.Host,
		Port:           sc.Port,
		ReadTimeout:    sc.ReadTimeout.Duration,
		WriteTimeout:   sc.WriteTimeout.Duration,
		MaxMessageSize: sc.MaxMessageSize,
		Version:        version.Server,
		Precision:      env.cfg.REPL.Precision,
		Presets:        env.cfg.REPL.Presets,
		History:        env.history,
		Logger:         env.logger,
	})

	ctx, cancel := signalContext()
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Pascal-Server läuft auf %s (Ctrl+C zum Beenden)\n", srv.Address())

	select {
	case err := <-errCh:
		if err != nil {
			printError("Server", err)
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		printError("Shutdown", err)
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Server gestoppt")
	return nil
}
