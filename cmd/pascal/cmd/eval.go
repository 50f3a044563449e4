// ============================================================================
// Pascal - Zeilenorientierter Rechner
// ============================================================================
//
// Package:     cmd
// Description: CLI command for non-interactive evaluation
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/pascal/foundation/calc"
	mdwparser "github.com/msto63/pascal/foundation/calc/parser"
	"github.com/msto63/pascal/internal/pascal/session"
)

var (
	evalFile string
	evalScan bool
	evalAST  bool
)

// evalMode selects what eval prints per line
type evalMode int

const (
	modeEvaluate evalMode = iota
	modeScan
	modeAST
)

var evalCmd = &cobra.Command{
	Use:   "eval [ausdruck...]",
	Short: "Wertet Ausdrücke aus und beendet sich",
	Long: `Wertet jedes Argument als eigene Eingabezeile aus.

Ohne Argumente werden die Zeilen aus --file oder von der
Standardeingabe gelesen. Alle Zeilen teilen sich eine Sitzung.

Beispiele:
  pascal eval "r = 2" "PI * r ** 2"
  pascal eval -f rechnung.txt
  pascal eval --scan "2+3*x"
  pascal eval --ast "1 - 2 + 3"`,
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().StringVarP(&evalFile, "file", "f", "", "Datei mit einer Eingabe pro Zeile")
	evalCmd.Flags().BoolVar(&evalScan, "scan", false, "Nur Tokens ausgeben")
	evalCmd.Flags().BoolVar(&evalAST, "ast", false, "Nur den Syntaxbaum ausgeben")
}

func runEval(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		printError("Config", err)
		return err
	}
	defer env.Close()

	lines := args
	if len(lines) == 0 {
		var in io.Reader = os.Stdin
		if evalFile != "" {
			f, err := os.Open(evalFile)
			if err != nil {
				printError("Datei", err)
				return err
			}
			defer f.Close()
			in = f
		}
		if lines, err = readLines(in); err != nil {
			printError("Eingabe", err)
			return err
		}
	}

	sess, err := env.newSession()
	if err != nil {
		printError("Session", err)
		return err
	}

	mode := modeEvaluate
	switch {
	case evalScan:
		mode = modeScan
	case evalAST:
		mode = modeAST
	}

	ctx, cancel := signalContext()
	defer cancel()

	failed := evalLines(ctx, cmd.OutOrStdout(), sess, lines, mode)
	if failed > 0 {
		return fmt.Errorf("%d Zeile(n) mit Fehlern", failed)
	}
	return nil
}

func readLines(in io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

// evalLines processes lines in order and returns the number of lines
// that produced errors. Evaluation stops at a quit statement.
func evalLines(ctx context.Context, w io.Writer, sess *session.Session, lines []string, mode evalMode) int {
	failed := 0
	for _, line := range lines {
		if ctx.Err() != nil {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch mode {
		case modeScan:
			tokens := calc.Tokens(line)
			parts := make([]string, len(tokens))
			for i, t := range tokens {
				parts[i] = t.String()
				if t.Type == mdwparser.TokenError {
					failed++
				}
			}
			fmt.Fprintln(w, strings.Join(parts, " "))

		case modeAST:
			chain, err := mdwparser.New(mdwparser.Options{}).Parse(line)
			if err != nil {
				fmt.Fprintln(w, err.Error())
				failed++
				continue
			}
			fmt.Fprintln(w, chain.ChainString())

		default:
			result := sess.Eval(ctx, line)
			for _, text := range result.Texts() {
				fmt.Fprintln(w, text)
			}
			if result.HasErrors() {
				failed++
			}
			if !result.Continue {
				return failed
			}
		}
	}
	return failed
}
