// File: calc.go
// Title: Calculator Interpreter
// Description: High-level interface combining parser and executor. A syntax
//              error anywhere in a line discards the whole line; the error is
//              reported as a single output line and the session continues.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package calc

import (
	"errors"
	"fmt"

	"github.com/msto63/pascal/foundation/calc/ast"
	mdwexecutor "github.com/msto63/pascal/foundation/calc/executor"
	mdwparser "github.com/msto63/pascal/foundation/calc/parser"
	mdwerror "github.com/msto63/pascal/foundation/core/error"
	mdwlog "github.com/msto63/pascal/foundation/core/log"
)

// DefaultMaxLineLength is the longest accepted input line in bytes
const DefaultMaxLineLength = 4096

// Line is one output line
type Line = mdwexecutor.Line

// Result is the outcome of one input line. Err is set when the line was
// rejected as a whole (syntax error or overlong input).
type Result struct {
	Lines    []Line
	Continue bool
	Err      error
}

// Texts returns the text of all output lines
func (r *Result) Texts() []string {
	texts := make([]string, len(r.Lines))
	for i, l := range r.Lines {
		texts[i] = l.Text
	}
	return texts
}

// HasErrors reports whether any output line is an error line
func (r *Result) HasErrors() bool {
	for _, l := range r.Lines {
		if l.Kind == mdwexecutor.LineError {
			return true
		}
	}
	return false
}

// Options configures the interpreter
type Options struct {
	Logger *mdwlog.Logger

	// Environment is the variable store, a fresh one seeded with PI if nil
	Environment *mdwexecutor.Environment

	// Precision is the number of significant digits shown, 0 for shortest
	Precision int

	MaxLineLength int
}

// Interpreter executes input lines of one session. It is not safe for
// concurrent use.
type Interpreter struct {
	parser   *mdwparser.Parser
	executor *mdwexecutor.Engine
	env      *mdwexecutor.Environment
	logger   *mdwlog.Logger
	options  Options
}

// New creates an interpreter
func New(opts Options) *Interpreter {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Environment == nil {
		opts.Environment = mdwexecutor.NewEnvironment()
	}
	if opts.MaxLineLength <= 0 {
		opts.MaxLineLength = DefaultMaxLineLength
	}

	return &Interpreter{
		parser:   mdwparser.New(mdwparser.Options{Logger: opts.Logger}),
		executor: mdwexecutor.New(mdwexecutor.Options{Logger: opts.Logger, Precision: opts.Precision}),
		env:      opts.Environment,
		logger:   opts.Logger.WithField("component", "calc"),
		options:  opts,
	}
}

// Environment returns the variable store of the interpreter
func (i *Interpreter) Environment() *mdwexecutor.Environment {
	return i.env
}

// Execute parses and runs one input line
func (i *Interpreter) Execute(line string) *Result {
	if len(line) > i.options.MaxLineLength {
		err := mdwerror.New(fmt.Sprintf("input exceeds maximum length: %d > %d", len(line), i.options.MaxLineLength)).
			WithCode(mdwerror.CodeInputTooLong).
			WithOperation("calc.Execute")
		return rejected(err, err.Message())
	}

	chain, err := i.parser.Parse(line)
	if err != nil {
		var pe *mdwparser.ParseError
		if !errors.As(err, &pe) {
			wrapped := mdwerror.Wrap(err, "parse line").WithCode(mdwerror.CodeInternal)
			return rejected(wrapped, err.Error())
		}
		wrapped := mdwerror.Wrap(pe, "syntax error").
			WithCode(mdwerror.CodeSyntax).
			WithOperation("calc.Execute").
			WithDetail("token", pe.Token.String())
		return rejected(wrapped, pe.Message)
	}

	out := i.executor.Run(chain, i.env)
	i.logger.Trace("Line executed", mdwlog.Fields{
		"statements": chain.Len(),
		"lines":      len(out.Lines),
		"continue":   out.Continue,
	})
	return &Result{Lines: out.Lines, Continue: out.Continue}
}

func rejected(err error, message string) *Result {
	return &Result{
		Lines:    []Line{{Kind: mdwexecutor.LineError, Text: message}},
		Continue: true,
		Err:      err,
	}
}

// Parse parses a line without executing it
func (i *Interpreter) Parse(line string) (*ast.Statement, error) {
	return i.parser.Parse(line)
}

// Tokens returns the tokens of a line including the final EOF token
func Tokens(line string) []mdwparser.Token {
	return mdwparser.Tokenize(line)
}

// FormatNumber renders v the way the interpreter displays values
func FormatNumber(v float64, precision int) string {
	return mdwexecutor.FormatNumber(v, precision)
}
