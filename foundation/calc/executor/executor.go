// File: executor.go
// Title: Statement Execution Engine
// Description: Runs the statement chain of one input line against an
//              environment and collects the produced output lines. A quit
//              statement stops the chain and ends the session.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package executor

import (
	"fmt"

	"github.com/msto63/pascal/foundation/calc/ast"
	mdwlog "github.com/msto63/pascal/foundation/core/log"
)

// LineKind classifies an output line
type LineKind int

const (
	// LineValue is the value of an expression statement
	LineValue LineKind = iota

	// LineInfo confirms an assignment, clear or list
	LineInfo

	// LineError reports a syntax error, an undefined variable or a failed clear
	LineError
)

// String returns the name of the line kind
func (k LineKind) String() string {
	switch k {
	case LineValue:
		return "value"
	case LineInfo:
		return "info"
	case LineError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (k LineKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *LineKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "value":
		*k = LineValue
	case "info":
		*k = LineInfo
	case "error":
		*k = LineError
	default:
		return fmt.Errorf("unknown line kind %q", text)
	}
	return nil
}

// Line is one line of output
type Line struct {
	Kind LineKind `json:"kind"`
	Text string   `json:"text"`
}

// Output is everything an input line produced
type Output struct {
	Lines    []Line
	Continue bool
}

// Texts returns the text of all lines
func (o *Output) Texts() []string {
	texts := make([]string, len(o.Lines))
	for i, l := range o.Lines {
		texts[i] = l.Text
	}
	return texts
}

func (o *Output) add(kind LineKind, text string) {
	o.Lines = append(o.Lines, Line{Kind: kind, Text: text})
}

// Engine executes statement chains
type Engine struct {
	logger  *mdwlog.Logger
	options Options
}

// Options configures executor behavior
type Options struct {
	Logger *mdwlog.Logger

	// Precision is the number of significant digits displayed, 0 for the
	// shortest exact representation
	Precision int
}

// New creates a new execution engine
func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	return &Engine{
		logger:  opts.Logger.WithField("component", "calc-executor"),
		options: opts,
	}
}

// Format renders a value with the configured precision
func (e *Engine) Format(v float64) string {
	return FormatNumber(v, e.options.Precision)
}

// Run executes chain against env
func (e *Engine) Run(chain *ast.Statement, env *Environment) *Output {
	out := &Output{Continue: true}
	report := func(err error) {
		out.add(LineError, err.Error())
	}

	for stmt := chain; stmt != nil; stmt = stmt.Next {
		switch stmt.Kind {
		case ast.StmtExpression:
			if r := Evaluate(stmt.Expr, env, report); r.OK() {
				out.add(LineValue, e.Format(r.Value))
			}

		case ast.StmtAssignment:
			if r := Evaluate(stmt.Expr, env, report); r.OK() {
				env.Set(stmt.ID, r.Value)
				out.add(LineInfo, fmt.Sprintf("%s = %s", stmt.ID, e.Format(r.Value)))
				e.logger.Trace("Variable assigned", mdwlog.Fields{"name": stmt.ID, "value": r.Value})
			}

		case ast.StmtClear:
			if env.Delete(stmt.ID) {
				out.add(LineInfo, stmt.ID+" cleared")
			} else {
				out.add(LineError, "Variable "+stmt.ID+" not defined")
			}

		case ast.StmtList:
			for _, b := range env.Bindings() {
				out.add(LineInfo, fmt.Sprintf("%s = %s", b.Name, e.Format(b.Value)))
			}

		case ast.StmtQuit:
			out.Continue = false
			e.logger.Debug("Quit requested")
			return out

		case ast.StmtEmpty:
		}
	}
	return out
}
