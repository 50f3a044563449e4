// ============================================================================
// Pascal - Zeilenorientierter Rechner
// ============================================================================
//
// Package:     repl
// Description: Read-eval-print loop on top of a calculator session
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	mdwexecutor "github.com/msto63/pascal/foundation/calc/executor"
	"github.com/msto63/pascal/internal/pascal/session"
)

// Default texts
const (
	DefaultPrompt   = "Enter expression > "
	DefaultFarewell = "Bye"
)

// Options configures the loop
type Options struct {
	Prompt   string
	Farewell string

	// Color enables coloured output: errors red, values bold
	Color bool

	// Echo repeats each input line after the prompt, for piped input
	Echo bool
}

// Run reads lines from in until a quit statement, end of input or
// cancellation of ctx. The farewell is printed in every case.
func Run(ctx context.Context, sess *session.Session, in io.Reader, out io.Writer, opts Options) error {
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}
	if opts.Farewell == "" {
		opts.Farewell = DefaultFarewell
	}

	p := newPrinter(out, opts.Color)
	defer p.line(opts.Farewell)

	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 4096), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		p.prompt(opts.Prompt)

		var input string
		select {
		case <-ctx.Done():
			p.line("")
			return nil
		case l, ok := <-lines:
			if !ok {
				p.line("")
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			input = strings.TrimSpace(l)
		}

		if opts.Echo {
			p.line(input)
		}
		if input == "" {
			continue
		}

		result := sess.Eval(ctx, input)
		for _, l := range result.Lines {
			p.output(l)
		}
		if !result.Continue {
			return nil
		}
	}
}

// printer writes prompts and result lines, optionally coloured
type printer struct {
	out   io.Writer
	value *color.Color
	info  *color.Color
	err   *color.Color
}

func newPrinter(out io.Writer, enabled bool) *printer {
	p := &printer{
		out:   out,
		value: color.New(color.Bold),
		info:  color.New(color.FgCyan),
		err:   color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.value, p.info, p.err} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *printer) prompt(text string) {
	fmt.Fprint(p.out, text)
}

func (p *printer) line(text string) {
	fmt.Fprintln(p.out, text)
}

func (p *printer) output(l mdwexecutor.Line) {
	switch l.Kind {
	case mdwexecutor.LineError:
		p.err.Fprintln(p.out, l.Text)
	case mdwexecutor.LineInfo:
		p.info.Fprintln(p.out, l.Text)
	default:
		p.value.Fprintln(p.out, l.Text)
	}
}
