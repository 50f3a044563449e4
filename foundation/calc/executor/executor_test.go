// File: executor_test.go
// Title: Execution Engine Tests
// Description: Tests for statement effects, output lines and the quit
//              signal.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package executor

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/msto63/pascal/foundation/calc/ast"
	mdwlog "github.com/msto63/pascal/foundation/core/log"
)

func newTestEngine() *Engine {
	return New(Options{Logger: mdwlog.Discard()})
}

func chain(stmts ...*ast.Statement) *ast.Statement {
	for i := 0; i < len(stmts)-1; i++ {
		stmts[i].Next = stmts[i+1]
	}
	return stmts[0]
}

func TestEngine_Run(t *testing.T) {
	tests := []struct {
		name     string
		chain    *ast.Statement
		want     []Line
		cont     bool
		bindings int
	}{
		{
			name:     "expression",
			chain:    ast.NewExpression(bin(num(1), ast.OpAdd, num(2))),
			want:     []Line{{LineValue, "3"}},
			cont:     true,
			bindings: 1,
		},
		{
			name:     "assignment then expression",
			chain:    chain(ast.NewAssignment("X", num(5)), ast.NewExpression(id("X"))),
			want:     []Line{{LineInfo, "X = 5"}, {LineValue, "5"}},
			cont:     true,
			bindings: 2,
		},
		{
			name:     "failed assignment leaves environment unchanged",
			chain:    ast.NewAssignment("X", bin(id("Y"), ast.OpAdd, num(1))),
			want:     []Line{{LineError, "Y not defined"}},
			cont:     true,
			bindings: 1,
		},
		{
			name:     "clear undefined",
			chain:    ast.NewClear("X"),
			want:     []Line{{LineError, "Variable X not defined"}},
			cont:     true,
			bindings: 1,
		},
		{
			name:     "clear defined",
			chain:    chain(ast.NewAssignment("X", num(1)), ast.NewClear("X")),
			want:     []Line{{LineInfo, "X = 1"}, {LineInfo, "X cleared"}},
			cont:     true,
			bindings: 1,
		},
		{
			name:     "empty",
			chain:    chain(ast.NewEmpty(), ast.NewEmpty()),
			want:     nil,
			cont:     true,
			bindings: 1,
		},
		{
			name:     "quit stops the chain",
			chain:    chain(ast.NewExpression(num(1)), ast.NewQuit(), ast.NewAssignment("Z", num(2))),
			want:     []Line{{LineValue, "1"}},
			cont:     false,
			bindings: 1,
		},
		{
			name:     "NaN is a value",
			chain:    ast.NewAssignment("n", call(ast.FuncSqrt, num(-1))),
			want:     []Line{{LineInfo, "n = NaN"}},
			cont:     true,
			bindings: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := NewEnvironment()
			out := newTestEngine().Run(tt.chain, env)

			if !reflect.DeepEqual(out.Lines, tt.want) {
				t.Errorf("Lines = %v, want %v", out.Lines, tt.want)
			}
			if out.Continue != tt.cont {
				t.Errorf("Continue = %v, want %v", out.Continue, tt.cont)
			}
			if env.Len() != tt.bindings {
				t.Errorf("bindings = %d, want %d", env.Len(), tt.bindings)
			}
		})
	}
}

func TestEngine_List(t *testing.T) {
	env := NewEnvironment()
	e := newTestEngine()
	e.Run(chain(ast.NewAssignment("A", num(1)), ast.NewAssignment("B", num(2))), env)

	out := e.Run(ast.NewList(), env)
	want := []string{"PI = 3.141592653589793", "A = 1", "B = 2"}
	if got := out.Texts(); !reflect.DeepEqual(got, want) {
		t.Errorf("list = %v, want %v", got, want)
	}
}

func TestEngine_Precision(t *testing.T) {
	e := New(Options{Logger: mdwlog.Discard(), Precision: 3})
	out := e.Run(ast.NewExpression(id("PI")), NewEnvironment())
	if got := out.Texts(); len(got) != 1 || got[0] != "3.14" {
		t.Errorf("output = %v, want [3.14]", got)
	}
}

func TestLineJSON(t *testing.T) {
	data, err := json.Marshal(Line{Kind: LineError, Text: "x not defined"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got, want := string(data), `{"kind":"error","text":"x not defined"}`; got != want {
		t.Errorf("json = %s, want %s", got, want)
	}
}

func TestLineKind_UnmarshalText(t *testing.T) {
	var line Line
	if err := json.Unmarshal([]byte(`{"kind":"info","text":"a = 1"}`), &line); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if line.Kind != LineInfo || line.Text != "a = 1" {
		t.Errorf("line = %+v", line)
	}

	var kind LineKind
	if err := kind.UnmarshalText([]byte("warning")); err == nil {
		t.Error("unknown kind should fail")
	}
}
