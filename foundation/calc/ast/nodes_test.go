// File: nodes_test.go
// Title: AST Node Tests
// Description: Tests for node rendering, chain helpers and validation.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package ast

import "testing"

func TestExprString(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"number", &Number{Value: 2.5}, "2.5"},
		{"identifier", &Identifier{Name: "PI"}, "PI"},
		{
			"right nested",
			&BinaryOp{Left: &Number{Value: 10}, Op: OpSub, Right: &BinaryOp{Left: &Number{Value: 3}, Op: OpSub, Right: &Number{Value: 2}}},
			"(10 - (3 - 2))",
		},
		{"function", &FunctionCall{Func: FuncSqrt, Arg: &Number{Value: 16}}, "sqrt(16)"},
		{"negate", &FunctionCall{Func: FuncNegate, Arg: &Identifier{Name: "x"}}, "-(x)"},
		{"power", &BinaryOp{Left: &Number{Value: 2}, Op: OpPow, Right: &Number{Value: 3}}, "(2 ** 3)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expr.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatementChain(t *testing.T) {
	chain := NewAssignment("x", &Number{Value: 5})
	chain.Next = NewExpression(&Identifier{Name: "x"})
	chain.Next.Next = NewClear("x")
	chain.Next.Next.Next = NewList()
	chain.Next.Next.Next.Next = NewQuit()

	if chain.Len() != 5 {
		t.Errorf("Len() = %d, want 5", chain.Len())
	}
	if got, want := chain.ChainString(), "x = 5; x; clear x; list; quit"; got != want {
		t.Errorf("ChainString() = %q, want %q", got, want)
	}
	if err := chain.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidateMissingOperand(t *testing.T) {
	tests := []struct {
		name string
		stmt *Statement
	}{
		{"nil expression", NewExpression(nil)},
		{"nil right operand", NewExpression(&BinaryOp{Left: &Number{Value: 1}, Op: OpAdd})},
		{"nil function argument", NewAssignment("y", &FunctionCall{Func: FuncSin})},
		{"clear without id", NewClear("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.stmt.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}

	if err := NewEmpty().Validate(); err != nil {
		t.Errorf("empty statement: %v", err)
	}
}
