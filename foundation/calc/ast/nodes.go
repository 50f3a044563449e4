// File: nodes.go
// Title: AST Node Definitions
// Description: Expression and statement nodes. Nodes are immutable once the
//              parser has built them.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr is an expression node. The set of implementations is closed.
type Expr interface {
	String() string
	exprNode()
}

// Number is a numeric literal
type Number struct {
	Value float64
}

// Identifier is a variable reference
type Identifier struct {
	Name string
}

// Operator is a binary operator
type Operator int

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

// String returns the operator symbol
func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "**"
	default:
		return "?"
	}
}

// BinaryOp applies Op to Left and Right. Both operands are non-nil.
type BinaryOp struct {
	Left  Expr
	Op    Operator
	Right Expr
}

// Function is a unary function
type Function int

const (
	FuncSqrt Function = iota
	FuncSin
	FuncCos
	FuncLog
	FuncTan
	FuncExp

	// FuncNegate is the prefix minus
	FuncNegate
)

// String returns the function name as written in source, "-" for negation
func (f Function) String() string {
	switch f {
	case FuncSqrt:
		return "sqrt"
	case FuncSin:
		return "sin"
	case FuncCos:
		return "cos"
	case FuncLog:
		return "log"
	case FuncTan:
		return "tan"
	case FuncExp:
		return "exp"
	case FuncNegate:
		return "-"
	default:
		return "?"
	}
}

// FunctionCall applies Func to Arg
type FunctionCall struct {
	Func Function
	Arg  Expr
}

func (*Number) exprNode()       {}
func (*Identifier) exprNode()   {}
func (*BinaryOp) exprNode()     {}
func (*FunctionCall) exprNode() {}

func (n *Number) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (n *Identifier) String() string {
	return n.Name
}

// String renders the operation fully parenthesised, which makes the
// association of chained operators visible
func (n *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Op, n.Right)
}

func (n *FunctionCall) String() string {
	if n.Func == FuncNegate {
		return fmt.Sprintf("-(%s)", n.Arg)
	}
	return fmt.Sprintf("%s(%s)", n.Func, n.Arg)
}

// StatementKind identifies the variant of a Statement
type StatementKind int

const (
	StmtExpression StatementKind = iota
	StmtAssignment
	StmtClear
	StmtList
	StmtQuit
	StmtEmpty
)

// String returns the name of the statement kind
func (k StatementKind) String() string {
	switch k {
	case StmtExpression:
		return "expression"
	case StmtAssignment:
		return "assignment"
	case StmtClear:
		return "clear"
	case StmtList:
		return "list"
	case StmtQuit:
		return "quit"
	case StmtEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Statement is one node of the statement chain of an input line. ID is set
// for assignments and clears, Expr for expressions and assignments.
type Statement struct {
	Kind StatementKind
	ID   string
	Expr Expr
	Next *Statement
}

// NewExpression creates an expression statement
func NewExpression(expr Expr) *Statement {
	return &Statement{Kind: StmtExpression, Expr: expr}
}

// NewAssignment creates an assignment statement
func NewAssignment(id string, expr Expr) *Statement {
	return &Statement{Kind: StmtAssignment, ID: id, Expr: expr}
}

// NewClear creates a clear statement
func NewClear(id string) *Statement {
	return &Statement{Kind: StmtClear, ID: id}
}

// NewList creates a list statement
func NewList() *Statement {
	return &Statement{Kind: StmtList}
}

// NewQuit creates a quit statement
func NewQuit() *Statement {
	return &Statement{Kind: StmtQuit}
}

// NewEmpty creates an empty statement
func NewEmpty() *Statement {
	return &Statement{Kind: StmtEmpty}
}

// Len returns the number of statements in the chain starting at s
func (s *Statement) Len() int {
	n := 0
	for cur := s; cur != nil; cur = cur.Next {
		n++
	}
	return n
}

// String renders this statement only
func (s *Statement) String() string {
	switch s.Kind {
	case StmtExpression:
		return s.Expr.String()
	case StmtAssignment:
		return fmt.Sprintf("%s = %s", s.ID, s.Expr)
	case StmtClear:
		return "clear " + s.ID
	case StmtList, StmtQuit, StmtEmpty:
		return s.Kind.String()
	default:
		return "?"
	}
}

// ChainString renders the whole chain separated by "; "
func (s *Statement) ChainString() string {
	var parts []string
	for cur := s; cur != nil; cur = cur.Next {
		parts = append(parts, cur.String())
	}
	return strings.Join(parts, "; ")
}

// Validate checks that every operand required by the grammar is present
func (s *Statement) Validate() error {
	for cur := s; cur != nil; cur = cur.Next {
		switch cur.Kind {
		case StmtExpression, StmtAssignment:
			if err := validateExpr(cur.Expr); err != nil {
				return fmt.Errorf("%s statement: %w", cur.Kind, err)
			}
		}
		if (cur.Kind == StmtAssignment || cur.Kind == StmtClear) && cur.ID == "" {
			return fmt.Errorf("%s statement without identifier", cur.Kind)
		}
	}
	return nil
}

func validateExpr(e Expr) error {
	switch n := e.(type) {
	case nil:
		return fmt.Errorf("missing operand")
	case *Number, *Identifier:
		return nil
	case *BinaryOp:
		if n == nil {
			return fmt.Errorf("missing operand")
		}
		if err := validateExpr(n.Left); err != nil {
			return err
		}
		return validateExpr(n.Right)
	case *FunctionCall:
		if n == nil {
			return fmt.Errorf("missing operand")
		}
		return validateExpr(n.Arg)
	default:
		return fmt.Errorf("unknown expression %T", e)
	}
}
