// File: eval.go
// Title: Expression Evaluation
// Description: Evaluates expression trees. An unbound identifier is reported
//              once, at the lookup, and the failure then travels up through
//              all enclosing nodes without further reports.
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
	"math"

	"github.com/msto63/pascal/foundation/calc/ast"
)

// UndefinedVariableError is raised when an identifier has no binding
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return e.Name + " not defined"
}

// Result is either a value or the error that prevented it
type Result struct {
	Value float64
	Err   error
}

// OK reports whether the result carries a value
func (r Result) OK() bool {
	return r.Err == nil
}

// Reporter receives errors at the point where they are raised
type Reporter func(err error)

// Evaluate computes expr against env. Division by zero and domain errors
// follow IEEE semantics and are not errors. report may be nil.
func Evaluate(expr ast.Expr, env *Environment, report Reporter) Result {
	switch n := expr.(type) {
	case *ast.Number:
		return Result{Value: n.Value}

	case *ast.Identifier:
		if v, ok := env.Get(n.Name); ok {
			return Result{Value: v}
		}
		err := &UndefinedVariableError{Name: n.Name}
		if report != nil {
			report(err)
		}
		return Result{Err: err}

	case *ast.BinaryOp:
		// both sides are evaluated so every unbound name gets reported
		left := Evaluate(n.Left, env, report)
		right := Evaluate(n.Right, env, report)
		if !left.OK() {
			return left
		}
		if !right.OK() {
			return right
		}
		return Result{Value: applyOperator(n.Op, left.Value, right.Value)}

	case *ast.FunctionCall:
		arg := Evaluate(n.Arg, env, report)
		if !arg.OK() {
			return arg
		}
		return Result{Value: applyFunction(n.Func, arg.Value)}

	default:
		return Result{Err: fmt.Errorf("unsupported expression %T", expr)}
	}
}

func applyOperator(op ast.Operator, a, b float64) float64 {
	switch op {
	case ast.OpAdd:
		return a + b
	case ast.OpSub:
		return a - b
	case ast.OpMul:
		return a * b
	case ast.OpDiv:
		return a / b
	case ast.OpPow:
		return math.Pow(a, b)
	default:
		return math.NaN()
	}
}

func applyFunction(f ast.Function, x float64) float64 {
	switch f {
	case ast.FuncSqrt:
		return math.Sqrt(x)
	case ast.FuncSin:
		return math.Sin(x)
	case ast.FuncCos:
		return math.Cos(x)
	case ast.FuncLog:
		return math.Log(x)
	case ast.FuncTan:
		return math.Tan(x)
	case ast.FuncExp:
		return math.Exp(x)
	case ast.FuncNegate:
		return -x
	default:
		return math.NaN()
	}
}
