// Package ast defines the syntax tree of the calculator language.
//
// Package: ast
// Title: Calculator Abstract Syntax Tree
// Description: Expressions form a closed set of node types behind the sealed
//              Expr interface. Each input line becomes a chain of Statement
//              nodes linked through Next.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation
package ast
