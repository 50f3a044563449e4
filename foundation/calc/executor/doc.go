// Package executor evaluates parsed calculator statements.
//
// Package: executor
// Title: Calculator Execution Engine
// Description: Holds the variable environment of a session, evaluates
//              expression trees with IEEE double arithmetic and runs statement
//              chains, producing the output lines of an input line together
//              with the continue signal.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation
package executor
