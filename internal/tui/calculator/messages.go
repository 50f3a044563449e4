// ============================================================================
// Pascal - Zeilenorientierter Rechner
// ============================================================================
//
// Package:     calculator
// Description: Message types for async operations in the calculator TUI
// Author:      Mike Stoffels
// Created:     2025-12-07
// Modified:    2026-10-18
// License:     MIT
// ============================================================================

package calculator

import (
	"github.com/msto63/pascal/foundation/calc"
)

// transcriptEntry is one evaluated input with its output
type transcriptEntry struct {
	input  string
	result *calc.Result
}

// evalResultMsg is sent when a line has been evaluated
type evalResultMsg struct {
	input  string
	result *calc.Result
}
