// ============================================================================
// Pascal - Zeilenorientierter Rechner
// ============================================================================
//
// Package:     version
// Description: Central version management for all components
// Author:      Mike Stoffels
// Created:     2025-12-06
// Modified:    2026-10-18
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for all Pascal components
const (
	// Application version
	Application = "1.0.0"

	// Component versions
	Interpreter = "1.0.0"
	REPL        = "1.0.0"
	Server      = "1.0.0"
	TUI         = "1.0.0"
	History     = "1.0.0"
)

// Build metadata, set via -ldflags "-X github.com/msto63/pascal/pkg/core/version.Commit=..."
var (
	Commit    = "dev"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "interpreter":
		return Interpreter
	case "repl":
		return REPL
	case "server":
		return Server
	case "tui":
		return TUI
	case "history":
		return History
	default:
		return Application
	}
}

// String returns the full version line printed by "pascal version"
func String() string {
	return fmt.Sprintf("pascal %s (commit %s, built %s, %s %s/%s)",
		Application, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
