// File: codes.go
// Title: Error Codes
// Description: Defines the error codes used across the calculator core and
//              its front ends. Codes are stable strings so they can be logged,
//              persisted and compared without depending on message text.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with standard error codes
// - 2026-10-18 v0.2.0: Calculator codes

package error

import "strings"

// Code represents a standardized error code
type Code string

const (
	// Generic
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeNotFound     Code = "NOT_FOUND"

	// Language
	CodeSyntax            Code = "SYNTAX_ERROR"
	CodeUndefinedVariable Code = "UNDEFINED_VARIABLE"
	CodeInputTooLong      Code = "INPUT_TOO_LONG"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Infrastructure
	CodeStorage          Code = "STORAGE_ERROR"
	CodeConnectionFailed Code = "CONNECTION_FAILED"
)

var knownCodes = map[Code]string{
	CodeUnknown:           "general",
	CodeInternal:          "general",
	CodeInvalidInput:      "input",
	CodeNotFound:          "general",
	CodeSyntax:            "language",
	CodeUndefinedVariable: "language",
	CodeInputTooLong:      "input",
	CodeConfigError:       "configuration",
	CodeInvalidConfig:     "configuration",
	CodeStorage:           "infrastructure",
	CodeConnectionFailed:  "infrastructure",
}

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// IsValid reports whether the code is one of the predefined codes
func (c Code) IsValid() bool {
	_, ok := knownCodes[c]
	return ok
}

// Category returns the category a code belongs to. Unknown codes are
// categorised by their prefix, falling back to "general".
func (c Code) Category() string {
	if cat, ok := knownCodes[c]; ok {
		return cat
	}
	switch {
	case strings.HasPrefix(string(c), "CONFIG"):
		return "configuration"
	case strings.HasPrefix(string(c), "STORAGE"):
		return "infrastructure"
	default:
		return "general"
	}
}

// HTTPStatus maps a code to the HTTP status used by the network front end
func (c Code) HTTPStatus() int {
	switch c {
	case CodeSyntax, CodeUndefinedVariable, CodeInvalidInput:
		return 400
	case CodeInputTooLong:
		return 413
	case CodeNotFound:
		return 404
	case CodeConnectionFailed:
		return 503
	default:
		return 500
	}
}
