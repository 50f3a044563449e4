// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors. Language errors are low
//              severity because they only affect the current input line;
//              infrastructure errors are higher.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-10-18 v0.2.0: Severity mapping for calculator codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow affects a single input line, the session continues
	SeverityLow Severity = iota

	// SeverityMedium affects a feature that has a fallback
	SeverityMedium

	// SeverityHigh affects a front end or the persistence layer
	SeverityHigh

	// SeverityCritical makes the program unusable
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldLog reports whether errors of this severity are logged above debug level
func (s Severity) ShouldLog() bool {
	return s >= SeverityMedium
}

// GetSeverityFromCode returns the default severity for an error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeSyntax, CodeUndefinedVariable, CodeInputTooLong, CodeInvalidInput, CodeNotFound:
		return SeverityLow
	case CodeStorage, CodeConnectionFailed, CodeConfigError, CodeInvalidConfig:
		return SeverityHigh
	case CodeInternal:
		return SeverityCritical
	default:
		return SeverityMedium
	}
}
