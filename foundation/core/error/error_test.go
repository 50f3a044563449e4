// File: error_test.go
// Title: Error Module Tests
// Description: Tests for error creation, wrapping, codes, severity and
//              serialisation.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive test coverage
// - 2026-10-18 v0.2.0: Calculator codes

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	msg := ") expected"
	err := New(msg)

	if err.Error() != msg {
		t.Errorf("Error() = %q, want %q", err.Error(), msg)
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityMedium)
	}
	if err.Timestamp().IsZero() {
		t.Error("Timestamp() should not be zero")
	}
	if len(err.StackTrace()) == 0 {
		t.Error("StackTrace() should not be empty")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		message  string
		wantNil  bool
		wantMsg  string
		wantCode Code
	}{
		{
			name:    "wrap nil error",
			message: "wrapper",
			wantNil: true,
		},
		{
			name:     "wrap standard error",
			err:      errors.New("disk full"),
			message:  "record history",
			wantMsg:  "record history: disk full",
			wantCode: CodeUnknown,
		},
		{
			name:     "wrap structured error keeps code",
			err:      New("Expected ';'").WithCode(CodeSyntax),
			message:  "parse line",
			wantMsg:  "parse line: Expected ';'",
			wantCode: CodeSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.err, tt.message)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Wrap() = %v, want nil", got)
				}
				return
			}
			if got.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got.Error(), tt.wantMsg)
			}
			if got.Code() != tt.wantCode {
				t.Errorf("Code() = %v, want %v", got.Code(), tt.wantCode)
			}
			if !errors.Is(got, tt.err) {
				t.Error("errors.Is should find the wrapped error")
			}
		})
	}
}

func TestWithCodeSetsSeverity(t *testing.T) {
	tests := []struct {
		code Code
		want Severity
	}{
		{CodeSyntax, SeverityLow},
		{CodeUndefinedVariable, SeverityLow},
		{CodeStorage, SeverityHigh},
		{CodeInvalidConfig, SeverityHigh},
		{CodeInternal, SeverityCritical},
		{CodeUnknown, SeverityMedium},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := New("x").WithCode(tt.code)
			if err.Severity() != tt.want {
				t.Errorf("Severity() = %v, want %v", err.Severity(), tt.want)
			}
		})
	}

	explicit := New("x").WithSeverity(SeverityCritical).WithCode(CodeSyntax)
	if explicit.Severity() != SeverityCritical {
		t.Errorf("explicit severity overridden: %v", explicit.Severity())
	}
}

func TestDetailsAndOperation(t *testing.T) {
	err := New(") expected").
		WithOperation("parser.parseFactor").
		WithDetail("token", "NUM(2)").
		WithDetails(map[string]interface{}{"line": "sqrt 2"})

	if err.Operation() != "parser.parseFactor" {
		t.Errorf("Operation() = %q", err.Operation())
	}
	details := err.Details()
	if details["token"] != "NUM(2)" || details["line"] != "sqrt 2" {
		t.Errorf("Details() = %v", details)
	}

	// The returned map is a copy.
	details["token"] = "changed"
	if err.Details()["token"] != "NUM(2)" {
		t.Error("Details() must return a copy")
	}

	s := err.String()
	for _, want := range []string{"Error: ) expected", "Operation: parser.parseFactor", "token=NUM(2)"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}
}

func TestHasCodeAndGetCode(t *testing.T) {
	inner := New("x not defined").WithCode(CodeUndefinedVariable)
	outer := fmt.Errorf("evaluate: %w", inner)

	if !HasCode(outer, CodeUndefinedVariable) {
		t.Error("HasCode should look through fmt wrapping")
	}
	if HasCode(outer, CodeSyntax) {
		t.Error("HasCode matched the wrong code")
	}
	if GetCode(outer) != CodeUndefinedVariable {
		t.Errorf("GetCode() = %v", GetCode(outer))
	}
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Error("GetCode of a plain error should be CodeUnknown")
	}
	if GetSeverity(errors.New("plain")) != SeverityMedium {
		t.Error("GetSeverity of a plain error should be SeverityMedium")
	}
}

func TestRootCause(t *testing.T) {
	root := errors.New("database is locked")
	err := Wrap(Wrap(root, "insert entry"), "record history")
	if err.RootCause() != root {
		t.Errorf("RootCause() = %v, want %v", err.RootCause(), root)
	}
}

func TestMarshalJSON(t *testing.T) {
	err := Wrap(errors.New("boom"), "load presets").
		WithCode(CodeInvalidConfig).
		WithDetail("path", "vars.toml")

	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatalf("Marshal() error = %v", jerr)
	}

	var decoded map[string]interface{}
	if jerr := json.Unmarshal(data, &decoded); jerr != nil {
		t.Fatalf("Unmarshal() error = %v", jerr)
	}
	if decoded["code"] != string(CodeInvalidConfig) {
		t.Errorf("code = %v", decoded["code"])
	}
	if decoded["severity"] != "high" {
		t.Errorf("severity = %v", decoded["severity"])
	}
	if decoded["cause"] != "boom" {
		t.Errorf("cause = %v", decoded["cause"])
	}
}

func TestCodeCategoryAndStatus(t *testing.T) {
	tests := []struct {
		code     Code
		category string
		status   int
		valid    bool
	}{
		{CodeSyntax, "language", 400, true},
		{CodeInputTooLong, "input", 413, true},
		{CodeStorage, "infrastructure", 500, true},
		{CodeNotFound, "general", 404, true},
		{Code("CONFIG_MISSING"), "configuration", 500, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.Category(); got != tt.category {
				t.Errorf("Category() = %q, want %q", got, tt.category)
			}
			if got := tt.code.HTTPStatus(); got != tt.status {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.status)
			}
			if got := tt.code.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}
