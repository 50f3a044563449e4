// Package error provides structured errors for the Pascal foundation.
//
// Package: error
// Title: Pascal Structured Errors
// Description: Errors carry a machine readable code, a severity, the failing
//              operation and free-form details in addition to the message and
//              cause. They satisfy the standard error interface and work with
//              errors.Is and errors.As through Unwrap.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors
// - 2026-10-18 v0.2.0: Calculator error codes, drop localisation fields
//
// Usage:
//   import mdwerror "github.com/msto63/pascal/foundation/core/error"
//
//   err := mdwerror.New(") expected").
//     WithCode(mdwerror.CodeSyntax).
//     WithOperation("parser.parseFactor").
//     WithDetail("token", "NUM(2)")
//
//   if mdwerror.HasCode(err, mdwerror.CodeSyntax) {
//     // report and continue with the next line
//   }
package error
