// Package log provides structured logging for the Pascal calculator.
//
// Package: log
// Title: Pascal Structured Logging
// Description: Structured logging with levels, typed fields, several output
//              formats and cloned contextual loggers. Loggers carry an optional
//              session ID so that log lines of concurrent websocket sessions
//              can be told apart.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-18 v0.2.0: Session context, deterministic field order, synchronous only
//
// Usage:
//   import mdwlog "github.com/msto63/pascal/foundation/core/log"
//
//   logger := mdwlog.New().
//     WithLevel(mdwlog.LevelDebug).
//     WithFormat(mdwlog.FormatText).
//     WithField("component", "calc-parser").
//     WithSessionID(sessionID)
//
//   logger.Debug("Parsed statement chain", mdwlog.Fields{"statements": 3})
//
//   timer := logger.StartTimer("evaluate line")
//   // ... evaluate
//   timer.Stop()
package log
