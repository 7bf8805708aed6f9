// Package logging provides structured logging utilities for the calendar
// agent.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - Append-only JSON file sink
//   - PII sanitization (email anonymization)
//   - Consistent attribute naming across the codebase
package logging
