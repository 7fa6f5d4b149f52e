// Package logging assembles the structured slog loggers used across mimedex.
//
// It owns the console and JSON handlers, centralizes level plumbing, and
// exposes attribute aliases plus a component-logger constructor so every
// subsystem emits log lines with the same shape. A no-op logger is provided
// for tests and wiring code that cannot fail.
package logging
