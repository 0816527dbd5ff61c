// Package logging provides logging utilities for quickssh.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("loaded ssh config", "path", path, "hosts", n)
//	logging.Warn("config warning", "line", w.Line, "kind", w.Kind)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Connecting to %s...", alias)
//	logging.UserSuccess("Host %s added to %s", alias, group)
//	logging.UserWarning("%s has no MAC address", alias)
//	logging.UserError("Failed to save config: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: Stdout (os.Stdout by default)
//   - UserWarning, UserError: Stderr (os.Stderr by default)
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
