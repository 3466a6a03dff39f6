// Package app provides the orchestration layer for booktrack.
//
// # Overview
//
// This package is the composition root. It resolves configuration, opens the
// log file, builds the books API client and hands them to either the TUI or
// one of the one-shot commands used by the CLI.
//
// # Startup
//
//  1. config.Load reads ~/.config/booktrack/config.toml (or the --config path)
//  2. config.ApplyEnv overlays .env and BOOKTRACK_* variables
//  3. a --base-url flag, when given, wins over both
//  4. the result is validated
//  5. logging.New opens the JSON log file
//  6. books.NewClient builds the HTTP client with the configured timeout
//
// # Entry points
//
//   - Run: start the Bubble Tea UI (requires an interactive terminal)
//   - List: print books as a table, optionally filtered by name
//   - Show: print one book
//   - Add: validate and post a book, printing the resulting alert
//   - Logs: print the formatted tail of the log file
//
// The one-shot commands drive the same request.Manager the screens use, so a
// CLI call reports the same success and error messages as the TUI.
//
// # Error Handling
//
// Configuration, logging and client construction failures are returned from
// every entry point. Request failures are returned by List, Show and Add so
// the CLI can exit non-zero; inside the TUI they only raise alerts.
package app
