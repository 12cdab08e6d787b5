// Package logging builds the slog loggers used across the migration
// pipeline: a human-readable console handler for interactive runs and a
// JSON handler for archived batch logs, fanned out to stdout and the
// configured log file.
package logging
