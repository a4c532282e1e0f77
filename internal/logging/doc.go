// Package logging builds the slog loggers used across lrcloud.
//
// Two output formats are supported: a console form for interactive use
// and a JSON form for machine consumption. When a log directory is
// configured, output is duplicated to a lrcloud.log file alongside
// stderr. Timestamps are UTC RFC3339 in both formats.
package logging
