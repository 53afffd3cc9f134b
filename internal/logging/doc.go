// Package logging constructs slog loggers for the rVJ backend and exposes
// small attribute helpers so callers do not import log/slog directly.
package logging
