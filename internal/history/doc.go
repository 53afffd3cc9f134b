// Package history persists a ledger of past export runs in SQLite.
// Recording is best-effort from the pipeline's perspective; a history
// failure never fails an export.
package history
