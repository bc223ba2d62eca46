// Package cache provides an in-memory snapshot cache in front of an account source.
//
// The cache keeps the last fetched account set for a configurable TTL so that
// repeated loads (for example re-opening the TUI) do not hit the backend.
// Key behaviors:
//   - FetchAll serves the snapshot while it is fresh
//   - Refresh always reloads from the backend and replaces the snapshot
//   - UpdateMany invalidates the snapshot before delegating
//
// Nothing is written to disk; the snapshot lives as long as the process.
package cache
