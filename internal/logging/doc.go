// Package logging provides concrete implementations of the mdsource.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes leveled messages to stderr through charmbracelet/log
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
