// Package task defines tasks and the ordered task list.
//
// A task is one of three kinds, each with a one-letter tag used by the
// data file:
//
//   - T: a plain to-do with only a description
//   - D: a deadline, carrying the text after "/by"
//   - E: an event, carrying the text after "/at"
//
// Dates are opaque strings. They are trimmed and must not be empty, but no
// calendar validation is performed.
//
// # Indexing
//
// List positions are 0-based. Users see 1-based numbers; the conversion
// happens in the parser and in IndexError messages.
package task
