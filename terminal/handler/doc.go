// Provide handler types for control characters and sequences.
//
// Since a caller might not implement all the control character
// handlers, callers of stream.Stream only need to implement the
// handlers they want to.
//
// The handlers are split into separate interfaces and type assertion
// detects whether a specific handler is implemented.
package handler
