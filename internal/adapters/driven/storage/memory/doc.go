// Package memory provides in-memory implementations of the driven stores.
// They back tests and runs where history is disabled.
package memory
