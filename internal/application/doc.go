// Package application wires configuration, inventory storage, HTTP handlers
// and the server together so the main package only parses flags and waits
// for a shutdown signal.
package application
