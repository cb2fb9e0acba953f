// Package memory provides in-memory implementations of the driven storage
// ports. They back tests and the "no snapshot" mode of the CLI.
package memory
