// Package model defines the domain types and value objects for the
// ticketscan CLI.
//
// This package contains pure data structures with no external dependencies.
// The parsed input (Notes) is built once from the notes file and treated as
// read-only by every computation that consumes it.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
