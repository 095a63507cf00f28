// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// layers built-in defaults, an optional run file and explicit flags into the
// application's configuration.
package cli
