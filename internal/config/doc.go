// Package config defines the format-agnostic run-file model for the
// application, along with the Loader interface for reading it from a
// concrete source.
//
// A config.Run carries only the settings a file actually sets; every field is
// optional so that the CLI can layer it between built-in defaults and
// explicit command-line flags. Concrete implementations of Loader, such as
// for HCL, are provided in separate packages.
package config
