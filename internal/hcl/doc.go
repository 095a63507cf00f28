// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for file parsing, expression evaluation and
// CTY-to-Go conversion of `run` blocks.
//
// Attribute expressions are evaluated against a small context: the
// variables `num_cpu` and `env`, and the numeric functions pow, min, max,
// floor, ceil and parseint.
package hcl
