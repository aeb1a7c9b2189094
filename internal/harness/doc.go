// Package harness runs YAML-driven conformance scenarios against the
// latsq command line interface. A scenario is a sequence of command
// invocations with expected standard output, expected exit codes, or
// golden-file comparisons; scenarios live in testdata and double as
// executable documentation of the end-to-end behaviour.
package harness
