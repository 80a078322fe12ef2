// Package app wires application dependencies for the CLI.
//
// It resolves Config from flags and the optional YAML file, then builds the
// keystore, services, key fetcher and sealer, exposing them via the Wire
// struct for commands to use.
package app
