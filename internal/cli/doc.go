// Package cli defines the Cobra command tree for the story-launcher CLI. Each
// file in this package registers one top-level command (status, install,
// launch, etc.) with the root command. Commands delegate to package manager
// and only handle flag parsing and output formatting.
package cli
