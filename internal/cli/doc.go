// Package cli defines the Cobra command tree for the ai-tools CLI. Each file
// builds one top-level command (setup, verify, serve, etc.). Commands delegate
// to internal/linker for the work and only handle flags and output.
package cli
