// Package linker points every AI tool's instruction file at a single AGENT.md.
// Setup backs up existing tool configs into .agent-md-backups/, writes a
// starter AGENT.md when none exists, and replaces each tool path with a
// relative symlink to it. Running it again changes nothing. Verify reports the
// link state of each tool without touching the disk.
package linker
