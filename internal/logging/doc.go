// Package logging builds the process-wide slog logger. Logs always go to a
// caller-supplied writer (stderr in practice) so stdout stays free for command
// output and the MCP stdio transport.
package logging
