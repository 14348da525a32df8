// Package mcpserver exposes the AGENT.md operations as MCP tools over stdio.
// Tool failures are reported in the result with IsError set; the protocol
// error channel is reserved for transport problems.
package mcpserver
