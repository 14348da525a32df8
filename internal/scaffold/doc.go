// Package scaffold holds the embedded documents setup writes into a project:
// the starter AGENT.md and the integration prompt that lists backed-up tool
// configs for a human or an LLM to merge into AGENT.md.
package scaffold
