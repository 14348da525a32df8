// Package integrations is the registry of supported AI coding assistants. Each
// tool is described by where it expects its instruction file inside a project
// (CLAUDE.md, .github/copilot-instructions.md, .cursorrules, ...) and whether it
// is enabled by default. A Registry is built once at start-up and never
// mutated afterwards.
package integrations
