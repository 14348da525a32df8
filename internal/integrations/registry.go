package integrations

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Project layout owned by setup. Tool files may not point at these.
const (
	CanonicalFile = "AGENT.md"
	BackupDir     = ".agent-md-backups"
	GitDir        = ".git"
)

// ToolName identifies a supported AI tool integration.
type ToolName string

const (
	Claude   ToolName = "claude"
	Copilot  ToolName = "copilot"
	Kiro     ToolName = "kiro"
	Cursor   ToolName = "cursor"
	Windsurf ToolName = "windsurf"
	Continue ToolName = "continue"
	Roo      ToolName = "roo"
	Cline    ToolName = "cline"
)

// Tool describes where one AI tool reads its project instructions from.
type Tool struct {
	ID             ToolName `json:"id"`
	Name           string   `json:"name"`
	File           string   `json:"file"` // relative to the project root, may be nested
	Description    string   `json:"description"`
	DefaultEnabled bool     `json:"default_enabled"`
}

// builtinTools lists the tools known out of the box, in display order.
func builtinTools() []Tool {
	return []Tool{
		{ID: Claude, Name: "Claude Code", File: "CLAUDE.md", DefaultEnabled: true},
		{ID: Copilot, Name: "GitHub Copilot", File: ".github/copilot-instructions.md", DefaultEnabled: true},
		{ID: Kiro, Name: "Kiro AI", File: ".kiro/steering/project.md"},
		{ID: Cursor, Name: "Cursor", File: ".cursorrules"},
		{ID: Windsurf, Name: "Windsurf", File: ".windsurfrules"},
		{ID: Continue, Name: "Continue", File: ".continuerc.json"},
		{ID: Roo, Name: "Roo", File: ".roorc"},
		{ID: Cline, Name: "Cline", File: ".clinerc"},
	}
}

// Registry is an immutable, ordered set of tool descriptors keyed by ID.
type Registry struct {
	tools map[ToolName]Tool
	order []ToolName
}

// Builtin returns a registry holding only the built-in tools.
func Builtin() *Registry {
	r, err := NewRegistry(builtinTools())
	if err != nil {
		panic(fmt.Sprintf("invalid builtin tool table: %v", err))
	}
	return r
}

// WithBuiltins returns a registry of the built-in tools followed by extra.
// An extra tool reusing a built-in ID is an error.
func WithBuiltins(extra []Tool) (*Registry, error) {
	return NewRegistry(append(builtinTools(), extra...))
}

// NewRegistry validates tools and builds a registry preserving their order.
// A missing Description defaults to "<Name> compatibility".
func NewRegistry(tools []Tool) (*Registry, error) {
	r := &Registry{
		tools: make(map[ToolName]Tool, len(tools)),
		order: make([]ToolName, 0, len(tools)),
	}

	for _, t := range tools {
		if t.ID == "" {
			return nil, fmt.Errorf("tool %q: empty id", t.Name)
		}
		if _, dup := r.tools[t.ID]; dup {
			return nil, fmt.Errorf("duplicate tool id %q", t.ID)
		}
		if t.Name == "" {
			t.Name = string(t.ID)
		}
		if err := validateFile(t.File); err != nil {
			return nil, fmt.Errorf("tool %q: %w", t.ID, err)
		}
		if t.Description == "" {
			t.Description = t.Name + " compatibility"
		}
		r.tools[t.ID] = t
		r.order = append(r.order, t.ID)
	}

	return r, nil
}

// validateFile rejects paths that would leave the project root or collide
// with the setup layout.
func validateFile(file string) error {
	if file == "" {
		return fmt.Errorf("empty config file path")
	}
	if filepath.IsAbs(file) || strings.HasPrefix(file, "/") || strings.HasPrefix(file, `\`) {
		return fmt.Errorf("config file path %q must be relative", file)
	}

	clean := filepath.ToSlash(filepath.Clean(filepath.FromSlash(file)))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("config file path %q escapes the project root", file)
	}

	first := strings.SplitN(clean, "/", 2)[0]
	if clean == CanonicalFile || first == BackupDir || first == GitDir {
		return fmt.Errorf("config file path %q is reserved", file)
	}
	return nil
}

// Lookup returns the descriptor for id.
func (r *Registry) Lookup(id string) (Tool, bool) {
	t, ok := r.tools[ToolName(id)]
	return t, ok
}

// All returns every descriptor in registry order.
func (r *Registry) All() []Tool {
	tools := make([]Tool, 0, len(r.order))
	for _, id := range r.order {
		tools = append(tools, r.tools[id])
	}
	return tools
}

// IDs returns every tool ID in registry order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	for i, id := range r.order {
		ids[i] = string(id)
	}
	return ids
}

// DefaultIDs returns the IDs of tools enabled by default.
func (r *Registry) DefaultIDs() []string {
	var ids []string
	for _, id := range r.order {
		if r.tools[id].DefaultEnabled {
			ids = append(ids, string(id))
		}
	}
	return ids
}

// Select resolves the tool selection for a full setup: every tool when all is
// set, the default tools when ids is empty, otherwise ids as given.
// Unknown IDs are kept; consumers skip them.
func (r *Registry) Select(ids []string, all bool) []string {
	switch {
	case all:
		return r.IDs()
	case len(ids) == 0:
		return r.DefaultIDs()
	default:
		return dedupe(ids)
	}
}

// OrAll returns ids, or every registered ID when ids is empty.
func (r *Registry) OrAll(ids []string) []string {
	if len(ids) == 0 {
		return r.IDs()
	}
	return dedupe(ids)
}

// dedupe drops repeated and blank IDs, keeping first occurrences in order.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
