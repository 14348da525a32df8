package manifest

import "github.com/cpritchett/ai-tools/internal/integrations"

// ToolsFile is the decoded form of a custom tools file.
type ToolsFile struct {
	Version int         `yaml:"version,omitempty" json:"version,omitempty"`
	Tools   []ToolEntry `yaml:"tools" json:"tools"`
}

// ToolEntry declares one additional AI tool.
type ToolEntry struct {
	ID             string `yaml:"id" json:"id"`
	Name           string `yaml:"name,omitempty" json:"name,omitempty"`
	File           string `yaml:"file" json:"file"`
	Description    string `yaml:"description,omitempty" json:"description,omitempty"`
	DefaultEnabled bool   `yaml:"default_enabled,omitempty" json:"default_enabled,omitempty"`
}

// Descriptors converts the entries to registry descriptors.
func (f *ToolsFile) Descriptors() []integrations.Tool {
	tools := make([]integrations.Tool, 0, len(f.Tools))
	for _, e := range f.Tools {
		tools = append(tools, integrations.Tool{
			ID:             integrations.ToolName(e.ID),
			Name:           e.Name,
			File:           e.File,
			Description:    e.Description,
			DefaultEnabled: e.DefaultEnabled,
		})
	}
	return tools
}
