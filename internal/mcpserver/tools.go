package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names.
const (
	ToolSetup         = "setup_agent_md"
	ToolListSupported = "list_supported_tools"
	ToolBackup        = "backup_existing_configs"
	ToolLink          = "create_symlinks"
	ToolPrompt        = "generate_integration_prompt"
	ToolVerify        = "verify_setup"
)

type setupInput struct {
	TargetDirectory string   `json:"targetDirectory,omitempty" jsonschema:"Target directory path (defaults to current directory)"`
	EnabledTools    []string `json:"enabledTools,omitempty" jsonschema:"AI tools to enable (claude, copilot, kiro, cursor, windsurf, continue, roo, cline)"`
	EnableAll       bool     `json:"enableAll,omitempty" jsonschema:"Enable all AI tools"`
}

type listInput struct{}

type toolsInput struct {
	TargetDirectory string   `json:"targetDirectory,omitempty" jsonschema:"Target directory path (defaults to current directory)"`
	Tools           []string `json:"tools,omitempty" jsonschema:"Tool IDs to act on (defaults to every supported tool)"`
}

type promptInput struct {
	BackupDirectory string   `json:"backupDirectory" jsonschema:"Directory containing the backed-up files"`
	BackedUpFiles   []string `json:"backedUpFiles,omitempty" jsonschema:"Original paths of the backed-up files"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolSetup,
		Description: "Set up AGENT.md with AI tool compatibility: back up existing configs and link each tool to AGENT.md",
	}, s.handleSetup)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolListSupported,
		Description: "List all supported AI tools and their configuration",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, s.handleList)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolBackup,
		Description: "Back up existing AI tool configuration files",
	}, s.handleBackup)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolLink,
		Description: "Create symbolic links from AI tool configs to AGENT.md",
	}, s.handleLink)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolPrompt,
		Description: "Generate the integration prompt for merging backed-up configs into AGENT.md",
	}, s.handlePrompt)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolVerify,
		Description: "Verify that AGENT.md exists and each AI tool links to it",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, s.handleVerify)
}

func (s *Server) handleSetup(_ context.Context, _ *mcp.CallToolRequest, in setupInput) (*mcp.CallToolResult, any, error) {
	ids := in.EnabledTools
	switch {
	case in.EnableAll:
		ids = s.linker.Tools().IDs()
	case len(ids) == 0:
		ids = s.defaults
	}

	report, err := s.linker.Setup(s.resolveDir(in.TargetDirectory), ids)
	if err != nil {
		s.logger.Warn("setup failed", "error", err)
		return errorResult(err), nil, nil
	}
	return textResult(report.String()), nil, nil
}

func (s *Server) handleList(_ context.Context, _ *mcp.CallToolRequest, _ listInput) (*mcp.CallToolResult, any, error) {
	var b strings.Builder
	b.WriteString("# Supported AI Tools\n")
	for _, t := range s.linker.Tools().All() {
		enabled := "No"
		if t.DefaultEnabled {
			enabled = "Yes"
		}
		fmt.Fprintf(&b, "\n- **%s** (%s)\n  File: %s\n  Description: %s\n  Default enabled: %s\n",
			t.Name, t.ID, t.File, t.Description, enabled)
	}
	return textResult(b.String()), nil, nil
}

func (s *Server) handleBackup(_ context.Context, _ *mcp.CallToolRequest, in toolsInput) (*mcp.CallToolResult, any, error) {
	report, err := s.linker.Backup(s.resolveDir(in.TargetDirectory), in.Tools)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return textResult(report.String()), nil, nil
}

func (s *Server) handleLink(_ context.Context, _ *mcp.CallToolRequest, in toolsInput) (*mcp.CallToolResult, any, error) {
	report, err := s.linker.Link(s.resolveDir(in.TargetDirectory), in.Tools)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return textResult(report.String()), nil, nil
}

func (s *Server) handlePrompt(_ context.Context, _ *mcp.CallToolRequest, in promptInput) (*mcp.CallToolResult, any, error) {
	if in.BackupDirectory == "" {
		return errorResult(errors.New("backupDirectory is required")), nil, nil
	}
	path, err := s.linker.GenerateGuidance(s.resolveDir(in.BackupDirectory), in.BackedUpFiles)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return textResult("Integration prompt generated at " + path), nil, nil
}

func (s *Server) handleVerify(_ context.Context, _ *mcp.CallToolRequest, in toolsInput) (*mcp.CallToolResult, any, error) {
	v, err := s.linker.Verify(s.resolveDir(in.TargetDirectory), in.Tools)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return textResult(v.String()), nil, nil
}
