package mcpserver

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cpritchett/ai-tools/internal/branding"
	"github.com/cpritchett/ai-tools/internal/linker"
	"github.com/cpritchett/ai-tools/internal/logging"
)

// Options configures a Server.
type Options struct {
	// Version is reported in the MCP implementation info.
	Version string
	// WorkDir is used when a call omits targetDirectory. Defaults to the
	// process working directory.
	WorkDir string
	// DefaultTools replaces the registry defaults for setup_agent_md calls
	// that name no tools.
	DefaultTools []string
	Logger       *slog.Logger
}

// Server wraps an MCP server whose tools drive a Linker.
type Server struct {
	linker   *linker.Linker
	workDir  string
	defaults []string
	logger   *slog.Logger
	mcp      *mcp.Server
}

// New builds a Server with every tool registered.
func New(l *linker.Linker, opts Options) *Server {
	if opts.WorkDir == "" {
		if wd, err := os.Getwd(); err == nil {
			opts.WorkDir = wd
		}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	s := &Server{
		linker:   l,
		workDir:  opts.WorkDir,
		defaults: opts.DefaultTools,
		logger:   opts.Logger,
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    branding.ServerName(),
			Version: opts.Version,
		}, nil),
	}
	s.registerTools()
	return s
}

// MCPServer returns the underlying server, for custom transports.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Run serves over stdin/stdout until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server starting", "name", branding.ServerName(), "workdir", s.workDir)
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// resolveDir returns the absolute target directory for a call.
func (s *Server) resolveDir(dir string) string {
	if dir == "" {
		return s.workDir
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(s.workDir, dir)
	}
	return filepath.Clean(dir)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: "Error: " + err.Error()}},
		IsError: true,
	}
}
