package linker

import (
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/cpritchett/ai-tools/internal/integrations"
	"github.com/cpritchett/ai-tools/internal/logging"
	"github.com/cpritchett/ai-tools/internal/platform"
)

// GuidanceFile is the name of the integration prompt inside the backup directory.
const GuidanceFile = "integration-prompt.md"

// ErrNotGitRepository is returned by Setup when the target has no .git entry.
var ErrNotGitRepository = errors.New("not a git repository")

// Linker reconciles tool config paths against AGENT.md.
type Linker struct {
	fs            platform.FS
	tools         *integrations.Registry
	logger        *slog.Logger
	ignoreBackups bool
}

// Option configures a Linker.
type Option func(*Linker)

// WithLogger sets the logger used for per-run diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Linker) {
		l.logger = logger
	}
}

// WithIgnoreBackups makes Setup add the backup directory to .gitignore.
func WithIgnoreBackups(enabled bool) Option {
	return func(l *Linker) {
		l.ignoreBackups = enabled
	}
}

// New creates a Linker over fsys using the given tool registry.
func New(fsys platform.FS, tools *integrations.Registry, opts ...Option) *Linker {
	l := &Linker{
		fs:     fsys,
		tools:  tools,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Tools returns the registry the linker was built with.
func (l *Linker) Tools() *integrations.Registry {
	return l.tools
}

// BackupRecord describes one tool config moved into the backup directory.
type BackupRecord struct {
	OriginalPath string // relative to the project root
	BackupName   string // file name inside the backup directory
}

// Report collects the human-readable outcome of an operation.
type Report struct {
	Root         string
	Lines        []string
	Backups      []BackupRecord
	Linked       []string // relative paths of links created by this run
	GuidancePath string
}

func (r *Report) addf(format string, args ...any) {
	r.Lines = append(r.Lines, fmt.Sprintf(format, args...))
}

func (r *Report) blank() {
	r.Lines = append(r.Lines, "")
}

// String joins the report lines.
func (r *Report) String() string {
	return strings.Join(r.Lines, "\n")
}

// BackedUpFiles returns the original paths of every backup in this report.
func (r *Report) BackedUpFiles() []string {
	files := make([]string, len(r.Backups))
	for i, b := range r.Backups {
		files[i] = b.OriginalPath
	}
	return files
}

// CanonicalPath returns the AGENT.md path for a project root.
func CanonicalPath(root string) string {
	return filepath.Join(root, integrations.CanonicalFile)
}

// BackupPath returns the backup directory for a project root.
func BackupPath(root string) string {
	return filepath.Join(root, integrations.BackupDir)
}

// configPath returns the absolute config path of a tool inside root.
func configPath(root string, tool integrations.Tool) string {
	return filepath.Join(root, filepath.FromSlash(tool.File))
}

// backupName is the flat file name a tool config is stored under. Tools
// sharing a base name overwrite each other's backup.
func backupName(file string) string {
	return path.Base(filepath.ToSlash(file))
}

// run starts a logged operation and returns its scoped logger.
func (l *Linker) run(op, root string) *slog.Logger {
	logger := l.logger.With("op", op, "run_id", uuid.NewString(), "root", root)
	logger.Debug("operation started")
	return logger
}
