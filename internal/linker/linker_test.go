package linker

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/cpritchett/ai-tools/internal/integrations"
	"github.com/cpritchett/ai-tools/internal/platform"
	"github.com/cpritchett/ai-tools/internal/scaffold"
)

const root = "/proj"

// newProject returns an in-memory git project at /proj.
func newProject(t *testing.T) (*platform.MemFS, *Linker) {
	t.Helper()
	fsys := platform.NewMemFS()
	if err := fsys.MkdirAll(filepath.Join(root, ".git")); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	return fsys, New(fsys, integrations.Builtin())
}

func writeFile(t *testing.T, fsys platform.FS, path, content string) {
	t.Helper()
	if err := fsys.MkdirAll(filepath.Dir(path)); err != nil {
		t.Fatalf("MkdirAll(%s): %v", path, err)
	}
	if err := fsys.WriteFile(path, []byte(content)); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}

func readFile(t *testing.T, fsys platform.FS, path string) string {
	t.Helper()
	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", path, err)
	}
	return string(data)
}

func assertLink(t *testing.T, fsys platform.FS, path, want string) {
	t.Helper()
	isLink, err := fsys.IsSymlink(path)
	if err != nil {
		t.Fatalf("IsSymlink(%s): %v", path, err)
	}
	if !isLink {
		t.Fatalf("%s is not a symlink", path)
	}
	got, err := fsys.ReadSymlink(path)
	if err != nil {
		t.Fatalf("ReadSymlink(%s): %v", path, err)
	}
	if got != want {
		t.Errorf("%s -> %q, want %q", path, got, want)
	}
}

func hasLine(lines []string, substr string) bool {
	for _, l := range lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func TestSetupRequiresGitRepository(t *testing.T) {
	fsys := platform.NewMemFS()
	if err := fsys.MkdirAll(root); err != nil {
		t.Fatal(err)
	}
	writeFile(t, fsys, filepath.Join(root, "CLAUDE.md"), "keep me")
	before := fsys.Paths()

	_, err := New(fsys, integrations.Builtin()).Setup(root, nil)
	if !errors.Is(err, ErrNotGitRepository) {
		t.Fatalf("Setup() error = %v, want ErrNotGitRepository", err)
	}
	if after := fsys.Paths(); !slices.Equal(before, after) {
		t.Errorf("filesystem changed:\nbefore %v\nafter  %v", before, after)
	}
}

func TestSetupFreshRepository(t *testing.T) {
	fsys, l := newProject(t)

	report, err := l.Setup(root, nil)
	if err != nil {
		t.Fatalf("Setup() error: %v", err)
	}

	tmpl, err := scaffold.AgentTemplate()
	if err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, fsys, filepath.Join(root, "AGENT.md")); got != string(tmpl) {
		t.Error("AGENT.md does not match the template")
	}

	assertLink(t, fsys, filepath.Join(root, "CLAUDE.md"), "AGENT.md")
	assertLink(t, fsys, filepath.Join(root, ".github", "copilot-instructions.md"), filepath.Join("..", "AGENT.md"))

	if fsys.Exists(filepath.Join(root, ".kiro")) {
		t.Error("non-default tool kiro was set up")
	}
	if len(report.Backups) != 0 {
		t.Errorf("Backups = %v, want none", report.Backups)
	}
	if report.GuidancePath != "" {
		t.Errorf("GuidancePath = %q, want empty", report.GuidancePath)
	}
	if fsys.Exists(filepath.Join(root, ".agent-md-backups", GuidanceFile)) {
		t.Error("integration prompt written without backups")
	}
	if !fsys.Exists(filepath.Join(root, ".agent-md-backups")) {
		t.Error("backup directory not created")
	}
	if want := []string{"CLAUDE.md", ".github/copilot-instructions.md"}; !slices.Equal(report.Linked, want) {
		t.Errorf("Linked = %v, want %v", report.Linked, want)
	}
}

func TestSetupBacksUpExistingConfig(t *testing.T) {
	fsys, l := newProject(t)
	writeFile(t, fsys, filepath.Join(root, "CLAUDE.md"), "Use tabs.\n")

	report, err := l.Setup(root, []string{"claude"})
	if err != nil {
		t.Fatalf("Setup() error: %v", err)
	}

	backup := filepath.Join(root, ".agent-md-backups", "CLAUDE.md")
	if got := readFile(t, fsys, backup); got != "Use tabs.\n" {
		t.Errorf("backup content = %q", got)
	}
	assertLink(t, fsys, filepath.Join(root, "CLAUDE.md"), "AGENT.md")

	want := []BackupRecord{{OriginalPath: "CLAUDE.md", BackupName: "CLAUDE.md"}}
	if !slices.Equal(report.Backups, want) {
		t.Errorf("Backups = %v, want %v", report.Backups, want)
	}

	wantGuidance := filepath.Join(root, ".agent-md-backups", GuidanceFile)
	if report.GuidancePath != wantGuidance {
		t.Errorf("GuidancePath = %q, want %q", report.GuidancePath, wantGuidance)
	}
	guidance := readFile(t, fsys, wantGuidance)
	for _, s := range []string{"### CLAUDE.md", "Use tabs.", "## Integration Guidelines"} {
		if !strings.Contains(guidance, s) {
			t.Errorf("integration prompt missing %q", s)
		}
	}
	if !hasLine(report.Lines, "Found 1 existing configuration file(s)") {
		t.Errorf("report missing backup summary:\n%s", report)
	}
}

func TestSetupIsIdempotent(t *testing.T) {
	fsys, l := newProject(t)
	writeFile(t, fsys, filepath.Join(root, "CLAUDE.md"), "rules")

	ids := []string{"claude", "copilot", "kiro"}
	if _, err := l.Setup(root, ids); err != nil {
		t.Fatalf("first Setup() error: %v", err)
	}
	before := fsys.Paths()
	backup := readFile(t, fsys, filepath.Join(root, ".agent-md-backups", "CLAUDE.md"))

	report, err := l.Setup(root, ids)
	if err != nil {
		t.Fatalf("second Setup() error: %v", err)
	}
	if len(report.Backups) != 0 || len(report.Linked) != 0 {
		t.Errorf("second run changed state: backups %v, links %v", report.Backups, report.Linked)
	}
	if after := fsys.Paths(); !slices.Equal(before, after) {
		t.Errorf("paths changed:\nbefore %v\nafter  %v", before, after)
	}
	if got := readFile(t, fsys, filepath.Join(root, ".agent-md-backups", "CLAUDE.md")); got != backup {
		t.Errorf("backup overwritten: %q", got)
	}
}

func TestSetupKeepsExistingAgentFile(t *testing.T) {
	fsys, l := newProject(t)
	writeFile(t, fsys, filepath.Join(root, "AGENT.md"), "# Mine\n")

	report, err := l.Setup(root, nil)
	if err != nil {
		t.Fatalf("Setup() error: %v", err)
	}
	if got := readFile(t, fsys, filepath.Join(root, "AGENT.md")); got != "# Mine\n" {
		t.Errorf("AGENT.md = %q, want untouched", got)
	}
	if !hasLine(report.Lines, "already exists") {
		t.Errorf("report does not mention the existing file:\n%s", report)
	}
}

func TestSetupNestedToolPath(t *testing.T) {
	fsys, l := newProject(t)
	writeFile(t, fsys, filepath.Join(root, "AGENT.md"), "shared")

	if _, err := l.Setup(root, []string{"kiro"}); err != nil {
		t.Fatalf("Setup() error: %v", err)
	}

	link := filepath.Join(root, ".kiro", "steering", "project.md")
	assertLink(t, fsys, link, filepath.Join("..", "..", "AGENT.md"))
	if got := readFile(t, fsys, link); got != "shared" {
		t.Errorf("reading through link = %q, want AGENT.md content", got)
	}
}

func TestSetupToolSelection(t *testing.T) {
	tests := []struct {
		name      string
		ids       []string
		wantLinks []string
	}{
		{
			name:      "defaults",
			ids:       nil,
			wantLinks: []string{"CLAUDE.md", ".github/copilot-instructions.md"},
		},
		{
			name:      "unknown ids are skipped",
			ids:       []string{"nope", "cursor", "also-nope"},
			wantLinks: []string{".cursorrules"},
		},
		{
			name:      "only unknown ids",
			ids:       []string{"nope"},
			wantLinks: nil,
		},
		{
			name:      "duplicates collapse",
			ids:       []string{"roo", "roo"},
			wantLinks: []string{".roorc"},
		},
		{
			name: "all",
			ids:  integrations.Builtin().IDs(),
			wantLinks: []string{
				"CLAUDE.md", ".github/copilot-instructions.md", ".kiro/steering/project.md",
				".cursorrules", ".windsurfrules", ".continuerc.json", ".roorc", ".clinerc",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, l := newProject(t)
			report, err := l.Setup(root, tt.ids)
			if err != nil {
				t.Fatalf("Setup() error: %v", err)
			}
			if !slices.Equal(report.Linked, tt.wantLinks) {
				t.Errorf("Linked = %v, want %v", report.Linked, tt.wantLinks)
			}
		})
	}
}

func TestSetupIgnoreBackups(t *testing.T) {
	fsys := platform.NewMemFS()
	if err := fsys.MkdirAll(filepath.Join(root, ".git")); err != nil {
		t.Fatal(err)
	}
	writeFile(t, fsys, filepath.Join(root, ".gitignore"), "node_modules/")
	l := New(fsys, integrations.Builtin(), WithIgnoreBackups(true))

	for range 2 {
		if _, err := l.Setup(root, nil); err != nil {
			t.Fatalf("Setup() error: %v", err)
		}
	}

	got := readFile(t, fsys, filepath.Join(root, ".gitignore"))
	if want := "node_modules/\n.agent-md-backups/\n"; got != want {
		t.Errorf(".gitignore = %q, want %q", got, want)
	}
}

func TestEnsureGitignoreRecognizesVariants(t *testing.T) {
	for _, existing := range []string{".agent-md-backups", "/.agent-md-backups/", "  .agent-md-backups/  "} {
		fsys := platform.NewMemFS()
		writeFile(t, fsys, filepath.Join(root, ".gitignore"), existing+"\n")

		added, err := ensureGitignore(fsys, root, ".agent-md-backups/")
		if err != nil {
			t.Fatalf("ensureGitignore() error: %v", err)
		}
		if added {
			t.Errorf("entry %q not recognized", existing)
		}
	}
}

func TestBackupMovesConfigs(t *testing.T) {
	fsys, l := newProject(t)
	writeFile(t, fsys, filepath.Join(root, ".cursorrules"), "cursor rules")
	writeFile(t, fsys, filepath.Join(root, ".kiro", "steering", "project.md"), "kiro rules")
	writeFile(t, fsys, filepath.Join(root, "AGENT.md"), "shared")
	if err := fsys.Symlink("AGENT.md", filepath.Join(root, "CLAUDE.md")); err != nil {
		t.Fatal(err)
	}

	report, err := l.Backup(root, nil)
	if err != nil {
		t.Fatalf("Backup() error: %v", err)
	}

	want := []BackupRecord{
		{OriginalPath: ".kiro/steering/project.md", BackupName: "project.md"},
		{OriginalPath: ".cursorrules", BackupName: ".cursorrules"},
	}
	if !slices.Equal(report.Backups, want) {
		t.Errorf("Backups = %v, want %v", report.Backups, want)
	}
	for _, b := range want {
		if fsys.Exists(filepath.Join(root, filepath.FromSlash(b.OriginalPath))) {
			t.Errorf("%s still present after backup", b.OriginalPath)
		}
	}
	if got := readFile(t, fsys, filepath.Join(root, ".agent-md-backups", "project.md")); got != "kiro rules" {
		t.Errorf("kiro backup = %q", got)
	}
	assertLink(t, fsys, filepath.Join(root, "CLAUDE.md"), "AGENT.md")
	if !hasLine(report.Lines, "Claude Code config is already a symlink") {
		t.Errorf("report missing symlink notice:\n%s", report)
	}
}

func TestBackupNothingToDo(t *testing.T) {
	_, l := newProject(t)

	report, err := l.Backup(root, []string{"claude", "unknown"})
	if err != nil {
		t.Fatalf("Backup() error: %v", err)
	}
	if len(report.Backups) != 0 {
		t.Errorf("Backups = %v, want none", report.Backups)
	}
	if !hasLine(report.Lines, "No existing configurations to back up.") {
		t.Errorf("report:\n%s", report)
	}
}

func TestLinkReportsExistingPaths(t *testing.T) {
	fsys, l := newProject(t)
	writeFile(t, fsys, filepath.Join(root, "AGENT.md"), "shared")
	writeFile(t, fsys, filepath.Join(root, ".windsurfrules"), "mine")
	if err := fsys.Symlink("AGENT.md", filepath.Join(root, "CLAUDE.md")); err != nil {
		t.Fatal(err)
	}

	report, err := l.Link(root, []string{"claude", "windsurf", "cline"})
	if err != nil {
		t.Fatalf("Link() error: %v", err)
	}

	if want := []string{".clinerc"}; !slices.Equal(report.Linked, want) {
		t.Errorf("Linked = %v, want %v", report.Linked, want)
	}
	if got := readFile(t, fsys, filepath.Join(root, ".windsurfrules")); got != "mine" {
		t.Errorf(".windsurfrules overwritten: %q", got)
	}
	if !hasLine(report.Lines, "CLAUDE.md already linked -> AGENT.md") {
		t.Errorf("report missing linked notice:\n%s", report)
	}
	if !hasLine(report.Lines, ".windsurfrules exists but is not a symlink") {
		t.Errorf("report missing conflict notice:\n%s", report)
	}
}

func TestVerify(t *testing.T) {
	t.Run("missing canonical file", func(t *testing.T) {
		fsys, l := newProject(t)
		if err := fsys.Symlink("AGENT.md", filepath.Join(root, "CLAUDE.md")); err != nil {
			t.Fatal(err)
		}

		v, err := l.Verify(root, nil)
		if err != nil {
			t.Fatalf("Verify() error: %v", err)
		}
		if v.OK() || v.CanonicalPresent {
			t.Error("verification passed without AGENT.md")
		}
		if len(v.Results) != 0 {
			t.Errorf("Results = %v, want no per-tool checks", v.Results)
		}
		if !hasLine(v.Lines, "[FAIL] AGENT.md not found") {
			t.Errorf("lines:\n%s", v)
		}
	})

	t.Run("after setup", func(t *testing.T) {
		_, l := newProject(t)
		if _, err := l.Setup(root, nil); err != nil {
			t.Fatal(err)
		}

		v, err := l.Verify(root, []string{"claude", "copilot", "ghost"})
		if err != nil {
			t.Fatalf("Verify() error: %v", err)
		}
		if !v.OK() {
			t.Errorf("verification failed:\n%s", v)
		}
		if len(v.Results) != 2 {
			t.Fatalf("Results = %d, want 2", len(v.Results))
		}
		if got := v.Results[1].Target; got != filepath.Join("..", "AGENT.md") {
			t.Errorf("copilot target = %q", got)
		}
	})

	t.Run("mixed states", func(t *testing.T) {
		fsys, l := newProject(t)
		writeFile(t, fsys, filepath.Join(root, "AGENT.md"), "shared")
		writeFile(t, fsys, filepath.Join(root, ".roorc"), "roo")
		if err := fsys.Symlink("AGENT.md", filepath.Join(root, "CLAUDE.md")); err != nil {
			t.Fatal(err)
		}
		before := fsys.Paths()

		v, err := l.Verify(root, []string{"claude", "roo", "cursor"})
		if err != nil {
			t.Fatalf("Verify() error: %v", err)
		}
		got := make([]LinkStatus, len(v.Results))
		for i, r := range v.Results {
			got[i] = r.Status
		}
		want := []LinkStatus{StatusLinked, StatusNotLinked, StatusMissing}
		if !slices.Equal(got, want) {
			t.Errorf("statuses = %v, want %v", got, want)
		}
		if v.OK() {
			t.Error("OK() = true with unlinked tools")
		}
		if after := fsys.Paths(); !slices.Equal(before, after) {
			t.Error("Verify modified the filesystem")
		}
	})
}

func TestGenerateGuidanceSkipsMissingBackups(t *testing.T) {
	fsys, l := newProject(t)
	dir := filepath.Join(root, ".agent-md-backups")
	writeFile(t, fsys, filepath.Join(dir, ".cursorrules"), "cursor says hi")

	path, err := l.GenerateGuidance(dir, []string{".cursorrules", "CLAUDE.md"})
	if err != nil {
		t.Fatalf("GenerateGuidance() error: %v", err)
	}
	if path != filepath.Join(dir, GuidanceFile) {
		t.Errorf("path = %q", path)
	}
	doc := readFile(t, fsys, path)
	if !strings.Contains(doc, "### .cursorrules\n```\ncursor says hi\n```") {
		t.Errorf("source block missing:\n%s", doc)
	}
	if strings.Contains(doc, "### CLAUDE.md") {
		t.Error("missing backup was included")
	}
}

func TestGenerateGuidanceRequiresDirectory(t *testing.T) {
	_, l := newProject(t)
	if _, err := l.GenerateGuidance("", nil); err == nil {
		t.Error("expected error for empty backup directory")
	}
}

func TestSetupOnDisk(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on Windows")
	}

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "CLAUDE.md"), []byte("claude rules"), 0o600); err != nil {
		t.Fatal(err)
	}

	l := New(platform.OS{}, integrations.Builtin())
	if _, err := l.Setup(dir, []string{"claude", "kiro"}); err != nil {
		t.Fatalf("Setup() error: %v", err)
	}

	target, err := os.Readlink(filepath.Join(dir, ".kiro", "steering", "project.md"))
	if err != nil {
		t.Fatalf("Readlink: %v", err)
	}
	if target != "../../AGENT.md" {
		t.Errorf("kiro target = %q", target)
	}

	info, err := os.Stat(filepath.Join(dir, ".agent-md-backups", "CLAUDE.md"))
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("backup mode = %v, want 0600", info.Mode().Perm())
	}

	v, err := l.Verify(dir, []string{"claude", "kiro"})
	if err != nil {
		t.Fatal(err)
	}
	if !v.OK() {
		t.Errorf("verification failed:\n%s", v)
	}
}
