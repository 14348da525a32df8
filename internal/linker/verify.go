package linker

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cpritchett/ai-tools/internal/integrations"
)

// LinkStatus is the state of one tool path.
type LinkStatus string

const (
	StatusLinked    LinkStatus = "linked"
	StatusMissing   LinkStatus = "missing"
	StatusNotLinked LinkStatus = "not-linked"
)

// ToolStatus is the verification result for one tool.
type ToolStatus struct {
	Tool   integrations.Tool
	Status LinkStatus
	Target string // raw link target when Status is StatusLinked
}

// Verification is the outcome of Verify.
type Verification struct {
	Root             string
	CanonicalPresent bool
	Results          []ToolStatus
	Lines            []string
}

// OK reports whether AGENT.md exists and every checked tool links to it.
func (v *Verification) OK() bool {
	if !v.CanonicalPresent {
		return false
	}
	for _, res := range v.Results {
		if res.Status != StatusLinked {
			return false
		}
	}
	return true
}

func (v *Verification) String() string {
	return strings.Join(v.Lines, "\n")
}

// Verify reports the link state of each tool without modifying anything.
// When AGENT.md is missing no tool is checked. An empty ids selects every
// registered tool.
func (l *Linker) Verify(root string, ids []string) (*Verification, error) {
	root = filepath.Clean(root)
	log := l.run("verify", root)

	v := &Verification{Root: root}
	v.Lines = append(v.Lines, fmt.Sprintf("Verifying %s setup in %s", integrations.CanonicalFile, root))

	if !l.fs.Exists(CanonicalPath(root)) {
		v.Lines = append(v.Lines, fmt.Sprintf("[FAIL] %s not found", integrations.CanonicalFile))
		log.Debug("operation finished", "canonical", false)
		return v, nil
	}
	v.CanonicalPresent = true
	v.Lines = append(v.Lines, fmt.Sprintf("[ OK ] %s exists", integrations.CanonicalFile))

	for _, id := range l.tools.OrAll(ids) {
		tool, ok := l.tools.Lookup(id)
		if !ok {
			continue
		}
		res, err := l.check(root, tool)
		if err != nil {
			return nil, err
		}
		v.Results = append(v.Results, res)

		switch res.Status {
		case StatusLinked:
			v.Lines = append(v.Lines, fmt.Sprintf("[ OK ] %s -> %s", tool.Name, res.Target))
		case StatusNotLinked:
			v.Lines = append(v.Lines, fmt.Sprintf("[WARN] %s exists but is not a symlink", tool.Name))
		default:
			v.Lines = append(v.Lines, fmt.Sprintf("[MISS] %s not found", tool.Name))
		}
	}

	log.Debug("operation finished", "canonical", true, "ok", v.OK())
	return v, nil
}

func (l *Linker) check(root string, tool integrations.Tool) (ToolStatus, error) {
	res := ToolStatus{Tool: tool, Status: StatusMissing}
	path := configPath(root, tool)
	if !l.fs.Exists(path) {
		return res, nil
	}

	isLink, err := l.fs.IsSymlink(path)
	if err != nil {
		return res, fmt.Errorf("inspecting %s: %w", path, err)
	}
	if !isLink {
		res.Status = StatusNotLinked
		return res, nil
	}

	target, err := l.fs.ReadSymlink(path)
	if err != nil {
		return res, fmt.Errorf("reading link %s: %w", path, err)
	}
	res.Status = StatusLinked
	res.Target = target
	return res, nil
}
