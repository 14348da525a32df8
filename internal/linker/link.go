package linker

import (
	"fmt"
	"path/filepath"

	"github.com/cpritchett/ai-tools/internal/integrations"
)

// Link creates a relative symlink to AGENT.md at each tool path that does not
// exist yet. Existing paths are reported and left untouched. An empty ids
// selects every registered tool.
func (l *Linker) Link(root string, ids []string) (*Report, error) {
	root = filepath.Clean(root)
	log := l.run("link", root)

	r := &Report{Root: root}
	r.addf("Creating links to %s in %s", integrations.CanonicalFile, root)
	if err := l.linkTools(root, l.tools.OrAll(ids), r); err != nil {
		return nil, err
	}
	if len(r.Linked) == 0 {
		r.addf("No new links created.")
	}

	log.Debug("operation finished", "links", len(r.Linked))
	return r, nil
}

func (l *Linker) linkTools(root string, ids []string, r *Report) error {
	canonical := CanonicalPath(root)

	for _, id := range ids {
		tool, ok := l.tools.Lookup(id)
		if !ok {
			continue
		}
		link := configPath(root, tool)
		dir := filepath.Dir(link)

		if dir != root {
			if err := l.fs.MkdirAll(dir); err != nil {
				return fmt.Errorf("creating %s: %w", dir, err)
			}
		}

		if l.fs.Exists(link) {
			if err := l.describeExisting(tool, link, r); err != nil {
				return err
			}
			continue
		}

		target, err := filepath.Rel(dir, canonical)
		if err != nil {
			return fmt.Errorf("resolving link target for %s: %w", link, err)
		}
		if err := l.fs.Symlink(target, link); err != nil {
			return fmt.Errorf("linking %s: %w", link, err)
		}

		r.Linked = append(r.Linked, tool.File)
		r.addf("[LINK] %s -> %s", tool.Name, integrations.CanonicalFile)
		l.logger.Debug("created link", "tool", tool.ID, "link", link, "target", target)
	}
	return nil
}

func (l *Linker) describeExisting(tool integrations.Tool, path string, r *Report) error {
	isLink, err := l.fs.IsSymlink(path)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", path, err)
	}
	if !isLink {
		r.addf("[WARN] %s exists but is not a symlink", tool.File)
		return nil
	}
	target, err := l.fs.ReadSymlink(path)
	if err != nil {
		return fmt.Errorf("reading link %s: %w", path, err)
	}
	r.addf("[INFO] %s already linked -> %s", tool.File, target)
	return nil
}
