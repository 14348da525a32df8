package linker

import (
	"fmt"
	"path/filepath"

	"github.com/cpritchett/ai-tools/internal/integrations"
	"github.com/cpritchett/ai-tools/internal/scaffold"
)

// Setup reconciles root against the selected tools: it ensures AGENT.md
// exists, moves real tool configs into the backup directory, links every
// selected tool path to AGENT.md, and writes an integration prompt when
// anything was backed up. An empty ids selects the default tools; unknown IDs
// are skipped. Changes applied before a failure are left in place.
func (l *Linker) Setup(root string, ids []string) (*Report, error) {
	root = filepath.Clean(root)
	log := l.run("setup", root)

	if !l.fs.Exists(filepath.Join(root, integrations.GitDir)) {
		return nil, fmt.Errorf("%s: %w", root, ErrNotGitRepository)
	}

	ids = l.tools.Select(ids, false)
	r := &Report{Root: root}
	r.addf("Setting up %s in %s", integrations.CanonicalFile, root)
	r.addf("[ OK ] Git repository detected")

	backupDir := BackupPath(root)
	if err := l.fs.MkdirAll(backupDir); err != nil {
		return nil, fmt.Errorf("creating backup directory %s: %w", backupDir, err)
	}

	if err := l.ensureCanonical(root, r); err != nil {
		return nil, err
	}
	if err := l.backupTools(root, ids, r); err != nil {
		return nil, err
	}
	if err := l.linkTools(root, ids, r); err != nil {
		return nil, err
	}

	if len(r.Backups) > 0 {
		guidance, err := l.GenerateGuidance(backupDir, r.BackedUpFiles())
		if err != nil {
			return nil, err
		}
		r.GuidancePath = guidance
	}

	if l.ignoreBackups {
		added, err := ensureGitignore(l.fs, root, integrations.BackupDir+"/")
		if err != nil {
			return nil, err
		}
		if added {
			r.addf("[ OK ] Added %s/ to .gitignore", integrations.BackupDir)
		}
	}

	r.blank()
	if len(r.Backups) > 0 {
		r.addf("Found %d existing configuration file(s) to integrate.", len(r.Backups))
		r.addf("Integration prompt created at %s", r.GuidancePath)
		r.blank()
		r.addf("Next steps:")
		r.addf("  1. Review the integration prompt")
		r.addf("  2. Use an LLM to merge the backed-up configurations")
		r.addf("  3. Update %s with the integrated content", integrations.CanonicalFile)
	} else {
		r.addf("No existing configurations found.")
		r.addf("Next: edit %s to describe your project.", integrations.CanonicalFile)
	}
	r.blank()
	r.addf("%s setup complete. All enabled AI tools now read the same instructions.", integrations.CanonicalFile)

	log.Debug("operation finished", "backups", len(r.Backups), "links", len(r.Linked))
	return r, nil
}

// ensureCanonical writes the AGENT.md template unless the file exists.
func (l *Linker) ensureCanonical(root string, r *Report) error {
	canonical := CanonicalPath(root)
	if l.fs.Exists(canonical) {
		r.addf("[INFO] %s already exists, keeping it", integrations.CanonicalFile)
		return nil
	}

	tmpl, err := scaffold.AgentTemplate()
	if err != nil {
		return err
	}
	if err := l.fs.WriteFile(canonical, tmpl); err != nil {
		return fmt.Errorf("writing %s: %w", canonical, err)
	}
	r.addf("[ OK ] Created %s template", integrations.CanonicalFile)
	return nil
}
