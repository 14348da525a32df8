package linker

import (
	"fmt"
	"path/filepath"

	"github.com/cpritchett/ai-tools/internal/integrations"
)

// Backup moves the real config files of the given tools into the backup
// directory. Tools whose path is already a symlink are left alone. An empty
// ids selects every registered tool.
func (l *Linker) Backup(root string, ids []string) (*Report, error) {
	root = filepath.Clean(root)
	log := l.run("backup", root)

	r := &Report{Root: root}
	r.addf("Backing up existing configurations in %s", root)

	backupDir := BackupPath(root)
	if err := l.fs.MkdirAll(backupDir); err != nil {
		return nil, fmt.Errorf("creating backup directory %s: %w", backupDir, err)
	}
	if err := l.backupTools(root, l.tools.OrAll(ids), r); err != nil {
		return nil, err
	}

	if len(r.Backups) == 0 {
		r.addf("No existing configurations to back up.")
	} else {
		r.addf("Backed up %d file(s) to %s", len(r.Backups), integrations.BackupDir)
	}

	log.Debug("operation finished", "backups", len(r.Backups))
	return r, nil
}

// backupTools copies each real tool config into the backup directory and then
// removes the original so the tool path is free for a link.
func (l *Linker) backupTools(root string, ids []string, r *Report) error {
	backupDir := BackupPath(root)

	for _, id := range ids {
		tool, ok := l.tools.Lookup(id)
		if !ok {
			continue
		}
		src := configPath(root, tool)
		if !l.fs.Exists(src) {
			continue
		}

		isLink, err := l.fs.IsSymlink(src)
		if err != nil {
			return fmt.Errorf("inspecting %s: %w", src, err)
		}
		if isLink {
			r.addf("[INFO] %s config is already a symlink", tool.Name)
			continue
		}

		name := backupName(tool.File)
		dst := filepath.Join(backupDir, name)
		if err := l.fs.CopyFile(src, dst); err != nil {
			return fmt.Errorf("backing up %s: %w", src, err)
		}
		if err := l.fs.Remove(src); err != nil {
			return fmt.Errorf("removing %s after backup: %w", src, err)
		}

		r.Backups = append(r.Backups, BackupRecord{OriginalPath: tool.File, BackupName: name})
		r.addf("[BACK] Backed up %s config (%s)", tool.Name, tool.File)
		l.logger.Info("backed up tool config", "tool", tool.ID, "from", src, "to", dst)
	}
	return nil
}
