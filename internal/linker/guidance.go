package linker

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/cpritchett/ai-tools/internal/scaffold"
)

// GenerateGuidance writes the integration prompt for files into backupDir and
// returns its path. files are original tool paths; their copies are looked up
// in backupDir by base name and skipped when absent.
func (l *Linker) GenerateGuidance(backupDir string, files []string) (string, error) {
	if backupDir == "" {
		return "", errors.New("backup directory is required")
	}
	backupDir = filepath.Clean(backupDir)

	sources := make([]scaffold.Source, 0, len(files))
	for _, file := range files {
		backup := filepath.Join(backupDir, backupName(file))
		if !l.fs.Exists(backup) {
			l.logger.Debug("skipping missing backup", "file", file)
			continue
		}
		content, err := l.fs.ReadFile(backup)
		if err != nil {
			return "", fmt.Errorf("reading backup %s: %w", backup, err)
		}
		sources = append(sources, scaffold.Source{Path: file, Content: string(content)})
	}

	doc, err := scaffold.RenderGuidance(sources)
	if err != nil {
		return "", err
	}

	out := filepath.Join(backupDir, GuidanceFile)
	if err := l.fs.WriteFile(out, doc); err != nil {
		return "", fmt.Errorf("writing %s: %w", out, err)
	}
	return out, nil
}
