package linker

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cpritchett/ai-tools/internal/platform"
)

// ensureGitignore appends line to root/.gitignore unless an equivalent entry
// is present. It reports whether the file changed.
func ensureGitignore(fsys platform.FS, root, line string) (bool, error) {
	path := filepath.Join(root, ".gitignore")

	var content []byte
	if fsys.Exists(path) {
		data, err := fsys.ReadFile(path)
		if err != nil {
			return false, fmt.Errorf("reading .gitignore: %w", err)
		}
		content = data
	}

	want := strings.TrimSuffix(line, "/")
	for _, l := range strings.Split(string(content), "\n") {
		l = strings.TrimSpace(l)
		if l == line || l == want || l == "/"+want || l == "/"+line {
			return false, nil
		}
	}

	// Keep the existing last line intact.
	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		content = append(content, '\n')
	}
	content = append(content, line+"\n"...)

	if err := fsys.WriteFile(path, content); err != nil {
		return false, fmt.Errorf("writing .gitignore: %w", err)
	}
	return true, nil
}
