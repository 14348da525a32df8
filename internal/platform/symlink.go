package platform

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// sidecarSuffix names the file recording a fallback link's target on Windows.
const sidecarSuffix = ".target"

// CreateSymlink creates a symbolic link at link pointing to target.
// On Unix systems, this uses os.Symlink directly.
// On Windows, it attempts os.Symlink first (requires developer mode),
// then falls back to copying the file and writing a .target sidecar.
func CreateSymlink(target, link string) error {
	if runtime.GOOS != "windows" {
		return os.Symlink(target, link)
	}

	if err := os.Symlink(target, link); err == nil {
		return nil
	}

	if err := copyLinkTarget(target, link); err != nil {
		return fmt.Errorf("symlink fallback (copy) failed: %w", err)
	}

	// The copy succeeded; a missing sidecar only costs us ReadSymlinkTarget.
	_ = os.WriteFile(link+sidecarSuffix, []byte(target), 0644)
	return nil
}

// RemoveSymlink removes a path along with any fallback sidecar.
func RemoveSymlink(path string) error {
	err := os.Remove(path)
	if runtime.GOOS == "windows" {
		os.Remove(path + sidecarSuffix) // best-effort
	}
	return err
}

// ReadSymlinkTarget returns the target of a symlink exactly as it was written.
// On Windows, if os.Readlink fails because a copy fallback was used, the
// target is read from the .target sidecar file.
func ReadSymlinkTarget(path string) (string, error) {
	target, err := os.Readlink(path)
	if err == nil {
		return target, nil
	}

	if runtime.GOOS != "windows" {
		return "", err
	}

	data, readErr := os.ReadFile(path + sidecarSuffix)
	if readErr != nil {
		return "", fmt.Errorf("readlink failed and no .target sidecar found: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// hasSidecar reports whether path is a Windows copy fallback for a link.
func hasSidecar(path string) bool {
	if runtime.GOOS != "windows" {
		return false
	}
	_, err := os.Stat(path + sidecarSuffix)
	return err == nil
}

// copyLinkTarget copies src to dst. A relative src is resolved against the
// directory containing dst, the same way the OS would resolve the link.
func copyLinkTarget(src, dst string) error {
	if !filepath.IsAbs(src) {
		src = filepath.Join(filepath.Dir(dst), src)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
