package platform

import (
	"fmt"
	"os"
	"runtime"
)

// Permission bits used for everything the linker creates.
const (
	DirPerm  os.FileMode = 0755
	FilePerm os.FileMode = 0644
)

// FS is the set of filesystem operations the linker and verifier depend on.
// Every call re-queries the underlying filesystem; implementations must not
// cache state between calls.
type FS interface {
	// Exists reports whether path resolves to an entry, following symlinks.
	// A dangling symlink does not exist.
	Exists(path string) bool
	// IsSymlink reports whether path itself is a symbolic link.
	IsSymlink(path string) (bool, error)
	// ReadSymlink returns the raw target of the link at path.
	ReadSymlink(path string) (string, error)
	// Symlink creates link pointing at target. target is stored verbatim.
	Symlink(target, link string) error
	// MkdirAll creates path and any missing parents.
	MkdirAll(path string) error
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	// CopyFile copies the bytes of src into dst, replacing dst.
	CopyFile(src, dst string) error
	Remove(path string) error
}

// OS implements FS on the real filesystem.
type OS struct{}

var _ FS = OS{}

func (OS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (OS) IsSymlink(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return false, err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return true, nil
	}
	return hasSidecar(path), nil
}

func (OS) ReadSymlink(path string) (string, error) {
	return ReadSymlinkTarget(path)
}

func (OS) Symlink(target, link string) error {
	return CreateSymlink(target, link)
}

func (OS) MkdirAll(path string) error {
	return os.MkdirAll(path, DirPerm)
}

func (OS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (OS) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, FilePerm)
}

// CopyFile copies src to dst and carries over the source permission bits.
func (OS) CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return err
	}
	if err := chmod(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", dst, err)
	}
	return nil
}

func (OS) Remove(path string) error {
	return RemoveSymlink(path)
}

// chmod is a no-op on Windows, which has no Unix permission bits.
func chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}
