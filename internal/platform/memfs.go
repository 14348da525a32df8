package platform

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// maxLinkHops bounds symlink resolution so cycles terminate.
const maxLinkHops = 40

var (
	errNotDir   = errors.New("not a directory")
	errIsDir    = errors.New("is a directory")
	errNotEmpty = errors.New("directory not empty")
	errNotLink  = errors.New("not a symbolic link")
	errTooDeep  = errors.New("too many levels of symbolic links")
)

type nodeKind int

const (
	kindDir nodeKind = iota
	kindFile
	kindLink
)

type memNode struct {
	kind   nodeKind
	data   []byte
	target string
}

// MemFS is an in-memory FS. Symlinks are resolved against the directory that
// contains them, as on disk; links in intermediate path components are not
// followed. It is safe for concurrent use.
type MemFS struct {
	mu    sync.RWMutex
	nodes map[string]*memNode
}

var _ FS = (*MemFS)(nil)

// NewMemFS returns an empty filesystem containing only the root directory.
func NewMemFS() *MemFS {
	root := filepath.Clean(string(filepath.Separator))
	return &MemFS{nodes: map[string]*memNode{root: {kind: kindDir}}}
}

// Paths returns every entry in the filesystem, sorted.
func (m *MemFS) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	paths := make([]string, 0, len(m.nodes))
	for p := range m.nodes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (m *MemFS) Exists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, n, err := m.resolve(filepath.Clean(path))
	return err == nil && n != nil
}

func (m *MemFS) IsSymlink(path string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n, ok := m.nodes[filepath.Clean(path)]
	if !ok {
		return false, pathErr("lstat", path, fs.ErrNotExist)
	}
	return n.kind == kindLink, nil
}

func (m *MemFS) ReadSymlink(path string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n, ok := m.nodes[filepath.Clean(path)]
	if !ok {
		return "", pathErr("readlink", path, fs.ErrNotExist)
	}
	if n.kind != kindLink {
		return "", pathErr("readlink", path, errNotLink)
	}
	return n.target, nil
}

func (m *MemFS) Symlink(target, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	link = filepath.Clean(link)
	if _, ok := m.nodes[link]; ok {
		return pathErr("symlink", link, fs.ErrExist)
	}
	if err := m.requireParent("symlink", link); err != nil {
		return err
	}
	m.nodes[link] = &memNode{kind: kindLink, target: target}
	return nil
}

func (m *MemFS) MkdirAll(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	var missing []string
	for p := path; ; p = filepath.Dir(p) {
		n, ok := m.nodes[p]
		if ok {
			if n.kind != kindDir {
				return pathErr("mkdir", p, errNotDir)
			}
			break
		}
		missing = append(missing, p)
		if filepath.Dir(p) == p {
			break
		}
	}
	for _, p := range missing {
		m.nodes[p] = &memNode{kind: kindDir}
	}
	return nil
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, n, err := m.resolve(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, pathErr("open", path, fs.ErrNotExist)
	}
	if n.kind == kindDir {
		return nil, pathErr("read", path, errIsDir)
	}
	return append([]byte(nil), n.data...), nil
}

func (m *MemFS) WriteFile(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.write(filepath.Clean(path), data)
}

func (m *MemFS) CopyFile(src, dst string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, n, err := m.resolve(filepath.Clean(src))
	if err != nil {
		return err
	}
	if n == nil {
		return pathErr("open", src, fs.ErrNotExist)
	}
	if n.kind == kindDir {
		return pathErr("read", src, errIsDir)
	}
	return m.write(filepath.Clean(dst), n.data)
}

func (m *MemFS) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	n, ok := m.nodes[path]
	if !ok {
		return pathErr("remove", path, fs.ErrNotExist)
	}
	if n.kind == kindDir {
		prefix := path + string(filepath.Separator)
		for p := range m.nodes {
			if strings.HasPrefix(p, prefix) {
				return pathErr("remove", path, errNotEmpty)
			}
		}
	}
	delete(m.nodes, path)
	return nil
}

// write stores data at path, writing through symlinks. Caller holds m.mu.
func (m *MemFS) write(path string, data []byte) error {
	final, n, err := m.resolve(path)
	if err != nil {
		return err
	}
	if n != nil && n.kind == kindDir {
		return pathErr("open", path, errIsDir)
	}
	if err := m.requireParent("open", final); err != nil {
		return err
	}
	m.nodes[final] = &memNode{kind: kindFile, data: append([]byte(nil), data...)}
	return nil
}

// resolve follows symlinks from path. It returns the final path and its node,
// or a nil node when the final path does not exist. Caller holds m.mu.
func (m *MemFS) resolve(path string) (string, *memNode, error) {
	for hops := 0; hops < maxLinkHops; hops++ {
		n, ok := m.nodes[path]
		if !ok {
			return path, nil, nil
		}
		if n.kind != kindLink {
			return path, n, nil
		}
		target := n.target
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		path = filepath.Clean(target)
	}
	return "", nil, pathErr("stat", path, errTooDeep)
}

// requireParent checks that the parent of path is an existing directory.
// Caller holds m.mu.
func (m *MemFS) requireParent(op, path string) error {
	parent, ok := m.nodes[filepath.Dir(path)]
	if !ok {
		return pathErr(op, path, fs.ErrNotExist)
	}
	if parent.kind != kindDir {
		return pathErr(op, path, errNotDir)
	}
	return nil
}

func pathErr(op, path string, err error) error {
	return &fs.PathError{Op: op, Path: path, Err: err}
}
