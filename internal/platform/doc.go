// Package platform is the filesystem adapter. It exposes the handful of named
// operations the linker needs (existence checks, copy, delete, symlink
// creation and reading, directory creation, file read and write) behind the FS
// interface, with an OS implementation for real disks and MemFS for tests.
// On Windows, symlinks fall back to a file copy with a .target sidecar when
// developer mode symlinks are unavailable.
package platform
