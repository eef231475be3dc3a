package filesystem

import (
	"io/fs"
)

// FileSystem is the view of the disk cargo-ws works through. Manifests,
// auxiliary config files and conventional source layouts are read through it,
// and the persisted selection is written through it, so tests can run against
// an in-memory tree.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	Remove(path string) error

	ReadDir(path string) ([]fs.DirEntry, error)
	MkdirAll(path string, perm fs.FileMode) error

	Stat(path string) (fs.FileInfo, error)
	Exists(path string) bool
	Getwd() (string, error)

	WalkDir(root string, fn fs.WalkDirFunc) error

	Glob(pattern string) ([]string, error)
}
