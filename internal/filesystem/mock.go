package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MockFileSystem is an in-memory FileSystem for tests. Files can be replaced
// or removed between workspace refreshes to simulate edits on disk.
type MockFileSystem struct {
	mu         sync.RWMutex
	files      map[string]*MockFile
	currentDir string
}

// MockFile represents a file in the mock filesystem
type MockFile struct {
	Content []byte
	Mode    fs.FileMode
	ModTime time.Time
	IsDir   bool
}

type mockFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

type mockDirEntry struct {
	info fs.FileInfo
}

func (m *mockDirEntry) Name() string               { return m.info.Name() }
func (m *mockDirEntry) IsDir() bool                { return m.info.IsDir() }
func (m *mockDirEntry) Type() fs.FileMode          { return m.info.Mode().Type() }
func (m *mockDirEntry) Info() (fs.FileInfo, error) { return m.info, nil }

// NewMockFileSystem creates a new MockFileSystem rooted at /workspace.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:      make(map[string]*MockFile),
		currentDir: "/workspace",
	}
}

// AddFile adds (or replaces) a file and creates its parent directories.
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	cleanPath := filepath.Clean(path)
	mfs.files[cleanPath] = &MockFile{
		Content: content,
		Mode:    0644,
		ModTime: time.Now(),
	}
	mfs.addParents(cleanPath)
}

// AddDir adds a directory and its parents.
func (mfs *MockFileSystem) AddDir(path string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	cleanPath := filepath.Clean(path)
	mfs.addDirLocked(cleanPath)
	mfs.addParents(cleanPath)
}

func (mfs *MockFileSystem) addDirLocked(cleanPath string) {
	if _, exists := mfs.files[cleanPath]; !exists {
		mfs.files[cleanPath] = &MockFile{
			Mode:    0755 | fs.ModeDir,
			ModTime: time.Now(),
			IsDir:   true,
		}
	}
}

func (mfs *MockFileSystem) addParents(cleanPath string) {
	dir := filepath.Dir(cleanPath)
	for dir != "." && dir != cleanPath {
		mfs.addDirLocked(dir)
		if dir == "/" {
			break
		}
		dir = filepath.Dir(dir)
	}
}

func (mfs *MockFileSystem) infoFor(p string, file *MockFile) *mockFileInfo {
	return &mockFileInfo{
		name:    filepath.Base(p),
		size:    int64(len(file.Content)),
		mode:    file.Mode,
		modTime: file.ModTime,
		isDir:   file.IsDir,
	}
}

func (mfs *MockFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	cleanPath := filepath.Clean(path)
	parent := filepath.Dir(cleanPath)
	if dir, ok := mfs.files[parent]; !ok || !dir.IsDir {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}

	content := make([]byte, len(data))
	copy(content, data)
	mfs.files[cleanPath] = &MockFile{
		Content: content,
		Mode:    perm,
		ModTime: time.Now(),
	}
	return nil
}

func (mfs *MockFileSystem) Remove(path string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	cleanPath := filepath.Clean(path)
	if _, ok := mfs.files[cleanPath]; !ok {
		return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrNotExist}
	}
	delete(mfs.files, cleanPath)
	return nil
}

func (mfs *MockFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	cleanPath := filepath.Clean(path)
	if file, ok := mfs.files[cleanPath]; ok && !file.IsDir {
		return &fs.PathError{Op: "mkdir", Path: path, Err: errors.New("not a directory")}
	}
	mfs.addDirLocked(cleanPath)
	mfs.addParents(cleanPath)
	return nil
}

func (mfs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	file, exists := mfs.files[filepath.Clean(path)]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if file.IsDir {
		return nil, errors.New("is a directory")
	}
	return file.Content, nil
}

func (mfs *MockFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	cleanPath := filepath.Clean(path)

	file, exists := mfs.files[cleanPath]
	if !exists {
		return nil, &fs.PathError{Op: "readdir", Path: path, Err: fs.ErrNotExist}
	}
	if !file.IsDir {
		return nil, errors.New("not a directory")
	}

	var entries []fs.DirEntry
	for p, f := range mfs.files {
		if p != cleanPath && filepath.Dir(p) == cleanPath {
			entries = append(entries, &mockDirEntry{info: mfs.infoFor(p, f)})
		}
	}

	// Sort entries by name for consistent ordering
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	return entries, nil
}

func (mfs *MockFileSystem) Stat(path string) (fs.FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	file, exists := mfs.files[filepath.Clean(path)]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}

	return mfs.infoFor(path, file), nil
}

func (mfs *MockFileSystem) Exists(path string) bool {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	_, exists := mfs.files[filepath.Clean(path)]
	return exists
}

func (mfs *MockFileSystem) Getwd() (string, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	return mfs.currentDir, nil
}

// WalkDir visits paths in lexical order. Returning filepath.SkipDir for a
// directory skips everything below it.
func (mfs *MockFileSystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	cleanRoot := filepath.Clean(root)

	mfs.mu.RLock()
	if _, exists := mfs.files[cleanRoot]; !exists {
		mfs.mu.RUnlock()
		return &fs.PathError{Op: "walk", Path: root, Err: fs.ErrNotExist}
	}

	type visit struct {
		path string
		info *mockFileInfo
	}
	var visits []visit
	for p, f := range mfs.files {
		if p == cleanRoot || strings.HasPrefix(p, cleanRoot+string(filepath.Separator)) {
			visits = append(visits, visit{path: p, info: mfs.infoFor(p, f)})
		}
	}
	mfs.mu.RUnlock()

	sort.Slice(visits, func(i, j int) bool {
		return visits[i].path < visits[j].path
	})

	var skipped []string
	for _, v := range visits {
		isSkipped := false
		for _, s := range skipped {
			if strings.HasPrefix(v.path, s+string(filepath.Separator)) {
				isSkipped = true
				break
			}
		}
		if isSkipped {
			continue
		}

		if err := fn(v.path, &mockDirEntry{info: v.info}, nil); err != nil {
			if errors.Is(err, filepath.SkipDir) {
				if v.info.isDir {
					skipped = append(skipped, v.path)
				}
				continue
			}
			return err
		}
	}

	return nil
}

func (mfs *MockFileSystem) Glob(pattern string) ([]string, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	var matches []string
	for p := range mfs.files {
		matched, err := filepath.Match(pattern, p)
		if err != nil {
			return nil, err
		}
		if matched {
			matches = append(matches, p)
		}
	}

	sort.Strings(matches)
	return matches, nil
}

// SetCurrentDir sets the current working directory for the mock
func (mfs *MockFileSystem) SetCurrentDir(dir string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.currentDir = dir
}
