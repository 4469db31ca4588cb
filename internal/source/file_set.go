package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
	"github.com/spf13/afero"
)

// StdinName is the path that selects standard input.
const StdinName = "-"

// FileSet loads files through an afero filesystem and keeps them by ID.
// It is safe for concurrent use.
type FileSet struct {
	fs    afero.Fs
	stdin io.Reader

	mu    sync.RWMutex
	files []*File
	index map[string]FileID // path -> id
}

// NewFileSet creates a FileSet over fs. A nil fs means the OS filesystem.
func NewFileSet(fs afero.Fs) *FileSet {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileSet{
		fs:    fs,
		stdin: os.Stdin,
		index: make(map[string]FileID),
	}
}

// SetStdin заменяет источник для пути "-".
func (fileSet *FileSet) SetStdin(r io.Reader) {
	fileSet.stdin = r
}

// Fs returns the underlying filesystem.
func (fileSet *FileSet) Fs() afero.Fs {
	return fileSet.fs
}

// Add decodes content and stores it under path.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) *File {
	f := Decode(path, content)
	f.Flags |= flags

	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()
	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	f.ID = FileID(n)
	fileSet.files = append(fileSet.files, f)
	fileSet.index[normalizePath(path)] = f.ID
	return f
}

// Load reads path (or stdin for "-") and calls Add.
func (fileSet *FileSet) Load(path string) (*File, error) {
	if path == StdinName {
		content, err := io.ReadAll(fileSet.stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return fileSet.Add(path, content, FileVirtual), nil
	}
	content, err := afero.ReadFile(fileSet.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return fileSet.Add(path, content, 0), nil
}

// AddVirtual adds in-memory content with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) *File {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file for id.
func (fileSet *FileSet) Get(id FileID) *File {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return fileSet.files[id]
}

// GetByPath returns the latest file loaded under path.
func (fileSet *FileSet) GetByPath(path string) (*File, bool) {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	if id, ok := fileSet.index[normalizePath(path)]; ok {
		return fileSet.files[id], true
	}
	return nil, false
}

// Len returns the number of loaded files.
func (fileSet *FileSet) Len() int {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return len(fileSet.files)
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}
