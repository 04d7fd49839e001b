package source

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
	"sync"

	"fortio.org/safecast"
)

// FileSet manages a collection of source files.
// It is safe for concurrent Add/Load from batch drivers.
type FileSet struct {
	mu    sync.RWMutex
	files []*File
	index map[string]FileID // path -> id

	baseDir string // базовая директория для относительных путей
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]*File, 0),
		index: make(map[string]FileID),
	}
}

// NewFileSetWithBase creates a FileSet whose relative paths are computed from baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

// SetBaseDir устанавливает базовую директорию для относительных путей.
func (fileSet *FileSet) SetBaseDir(dir string) {
	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()
	fileSet.baseDir = dir
}

// BaseDir returns the base directory, defaulting to the working directory.
func (fileSet *FileSet) BaseDir() string {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	if fileSet.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fileSet.baseDir
}

// Add stores a file and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	hash := sha256.Sum256(content)
	normalizedPath := normalizePath(path)
	if bytes.HasPrefix(content, utf8BOM) {
		flags |= FileHadBOM
	}

	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, &File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		Hash:    hash,
		Flags:   flags,
	})
	// индекс всегда указывает на последнюю версию файла
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a file from disk and calls Add. Content is kept byte-for-byte:
// spans must be able to reproduce the input exactly.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fileSet.Add(path, content, 0), nil
}

// AddVirtual adds a virtual file (stdin, test, or generated) with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file metadata for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return fileSet.files[id]
}

// Len returns the number of files ever added.
func (fileSet *FileSet) Len() int {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return len(fileSet.files)
}

// GetLatest returns the latest file ID for the given path, if it exists.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// GetByPath returns the latest *File registered under path.
func (fileSet *FileSet) GetByPath(path string) (*File, bool) {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	if id, ok := fileSet.index[normalizePath(path)]; ok {
		return fileSet.files[id], true
	}
	return nil, false
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.Get(span.File)
	return f.LineCol(span.Start), f.LineCol(span.End)
}

// Text returns the exact source bytes covered by span.
func (fileSet *FileSet) Text(span Span) string {
	return fileSet.Get(span.File).Slice(span)
}

// LineIdx returns the offsets of every '\n' in the file, building the table on first use.
func (f *File) LineIdx() []uint32 {
	f.lineOnce.Do(func() {
		f.lineIdx = buildLineIndex(f.Content)
	})
	return f.lineIdx
}

// LineCol resolves a byte offset to a 1-based line and column.
func (f *File) LineCol(off uint32) LineCol {
	return toLineCol(f.LineIdx(), off)
}

// Len returns the content length as a span offset.
func (f *File) Len() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	return n
}

// Span returns the span covering the whole file.
func (f *File) Span() Span {
	return Span{File: f.ID, Start: 0, End: f.Len()}
}

// Slice returns the source text under span, clamped to the content.
func (f *File) Slice(span Span) string {
	n := f.Len()
	start, end := min(span.Start, n), min(span.End, n)
	if start >= end {
		return ""
	}
	return string(f.Content[start:end])
}

// GetLine returns line lineNum (1-based) without its terminator.
// A missing line yields the empty string.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	idx := f.LineIdx()
	lenLineIdx, err := safecast.Conv[uint32](len(idx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	lenContent := f.Len()

	var start, end uint32
	switch {
	case lineNum == 1:
		start = 0
	case lineNum-2 < lenLineIdx:
		start = idx[lineNum-2] + 1
	default:
		return ""
	}
	if lineNum-1 < lenLineIdx {
		end = idx[lineNum-1]
	} else {
		end = lenContent
	}
	if start > lenContent || start > end {
		return ""
	}
	line := f.Content[start:end]
	line = bytes.TrimSuffix(line, []byte{'\r'})
	return string(line)
}
