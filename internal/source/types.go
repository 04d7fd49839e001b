package source

import "sync"

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM marks content that starts with a UTF-8 byte order mark.
	// The BOM is kept in Content: PHP emits it as inline HTML.
	FileHadBOM
)

// File captures metadata and content for a single source file.
// Content is never modified after the file is added, so spans slice it directly.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Hash    [32]byte
	Flags   FileFlags

	lineOnce sync.Once
	lineIdx  []uint32 // позиции '\n', строится лениво
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}
