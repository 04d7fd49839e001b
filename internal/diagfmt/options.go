package diagfmt

import "phpfront/internal/source"

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

func (m PathMode) String() string {
	switch m {
	case PathModeAbsolute:
		return source.PathAbsolute
	case PathModeRelative:
		return source.PathRelative
	case PathModeBasename:
		return source.PathBasename
	}
	return source.PathAuto
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color       bool
	Context     int8 // строк контекста до и после
	PathMode    PathMode
	Width       uint8 // максимальная ширина строки, 0 - не ограничено
	ShowNotes   bool
	ShowFixes   bool
	ShowPreview bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
	IncludeFixes     bool
	IncludePreviews  bool
}

func formatPath(fs *source.FileSet, f *source.File, mode PathMode) string {
	if f == nil {
		return "<unknown>"
	}
	baseDir := ""
	if mode == PathModeRelative {
		baseDir = fs.BaseDir()
	}
	return f.FormatPath(mode.String(), baseDir)
}

// fileOf tolerates spans that point outside the FileSet.
func fileOf(fs *source.FileSet, sp source.Span) *source.File {
	if fs == nil || int(sp.File) >= fs.Len() {
		return nil
	}
	return fs.Get(sp.File)
}
