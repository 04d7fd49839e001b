package source

import (
	"path/filepath"
)

// PathMode values accepted by File.FormatPath.
const (
	PathAbsolute = "absolute"
	PathRelative = "relative"
	PathBasename = "basename"
	PathAuto     = "auto"
)

// FormatPath renders the file path for display.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case PathAbsolute:
		if abs, err := filepath.Abs(filepath.FromSlash(f.Path)); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path

	case PathRelative:
		if baseDir == "" {
			return f.Path
		}
		if rel, err := filepath.Rel(filepath.FromSlash(baseDir), filepath.FromSlash(f.Path)); err == nil {
			return filepath.ToSlash(rel)
		}
		return f.Path

	case PathBasename:
		return filepath.Base(f.Path)

	case PathAuto:
		// короткий или относительный путь: как есть, иначе basename
		if len(f.Path) < 40 || !filepath.IsAbs(filepath.FromSlash(f.Path)) {
			return f.Path
		}
		return filepath.Base(f.Path)
	}
	return f.Path
}
