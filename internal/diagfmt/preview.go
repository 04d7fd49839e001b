package diagfmt

import (
	"fmt"
	"strings"

	"phpfront/internal/diag"
	"phpfront/internal/source"
)

type fixEditPreview struct {
	before []string
	after  []string
}

// buildFixEditPreview returns the full lines touched by edit, before and
// after applying it.
func buildFixEditPreview(fs *source.FileSet, edit diag.FixEdit) (fixEditPreview, error) {
	file := fileOf(fs, edit.Span)
	if file == nil {
		return fixEditPreview{}, fmt.Errorf("file %d not found in FileSet", edit.Span.File)
	}

	startPos, endPos := fs.Resolve(edit.Span)
	endLine := max(endPos.Line, startPos.Line)

	blockStart := lineStartOffset(file, startPos.Line)
	blockEnd := min(max(lineEndOffsetInclusive(file, endLine), blockStart), file.Len())

	original := file.Content[blockStart:blockEnd]

	if edit.Span.Start < blockStart || edit.Span.Start > blockEnd {
		return fixEditPreview{}, fmt.Errorf("edit span start %d out of range for preview block", edit.Span.Start)
	}
	if edit.Span.End < edit.Span.Start || edit.Span.End > blockEnd {
		return fixEditPreview{}, fmt.Errorf("edit span end %d out of range for preview block", edit.Span.End)
	}
	relStart := edit.Span.Start - blockStart
	relEnd := edit.Span.End - blockStart

	after := make([]byte, 0, len(original)+len(edit.NewText))
	after = append(after, original[:relStart]...)
	after = append(after, edit.NewText...)
	after = append(after, original[relEnd:]...)

	return fixEditPreview{
		before: splitPreviewLines(original),
		after:  splitPreviewLines(after),
	}, nil
}

func splitPreviewLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	// хвостовой '\n' не даёт лишней пустой строки
	text := strings.TrimRight(string(content), "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func lineStartOffset(f *source.File, line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	idx := f.LineIdx()
	if i := int(line) - 2; i < len(idx) {
		return idx[i] + 1
	}
	return f.Len()
}

func lineEndOffsetInclusive(f *source.File, line uint32) uint32 {
	if line == 0 {
		return 0
	}
	idx := f.LineIdx()
	if i := int(line) - 1; i < len(idx) {
		return idx[i] + 1
	}
	return f.Len()
}
