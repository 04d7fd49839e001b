package fix

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"phpfront/internal/diag"
	"phpfront/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota
	ApplyModeAll
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID          string
	Title       string
	Code        diag.Code
	Message     string
	PrimaryPath string
	EditCount   int
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange is the patched content of one file. Nothing is written until
// WriteChanges.
type FileChange struct {
	FileID    source.FileID
	Path      string
	EditCount int
	Content   []byte
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	id    string
	idx   int // позиция fix в d.Fixes
	order int
}

// FixID names the idx-th fix of d as CODE@line:col, with a ".idx" suffix for
// every fix but the first.
func FixID(fs *source.FileSet, d diag.Diagnostic, idx int) string {
	id := d.Code.ID()
	if fs != nil && int(d.Primary.File) < fs.Len() {
		lc, _ := fs.Resolve(d.Primary)
		id = fmt.Sprintf("%s@%d:%d", id, lc.Line, lc.Col)
	} else {
		id = fmt.Sprintf("%s@%d", id, d.Primary.Start)
	}
	if idx > 0 {
		id = fmt.Sprintf("%s.%d", id, idx)
	}
	return id
}

// Apply collects fixes from diagnostics, selects a subset according to opts,
// and computes the patched file contents.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{
		Applied:     make([]AppliedFix, 0),
		Skipped:     make([]SkippedFix, 0),
		FileChanges: make([]FileChange, 0),
	}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates, buildSkips := gatherCandidates(fs, diagnostics)
	result.Skipped = append(result.Skipped, buildSkips...)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}

	sortCandidates(candidates)

	selected, selectionSkips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, selectionSkips...)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	applied, skipped, changes := applyCandidates(fs, selected)
	result.Applied = append(result.Applied, applied...)
	result.Skipped = append(result.Skipped, skipped...)
	result.FileChanges = append(result.FileChanges, changes...)
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

// gatherCandidates turns every fix with edits into a candidate. Fixes without
// edits and repeated ids are reported as skipped.
func gatherCandidates(fs *source.FileSet, diagnostics []diag.Diagnostic) ([]candidate, []SkippedFix) {
	cands := make([]candidate, 0)
	skips := make([]SkippedFix, 0)
	seen := make(map[string]struct{})

	order := 0
	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			id := FixID(fs, d, idx)
			if len(f.Edits) == 0 {
				skips = append(skips, SkippedFix{ID: id, Title: f.Title, Reason: "fix has no edits"})
				continue
			}
			if _, dup := seen[id]; dup {
				skips = append(skips, SkippedFix{ID: id, Title: f.Title, Reason: "duplicate fix id"})
				continue
			}
			seen[id] = struct{}{}
			cands = append(cands, candidate{diag: d, fix: f, id: id, idx: idx, order: order})
			order++
		}
	}
	return cands, skips
}

// sortCandidates orders by file, primary span, then insertion order.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].diag, candidates[j].diag
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		return candidates[i].order < candidates[j].order
	})
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.id == opts.TargetID {
				return []candidate{cand}, nil
			}
		}
		return nil, []SkippedFix{{ID: opts.TargetID, Reason: "fix id not found"}}
	case ApplyModeAll:
		// только первый fix каждой диагностики, остальные: альтернативы
		selected := make([]candidate, 0, len(candidates))
		skipped := make([]SkippedFix, 0)
		for _, cand := range candidates {
			if cand.idx > 0 {
				skipped = append(skipped, SkippedFix{ID: cand.id, Title: cand.fix.Title, Reason: "alternative fix"})
				continue
			}
			selected = append(selected, cand)
		}
		return selected, skipped
	case ApplyModeOnce:
		return candidates[:1], nil
	default:
		return nil, nil
	}
}

func applyCandidates(fs *source.FileSet, selected []candidate) ([]AppliedFix, []SkippedFix, []FileChange) {
	accepted := make(map[source.FileID][]diag.FixEdit)
	applied := make([]AppliedFix, 0, len(selected))
	skipped := make([]SkippedFix, 0)

	for _, cand := range selected {
		if reason := checkEdits(fs, accepted, cand.fix.Edits); reason != "" {
			skipped = append(skipped, SkippedFix{ID: cand.id, Title: cand.fix.Title, Reason: reason})
			continue
		}
		for _, e := range cand.fix.Edits {
			accepted[e.Span.File] = append(accepted[e.Span.File], e)
		}
		applied = append(applied, AppliedFix{
			ID:          cand.id,
			Title:       cand.fix.Title,
			Code:        cand.diag.Code,
			Message:     cand.diag.Message,
			PrimaryPath: formatFilePath(fs, cand.diag.Primary.File),
			EditCount:   len(cand.fix.Edits),
		})
	}

	changes := make([]FileChange, 0, len(accepted))
	for fileID, edits := range accepted {
		file := fs.Get(fileID)
		changes = append(changes, FileChange{
			FileID:    fileID,
			Path:      file.FormatPath(source.PathRelative, fs.BaseDir()),
			EditCount: len(edits),
			Content:   patch(file.Content, edits),
		})
	}
	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].Path < changes[j].Path
	})
	return applied, skipped, changes
}

// checkEdits validates a fix's edits against the file bounds and the edits
// already accepted. It returns the skip reason or "".
func checkEdits(fs *source.FileSet, accepted map[source.FileID][]diag.FixEdit, edits []diag.FixEdit) string {
	for i, e := range edits {
		if int(e.Span.File) >= fs.Len() {
			return "edit targets an unknown file"
		}
		if e.Span.End < e.Span.Start || e.Span.End > fs.Get(e.Span.File).Len() {
			return "edit span out of range"
		}
		for _, prev := range accepted[e.Span.File] {
			if spansConflict(prev, e) {
				return fmt.Sprintf("conflicts with previously applied edits in %s", formatFilePath(fs, e.Span.File))
			}
		}
		for _, other := range edits[:i] {
			if other.Span.File == e.Span.File && spansConflict(other, e) {
				return "fix has overlapping edits"
			}
		}
	}
	return ""
}

// patch applies non-overlapping edits to content. Inserts at the same offset
// keep their acceptance order.
func patch(content []byte, edits []diag.FixEdit) []byte {
	sorted := append([]diag.FixEdit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Span.Start < sorted[j].Span.Start
	})
	out := make([]byte, 0, len(content)+len(sorted))
	pos := uint32(0)
	for _, e := range sorted {
		out = append(out, content[pos:e.Span.Start]...)
		out = append(out, e.NewText...)
		pos = e.Span.End
	}
	return append(out, content[pos:]...)
}

// spansConflict reports whether two edits' spans overlap.
// Spans are treated as half-open intervals [Start, End). Two zero-length edits
// never conflict. A zero-length edit conflicts with a non-zero span if its
// position is within that span.
func spansConflict(a, b diag.FixEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart <= aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

func formatFilePath(fs *source.FileSet, fileID source.FileID) string {
	if fs == nil || int(fileID) >= fs.Len() {
		return ""
	}
	return fs.Get(fileID).FormatPath(source.PathAuto, fs.BaseDir())
}

// WriteChanges stores patched contents back to disk, keeping file modes.
// Virtual files cannot be written.
func WriteChanges(fs *source.FileSet, changes []FileChange) error {
	for _, ch := range changes {
		file := fs.Get(ch.FileID)
		if file.Flags&source.FileVirtual != 0 {
			return fmt.Errorf("write %s: target file is virtual", ch.Path)
		}
		mode := os.FileMode(0o644)
		if info, err := os.Stat(file.Path); err == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(file.Path, ch.Content, mode); err != nil {
			return fmt.Errorf("write %s: %w", file.Path, err)
		}
	}
	return nil
}
