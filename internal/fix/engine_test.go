package fix

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"phpfront/internal/diag"
	"phpfront/internal/lexer"
	"phpfront/internal/parser"
	"phpfront/internal/phpver"
	"phpfront/internal/source"
)

func semicolonDiag(fileID source.FileID, at uint32) diag.Diagnostic {
	span := source.Span{File: fileID, Start: at, End: at}
	return diag.NewError(diag.SynExpectSemicolon, span, "missing semicolon").
		WithFix("insert ';'", diag.FixEdit{Span: span, NewText: ";"})
}

func TestGatherCandidatesSkipsDuplicateFixIDs(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.php", []byte("<?php $a"))

	d := semicolonDiag(fileID, 8)
	candidates, skips := gatherCandidates(fs, []diag.Diagnostic{d, d})

	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if len(skips) != 1 {
		t.Fatalf("expected 1 skipped fix, got %d", len(skips))
	}
	if want := FixID(fs, d, 0); skips[0].ID != want {
		t.Fatalf("expected skipped fix id %q, got %q", want, skips[0].ID)
	}
	if skips[0].Reason != "duplicate fix id" {
		t.Fatalf("expected duplicate fix reason, got %q", skips[0].Reason)
	}
}

func TestFixID(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.php", []byte("<?php\n$a\n"))
	d := semicolonDiag(fileID, 8)

	if got, want := FixID(fs, d, 0), diag.SynExpectSemicolon.ID()+"@2:3"; got != want {
		t.Fatalf("FixID = %q, want %q", got, want)
	}
	if got, want := FixID(fs, d, 2), diag.SynExpectSemicolon.ID()+"@2:3.2"; got != want {
		t.Fatalf("FixID = %q, want %q", got, want)
	}
}

func TestApplyParserSuggestions(t *testing.T) {
	const src = "<?php\n$a = 1\n$b = 2;\n"
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("broken.php", []byte(src)))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	toks := lexer.Tokenize(file, lexer.Options{Reporter: rep})
	parser.ParseFile(file, toks, parser.Options{Version: phpver.Latest, Reporter: rep})

	res, err := Apply(fs, bag.Items(), ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 1 || len(res.FileChanges) != 1 {
		t.Fatalf("applied %d fixes in %d files, want 1 in 1", len(res.Applied), len(res.FileChanges))
	}
	if got, want := string(res.FileChanges[0].Content), "<?php\n$a = 1;\n$b = 2;\n"; got != want {
		t.Fatalf("patched content = %q, want %q", got, want)
	}
	if string(file.Content) != src {
		t.Fatalf("source file content must stay untouched")
	}
}

func TestApplyModes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.php", []byte("<?php $a $b"))
	first := semicolonDiag(fileID, 8)
	second := semicolonDiag(fileID, 11)
	second = second.WithFix("insert ',' instead", diag.FixEdit{
		Span:    source.Span{File: fileID, Start: 11, End: 11},
		NewText: ",",
	})
	diags := []diag.Diagnostic{second, first}

	tests := []struct {
		name    string
		opts    ApplyOptions
		want    string
		skipped int
	}{
		{"once picks the earliest", ApplyOptions{Mode: ApplyModeOnce}, "<?php $a; $b", 0},
		{"all skips alternatives", ApplyOptions{Mode: ApplyModeAll}, "<?php $a; $b;", 1},
		{"by id", ApplyOptions{Mode: ApplyModeID, TargetID: FixID(fs, second, 1)}, "<?php $a $b,", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Apply(fs, diags, tt.opts)
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if got := string(res.FileChanges[0].Content); got != tt.want {
				t.Fatalf("content = %q, want %q", got, tt.want)
			}
			if len(res.Skipped) != tt.skipped {
				t.Fatalf("skipped %d fixes, want %d: %+v", len(res.Skipped), tt.skipped, res.Skipped)
			}
		})
	}
}

func TestApplyUnknownID(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.php", []byte("<?php $a"))

	res, err := Apply(fs, []diag.Diagnostic{semicolonDiag(fileID, 8)}, ApplyOptions{Mode: ApplyModeID, TargetID: "nope"})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != "fix id not found" {
		t.Fatalf("unexpected skips: %+v", res.Skipped)
	}
}

func TestApplySkipsConflictsAndBadSpans(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.php", []byte("<?php $abc"))
	replace := diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: 6, End: 10}, "bad").
		WithFix("rename", diag.FixEdit{Span: source.Span{File: fileID, Start: 6, End: 10}, NewText: "$x"})
	inside := diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: 8, End: 8}, "bad").
		WithFix("insert", diag.FixEdit{Span: source.Span{File: fileID, Start: 8, End: 8}, NewText: "_"})
	outside := diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: 10, End: 10}, "bad").
		WithFix("past end", diag.FixEdit{Span: source.Span{File: fileID, Start: 10, End: 99}, NewText: ""})

	res, err := Apply(fs, []diag.Diagnostic{replace, inside, outside}, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 1 || res.Applied[0].Title != "rename" {
		t.Fatalf("unexpected applied fixes: %+v", res.Applied)
	}
	if got := string(res.FileChanges[0].Content); got != "<?php $x" {
		t.Fatalf("content = %q", got)
	}
	reasons := map[string]bool{}
	for _, s := range res.Skipped {
		reasons[s.Reason] = true
	}
	if !reasons["edit span out of range"] || !reasons["conflicts with previously applied edits in t.php"] {
		t.Fatalf("unexpected skip reasons: %+v", res.Skipped)
	}
}

func TestNoFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.php", []byte("<?php"))
	d := diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID}, "no fix here")

	if _, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{}); !errors.Is(err, ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
	if _, err := Apply(nil, nil, ApplyOptions{}); err == nil {
		t.Fatalf("expected error for nil FileSet")
	}
}

func TestWriteChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.php")
	if err := os.WriteFile(path, []byte("<?php $a"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSetWithBase(dir)
	fileID, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	res, err := Apply(fs, []diag.Diagnostic{semicolonDiag(fileID, 8)}, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.FileChanges[0].Path != "a.php" {
		t.Fatalf("change path = %q, want a.php", res.FileChanges[0].Path)
	}
	if err := WriteChanges(fs, res.FileChanges); err != nil {
		t.Fatalf("WriteChanges: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "<?php $a;" {
		t.Fatalf("file content = %q", got)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("file mode changed to %v", info.Mode().Perm())
	}

	virtual := source.NewFileSet()
	vid := virtual.AddVirtual("v.php", []byte("<?php $a"))
	res, err = Apply(virtual, []diag.Diagnostic{semicolonDiag(vid, 8)}, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := WriteChanges(virtual, res.FileChanges); err == nil {
		t.Fatalf("expected error writing a virtual file")
	}
}
