package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.php", []byte("<?php echo 1;"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}
	id2 := fs.Add("test.php", []byte("<?php echo 2;"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latestID, exists := fs.GetLatest("test.php")
	if !exists || latestID != id2 {
		t.Errorf("Expected latest ID to be %d, got %d (exists=%v)", id2, latestID, exists)
	}
	// старая версия всё ещё доступна
	if got := string(fs.Get(id1).Content); got != "<?php echo 1;" {
		t.Errorf("first version content = %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", fs.Len())
	}
}

func TestLineIndexIsLazy(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("a.php", []byte("a\nb\n")))

	if f.lineIdx != nil {
		t.Fatalf("line table must not be built before first use")
	}
	expected := []uint32{1, 3}
	idx := f.LineIdx()
	if len(idx) != len(expected) {
		t.Fatalf("LineIdx() = %v, want %v", idx, expected)
	}
	for i, v := range expected {
		if idx[i] != v {
			t.Errorf("LineIdx()[%d] = %d, want %d", i, idx[i], v)
		}
	}
	if f.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.php", []byte("<?php\n$a = 1;\n\n$b;"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{5, LineCol{1, 6}}, // the '\n' belongs to line 1
		{6, LineCol{2, 1}},
		{8, LineCol{2, 3}},
		{14, LineCol{3, 1}},
		{15, LineCol{4, 1}},
		{18, LineCol{4, 4}}, // end of file
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestResolveUTF8(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("u.php", []byte("<?php\n$ü = 'é';"))
	start, end := fs.Resolve(Span{File: id, Start: 6, End: 9})
	if start != (LineCol{2, 1}) || end != (LineCol{2, 4}) {
		t.Errorf("Resolve() = %+v..%+v; columns are byte based", start, end)
	}
}

func TestGetLineAndSlice(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("g.php", []byte("one\r\ntwo\nthree")))

	for n, want := range map[uint32]string{0: "", 1: "one", 2: "two", 3: "three", 4: ""} {
		if got := f.GetLine(n); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, want)
		}
	}
	if got := f.Slice(Span{File: f.ID, Start: 5, End: 8}); got != "two" {
		t.Errorf("Slice() = %q", got)
	}
	if got := f.Slice(Span{File: f.ID, Start: 10, End: 100}); got != "hree" {
		t.Errorf("Slice() must clamp to content, got %q", got)
	}
}

func TestLoadKeepsBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bom.php")
	content := []byte("\xEF\xBB\xBF<?php\r\necho 1;\r\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != string(content) {
		t.Errorf("Load must not normalize content")
	}
	if f.Flags&FileHadBOM == 0 {
		t.Errorf("expected FileHadBOM flag")
	}
	if _, err := fs.Load(filepath.Join(dir, "missing.php")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestFormatPath(t *testing.T) {
	fs := NewFileSetWithBase("/home/user/project")
	f := fs.Get(fs.AddVirtual("/home/user/project/src/app/Controller.php", nil))

	tests := []struct {
		mode string
		want string
	}{
		{PathAbsolute, "/home/user/project/src/app/Controller.php"},
		{PathRelative, "src/app/Controller.php"},
		{PathBasename, "Controller.php"},
		{PathAuto, "Controller.php"},
		{"", "/home/user/project/src/app/Controller.php"},
	}
	for _, tt := range tests {
		if got := f.FormatPath(tt.mode, fs.BaseDir()); got != tt.want {
			t.Errorf("FormatPath(%q) = %q, want %q", tt.mode, got, tt.want)
		}
	}

	short := fs.Get(fs.AddVirtual("a.php", nil))
	if got := short.FormatPath(PathAuto, ""); got != "a.php" {
		t.Errorf("auto keeps short paths, got %q", got)
	}
	if fs.BaseDir() != "/home/user/project" {
		t.Errorf("BaseDir() = %q", fs.BaseDir())
	}
}
