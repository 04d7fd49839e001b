package version

import (
	"strings"
	"testing"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	// GitCommit and BuildDate can be empty (optional)
	_ = GitCommit
	_ = BuildDate
}

func TestColored(t *testing.T) {
	origVersion := Version
	defer func() { Version = origVersion }()

	Version = "1.2.3-rc.1"
	if got := Colored(false); got != "1.2.3-rc.1" {
		t.Errorf("Colored(false) = %q", got)
	}
	got := Colored(true)
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("Colored(true) has no escape codes: %q", got)
	}
	if !strings.HasSuffix(got, "-rc.1") {
		t.Errorf("suffix lost: %q", got)
	}

	// не semver: печатаем как есть
	Version = "nightly"
	if got := Colored(true); got != "nightly" {
		t.Errorf("Colored(true) = %q, want unchanged", got)
	}
}

func TestSummary(t *testing.T) {
	origVersion, origCommit, origMessage, origDate := Version, GitCommit, GitMessage, BuildDate
	defer func() {
		Version, GitCommit, GitMessage, BuildDate = origVersion, origCommit, origMessage, origDate
	}()

	Version = "1.2.3"
	GitCommit = "abc123def456"
	GitMessage = ""
	BuildDate = "2024-01-15T10:30:00Z"

	got := Summary(false, "8.4")
	want := "phpfront 1.2.3\ntarget PHP: 8.4\ncommit: abc123def456\nbuilt: 2024-01-15T10:30:00Z\n"
	if got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}

	GitCommit, BuildDate = "", ""
	if got := Summary(false, ""); got != "phpfront 1.2.3\n" {
		t.Errorf("Summary() with empty optional fields = %q", got)
	}
}

// BenchmarkVersionAccess benchmarks accessing version variables
func BenchmarkVersionAccess(b *testing.B) {
	b.Run("Version", func(b *testing.B) {
		for b.Loop() {
			_ = Version
		}
	})

	b.Run("Colored", func(b *testing.B) {
		for b.Loop() {
			_ = Colored(true)
		}
	})
}
