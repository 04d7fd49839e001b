package driver

import (
	"fmt"
	"runtime"

	"fortio.org/safecast"
	"go.uber.org/zap"

	"phpfront/internal/phpver"
)

// DefaultExtensions: расширения, которые обходит пакетный режим.
var DefaultExtensions = []string{".php", ".phtml", ".inc"}

// Options configures tokenizing and parsing runs.
// The zero value parses for the latest PHP without a diagnostic limit.
type Options struct {
	Version        phpver.Version
	MaxDiagnostics int // <= 0: без лимита
	Jobs           int // <= 0: GOMAXPROCS
	ShortOpenTag   bool

	// Extensions and Exclude only matter for directory walks.
	// Exclude matches base names of files or directories.
	Extensions []string
	Exclude    []string

	Logger *zap.Logger
}

func (o Options) version() phpver.Version {
	if !o.Version.Valid() {
		return phpver.Latest
	}
	return o.Version
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) jobs(files int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, files))
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions
	}
	return o.Extensions
}

func (o Options) maxErrors() uint {
	if o.MaxDiagnostics <= 0 {
		return 0
	}
	maxErrors, err := safecast.Conv[uint](o.MaxDiagnostics)
	if err != nil {
		panic(fmt.Errorf("maxDiagnostics overflow: %w", err))
	}
	return maxErrors
}
