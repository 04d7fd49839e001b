package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"

	"phpfront/internal/driver"
	"phpfront/internal/phpver"
)

// settings is the merged view of persistent flags and phpfront.toml for one
// command invocation. An explicitly set flag always wins over the file.
type settings struct {
	colorMode string
	quiet     bool
	timings   bool
	config    *loadedConfig

	opts  driver.Options
	cache cacheConfig
	log   *zap.Logger
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := resolveConfig(configPath, ".")
	if err != nil {
		return nil, err
	}

	s := &settings{config: cfg}
	if s.colorMode, err = flags.GetString("color"); err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch s.colorMode {
	case "auto", "on", "off":
	default:
		return nil, fmt.Errorf("unknown color mode %q (expected auto|on|off)", s.colorMode)
	}
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return nil, fmt.Errorf("failed to get verbose flag: %w", err)
	}

	s.opts.Version = phpver.Latest
	if v, ok := flags.Lookup("php-version").Value.(*phpver.Version); ok {
		s.opts.Version = *v
	}
	if s.opts.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if s.opts.ShortOpenTag, err = flags.GetBool("short-open-tag"); err != nil {
		return nil, fmt.Errorf("failed to get short-open-tag flag: %w", err)
	}
	if flags.Lookup("jobs") != nil {
		if s.opts.Jobs, err = flags.GetInt("jobs"); err != nil {
			return nil, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}

	if cfg != nil {
		c := cfg.Config
		if !changed(flags, "php-version") && cfg.defined("parse", "php_version") {
			s.opts.Version = c.Parse.PHPVersion
		}
		if !changed(flags, "max-diagnostics") && cfg.defined("parse", "max_diagnostics") {
			s.opts.MaxDiagnostics = c.Parse.MaxDiagnostics
		}
		if !changed(flags, "jobs") && cfg.defined("parse", "jobs") {
			s.opts.Jobs = c.Parse.Jobs
		}
		if !changed(flags, "short-open-tag") && cfg.defined("parse", "short_open_tag") {
			s.opts.ShortOpenTag = c.Parse.ShortOpenTag
		}
		s.opts.Extensions = c.Files.Extensions
		s.opts.Exclude = c.Files.Exclude
		s.cache = c.Cache
	}

	if verbose {
		if s.log, err = zap.NewDevelopment(); err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	} else {
		s.log = zap.NewNop()
	}
	s.opts.Logger = s.log
	if cfg != nil {
		s.log.Debug("loaded config", zap.String("path", cfg.Path))
	}
	return s, nil
}

// changed is false for flags the command does not define.
func changed(flags *pflag.FlagSet, name string) bool {
	f := flags.Lookup(name)
	return f != nil && f.Changed
}

// close flushes the logger; sync errors on stderr are not actionable.
func (s *settings) close() {
	_ = s.log.Sync()
}

// useColor resolves --color for a concrete writer. Only a terminal gets
// colour in auto mode, and NO_COLOR turns auto off.
func (s *settings) useColor(w io.Writer) bool {
	switch s.colorMode {
	case "on":
		return true
	case "off":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
