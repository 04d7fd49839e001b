package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"phpfront/internal/diag"
	"phpfront/internal/diagfmt"
	"phpfront/internal/driver"
	"phpfront/internal/source"
)

const cacheAppName = "phpfront"

func newDiagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag [flags] <file.php|directory>",
		Short: "Run diagnostics on a PHP source file or directory",
		Long:  `Run diagnostics to find lexical, syntax and version-compatibility issues in a PHP file or every PHP file within a directory`,
		Args:  cobra.ExactArgs(1),
		RunE:  runDiagnose,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	cmd.Flags().String("stage", "syntax", "diagnostic stage to run (tokenize|syntax)")
	cmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	cmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	cmd.Flags().Bool("preview", false, "show fix suggestions as before/after lines")
	cmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	cmd.Flags().Bool("cache", false, "reuse diagnostics of unchanged files from the disk cache")
	cmd.Flags().Bool("clear-cache", false, "drop the disk cache before running")
	return cmd
}

// diagFlags: флаги команды diag, собранные в одном месте.
type diagFlags struct {
	format           string
	stage            driver.DiagnoseStage
	noWarnings       bool
	warningsAsErrors bool
	withNotes        bool
	suggest          bool
	preview          bool
	fullPath         bool
	cache            bool
	clearCache       bool
}

func readDiagFlags(cmd *cobra.Command) (diagFlags, error) {
	var (
		f   diagFlags
		err error
	)
	flags := cmd.Flags()
	if f.format, err = flags.GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch f.format {
	case "pretty", "short", "json":
	default:
		return f, fmt.Errorf("unknown format: %s", f.format)
	}

	stage, err := flags.GetString("stage")
	if err != nil {
		return f, fmt.Errorf("failed to get stage flag: %w", err)
	}
	// Конвертируем строку стадии в тип
	switch stage {
	case "tokenize":
		f.stage = driver.DiagnoseStageTokenize
	case "syntax", "all":
		f.stage = driver.DiagnoseStageSyntax
	default:
		return f, fmt.Errorf("unknown stage value: %s", stage)
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"no-warnings", &f.noWarnings},
		{"warnings-as-errors", &f.warningsAsErrors},
		{"with-notes", &f.withNotes},
		{"suggest", &f.suggest},
		{"preview", &f.preview},
		{"fullpath", &f.fullPath},
		{"cache", &f.cache},
		{"clear-cache", &f.clearCache},
	}
	for _, b := range bools {
		if *b.dst, err = flags.GetBool(b.name); err != nil {
			return f, fmt.Errorf("failed to get %s flag: %w", b.name, err)
		}
	}
	if f.noWarnings && f.warningsAsErrors {
		return f, fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	return f, nil
}

// runDiagnose executes the "diag" command: it runs diagnostics for a single
// file or a directory, prints them in the chosen format and fails with exit
// status 1 when any error diagnostic was reported.
func runDiagnose(cmd *cobra.Command, args []string) error {
	target := args[0]

	f, err := readDiagFlags(cmd)
	if err != nil {
		return err
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	stopProfiling, err := setupProfiling(cmd, s.log)
	if err != nil {
		return err
	}
	defer stopProfiling()

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	opts := driver.DiagnoseOptions{
		Options:          s.opts,
		Stage:            f.stage,
		IgnoreWarnings:   f.noWarnings,
		WarningsAsErrors: f.warningsAsErrors,
		EnableTimings:    s.timings,
	}
	if s.log.Core().Enabled(zap.DebugLevel) {
		opts.Observer = phaseLogger(s.log)
	}
	if f.cache || f.clearCache || s.cache.Enabled {
		cache, err := openCache(s.cache.Dir)
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if f.clearCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			s.log.Info("cache cleared", zap.String("dir", cache.Dir()))
		}
		if f.cache || s.cache.Enabled {
			opts.Cache = cache
		}
	}

	fs, results, err := driver.Diagnose(cmd.Context(), target, opts)
	if err != nil {
		return fmt.Errorf("diagnosis failed: %w", err)
	}

	pathMode := diagfmt.PathModeAuto
	if st.IsDir() {
		pathMode = diagfmt.PathModeRelative
	}
	if f.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	out, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if err := printDiagnostics(out, fs, results, f, pathMode, s.useColor(out), st.IsDir()); err != nil {
		return err
	}

	sum := summarize(results)
	if !s.quiet && f.format != "json" {
		fmt.Fprintln(stderr, sum)
	}
	if s.timings {
		fmt.Fprint(stderr, driver.BatchTimings(results).String())
	}
	if sum.errors > 0 {
		return &exitError{code: 1}
	}
	return nil
}

// phaseLogger пишет начало и конец каждой фазы в debug-лог.
func phaseLogger(log *zap.Logger) driver.PhaseObserver {
	return func(ev driver.PhaseEvent) {
		if ev.Status == driver.PhaseStart {
			log.Debug("phase started", zap.String("file", ev.Path), zap.String("phase", ev.Name))
			return
		}
		log.Debug("phase finished", zap.String("file", ev.Path), zap.String("phase", ev.Name), zap.Duration("elapsed", ev.Elapsed))
	}
}

func openCache(dir string) (*driver.DiskCache, error) {
	if dir != "" {
		return driver.OpenDiskCacheAt(dir)
	}
	return driver.OpenDiskCache(cacheAppName)
}

func printDiagnostics(out io.Writer, fs *source.FileSet, results []driver.DiagnoseResult, f diagFlags, pathMode diagfmt.PathMode, useColor, dirMode bool) error {
	showFixes := f.suggest || f.preview
	switch f.format {
	case "short":
		for _, r := range results {
			if r.Bag != nil {
				diagfmt.Short(out, r.Bag, fs, pathMode)
			}
		}

	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     f.withNotes,
			IncludeFixes:     showFixes,
			IncludePreviews:  f.preview,
		}
		var payload any
		if dirMode {
			output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
			for _, r := range results {
				if r.Bag == nil {
					continue
				}
				output[displayPath(fs, r, pathMode)] = diagfmt.BuildDiagnosticsOutput(r.Bag, fs, jsonOpts)
			}
			payload = output
		} else {
			bag := diag.NewBag(0)
			for _, r := range results {
				if r.Bag != nil {
					bag.Merge(r.Bag)
				}
			}
			payload = diagfmt.BuildDiagnosticsOutput(bag, fs, jsonOpts)
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(payload); err != nil {
			return fmt.Errorf("failed to encode diagnostics output: %w", err)
		}

	default:
		prettyOpts := diagfmt.PrettyOpts{
			Color:       useColor,
			Context:     2,
			PathMode:    pathMode,
			ShowNotes:   f.withNotes,
			ShowFixes:   showFixes,
			ShowPreview: f.preview,
		}
		printed := 0
		for _, r := range results {
			if r.Bag == nil || r.Bag.Len() == 0 {
				continue
			}
			if printed > 0 {
				fmt.Fprintln(out)
			}
			printed++
			if dirMode {
				fmt.Fprintf(out, "== %s ==\n", displayPath(fs, r, pathMode))
			}
			diagfmt.Pretty(out, r.Bag, fs, prettyOpts)
		}
	}
	return nil
}

func displayPath(fs *source.FileSet, r driver.DiagnoseResult, mode diagfmt.PathMode) string {
	if int(r.FileID) >= fs.Len() {
		return r.Path
	}
	return fs.Get(r.FileID).FormatPath(mode.String(), fs.BaseDir())
}

type diagSummary struct {
	files, errors, warnings, cached int
}

func summarize(results []driver.DiagnoseResult) diagSummary {
	var sum diagSummary
	for _, r := range results {
		if r.Bag == nil {
			continue
		}
		sum.files++
		if r.Cached {
			sum.cached++
		}
		for _, d := range r.Bag.Items() {
			switch d.Severity {
			case diag.SevError:
				sum.errors++
			case diag.SevWarning:
				sum.warnings++
			}
		}
	}
	return sum
}

func (s diagSummary) String() string {
	out := fmt.Sprintf("checked %d %s: %d %s, %d %s",
		s.files, plural(s.files, "file", "files"),
		s.errors, plural(s.errors, "error", "errors"),
		s.warnings, plural(s.warnings, "warning", "warnings"))
	if s.cached > 0 {
		out += fmt.Sprintf(" (%d from cache)", s.cached)
	}
	return out
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
