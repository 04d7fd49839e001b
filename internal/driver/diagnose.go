package driver

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"phpfront/internal/ast"
	"phpfront/internal/diag"
	"phpfront/internal/observ"
	"phpfront/internal/source"
)

// DiagnoseStage определяет уровень диагностики
type DiagnoseStage string

const (
	DiagnoseStageTokenize DiagnoseStage = "tokenize"
	DiagnoseStageSyntax   DiagnoseStage = "syntax"
)

// DiagnoseOptions содержит опции для диагностики
type DiagnoseOptions struct {
	Options

	Stage            DiagnoseStage
	IgnoreWarnings   bool
	WarningsAsErrors bool
	EnableTimings    bool

	Cache    *DiskCache // nil: без кеша
	Observer PhaseObserver
}

func (o DiagnoseOptions) stage() DiagnoseStage {
	if o.Stage == "" {
		return DiagnoseStageSyntax
	}
	return o.Stage
}

type DiagnoseResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	// Program is nil for the tokenize stage, cache hits and unreadable files.
	Program *ast.Program
	Cached  bool
	Timing  *observ.Report
}

// Diagnose checks one file, or every PHP file under target when it is a
// directory. Results follow the sorted file order. When ctx is cancelled the
// results of files that never started have a nil Bag.
func Diagnose(ctx context.Context, target string, opts DiagnoseOptions) (*source.FileSet, []DiagnoseResult, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, nil, err
	}
	files, baseDir := []string{target}, ""
	if info.IsDir() {
		baseDir = target
		if files, err = ListFiles(target, opts.Options); err != nil {
			return nil, nil, err
		}
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(baseDir), nil, nil
	}

	log := opts.logger()
	started := time.Now()
	b := loadBatch(files, baseDir, log)
	interner := source.NewInterner()
	results := make([]DiagnoseResult, len(files))

	err = forEach(ctx, len(files), opts.jobs(len(files)), func(i int) error {
		path := files[i]
		if loadErr, hadError := b.loadErrors[path]; hadError {
			results[i] = DiagnoseResult{Path: path, FileID: b.fileIDs[path], Bag: loadFailure(b.fileIDs[path], loadErr, opts.MaxDiagnostics)}
			return nil
		}
		results[i] = diagnoseFile(b.fileSet.Get(b.fileIDs[path]), interner, opts, log)
		return nil
	})

	withErrors, cached := 0, 0
	for _, r := range results {
		if r.Bag != nil && r.Bag.HasErrors() {
			withErrors++
		}
		if r.Cached {
			cached++
		}
	}
	log.Info("diagnosed",
		zap.String("target", target),
		zap.Int("files", len(files)),
		zap.Int("with_errors", withErrors),
		zap.Int("cached", cached),
		zap.Duration("elapsed", time.Since(started)),
	)
	return b.fileSet, results, err
}

func diagnoseFile(file *source.File, interner *source.Interner, opts DiagnoseOptions, log *zap.Logger) DiagnoseResult {
	res := DiagnoseResult{Path: file.Path, FileID: file.ID}
	tr := newPhaseTracker(file.Path, opts)
	bag := diag.NewBag(opts.MaxDiagnostics)
	key := cacheKey(file.Hash, opts)

	if opts.Cache != nil {
		idx := tr.begin("cache_lookup")
		res.Cached = lookupCache(opts.Cache, key, file, bag, log)
		note := "miss"
		if res.Cached {
			note = "hit"
		}
		tr.end(idx, "cache_lookup", note)
	}

	if !res.Cached {
		lexIdx := tr.begin("tokenize")
		tokens := tokenizeFile(file, bag, opts.Options)
		tr.end(lexIdx, "tokenize", fmt.Sprintf("tokens=%d", len(tokens)))

		if opts.stage() == DiagnoseStageSyntax {
			parseIdx := tr.begin("parse")
			pr := parseTokens(file, tokens, interner, bag, opts.Options)
			res.Program = pr.Program
			tr.end(parseIdx, "parse", fmt.Sprintf("stmts=%d", len(pr.Program.Statements)))
		}

		if opts.Cache != nil {
			storeCache(opts.Cache, key, file, opts.version().String(), bag, log)
		}
	}

	// Фильтрация применяется после кеша: в кеше лежит полный набор
	if opts.IgnoreWarnings {
		bag.Filter(func(d *diag.Diagnostic) bool {
			return d.Severity >= diag.SevError
		})
	}
	if opts.WarningsAsErrors {
		bag.Transform(func(d *diag.Diagnostic) {
			if d.Severity == diag.SevWarning {
				d.Severity = diag.SevError
			}
		})
	}

	res.Bag = bag
	res.Timing = tr.report()
	return res
}

func lookupCache(cache *DiskCache, key Digest, file *source.File, bag *diag.Bag, log *zap.Logger) bool {
	var payload DiskPayload
	ok, err := cache.Get(key, &payload)
	switch {
	case err != nil:
		log.Warn("cache read failed", zap.String("path", file.Path), zap.Error(err))
		bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, file.Span().ZeroideToStart(), "failed to read cache: "+err.Error()))
		return false
	case !ok:
		log.Debug("cache miss", zap.String("path", file.Path))
		return false
	}
	for _, d := range payloadToDiagnostics(file, &payload) {
		bag.Add(d)
	}
	log.Debug("cache hit", zap.String("path", file.Path), zap.Int("diagnostics", len(payload.Diagnostics)))
	return true
}

func storeCache(cache *DiskCache, key Digest, file *source.File, version string, bag *diag.Bag, log *zap.Logger) {
	payload := diagnosticsToPayload(file, version, bag.Items())
	if err := cache.Put(key, payload); err != nil {
		log.Warn("cache write failed", zap.String("path", file.Path), zap.Error(err))
		bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, file.Span().ZeroideToStart(), "failed to write cache: "+err.Error()))
		return
	}
	log.Debug("cache write", zap.String("path", file.Path), zap.Int("diagnostics", len(payload.Diagnostics)))
}
