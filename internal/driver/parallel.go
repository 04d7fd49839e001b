package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"phpfront/internal/ast"
	"phpfront/internal/diag"
	"phpfront/internal/source"
	"phpfront/internal/token"
)

// TokenizeDirResult содержит результат токенизации одного файла
type TokenizeDirResult struct {
	Path   string        // Путь к файлу
	FileID source.FileID // ID файла в FileSet
	Tokens []token.Token // Токены файла
	Bag    *diag.Bag     // Диагностики
}

// ParseDirResult содержит результат парсинга одного файла
type ParseDirResult struct {
	Path    string
	FileID  source.FileID
	Program *ast.Program // nil, если файл не загрузился
	Bag     *diag.Bag
}

// ListFiles возвращает отсортированный список PHP-файлов в директории.
func ListFiles(dir string, opts Options) ([]string, error) {
	exts := opts.extensions()
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != dir && slices.Contains(opts.Exclude, d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && hasExtension(path, exts) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

func hasExtension(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// batch is a preloaded set of files shared by the parallel workers.
type batch struct {
	fileSet    *source.FileSet
	fileIDs    map[string]source.FileID
	loadErrors map[string]error
}

// loadBatch reads every file up front; workers only read the FileSet.
func loadBatch(files []string, baseDir string, log *zap.Logger) *batch {
	b := &batch{
		fileSet:    source.NewFileSetWithBase(baseDir),
		fileIDs:    make(map[string]source.FileID, len(files)),
		loadErrors: make(map[string]error),
	}
	for _, path := range files {
		fileID, err := b.fileSet.Load(path)
		if err != nil {
			// Пустой виртуальный файл, чтобы у ошибки I/O был путь
			log.Warn("failed to load file", zap.String("path", path), zap.Error(err))
			b.loadErrors[path] = err
			fileID = b.fileSet.AddVirtual(path, nil)
		}
		b.fileIDs[path] = fileID
	}
	return b
}

// loadFailure builds the bag reported for a file that could not be read.
func loadFailure(fileID source.FileID, err error, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: fileID}, "failed to load file: "+err.Error()))
	return bag
}

// forEach runs fn for every file index with at most jobs goroutines.
// Результаты пишутся по индексу i, мьютекс не нужен.
func forEach(ctx context.Context, n, jobs int, fn func(i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := range n {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			return fn(i)
		})
	}
	return g.Wait()
}

// TokenizeDir токенизирует все PHP-файлы в директории параллельно
func TokenizeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []TokenizeDirResult, error) {
	files, err := ListFiles(dir, opts)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	b := loadBatch(files, dir, opts.logger())
	results := make([]TokenizeDirResult, len(files))

	err = forEach(ctx, len(files), opts.jobs(len(files)), func(i int) error {
		path := files[i]
		if loadErr, hadError := b.loadErrors[path]; hadError {
			results[i] = TokenizeDirResult{Path: path, FileID: b.fileIDs[path], Bag: loadFailure(b.fileIDs[path], loadErr, opts.MaxDiagnostics)}
			return nil
		}
		fileID := b.fileIDs[path]
		bag := diag.NewBag(opts.MaxDiagnostics)
		results[i] = TokenizeDirResult{
			Path:   path,
			FileID: fileID,
			Tokens: tokenizeFile(b.fileSet.Get(fileID), bag, opts),
			Bag:    bag,
		}
		return nil
	})
	return b.fileSet, results, err
}

// ParseDir парсит все PHP-файлы в директории параллельно.
// Все файлы пакета делят один потокобезопасный Interner.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, *source.Interner, []ParseDirResult, error) {
	files, err := ListFiles(dir, opts)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), source.NewInterner(), nil, nil
	}

	log := opts.logger()
	started := time.Now()
	b := loadBatch(files, dir, log)
	interner := source.NewInterner()
	results := make([]ParseDirResult, len(files))

	err = forEach(ctx, len(files), opts.jobs(len(files)), func(i int) error {
		path := files[i]
		if loadErr, hadError := b.loadErrors[path]; hadError {
			results[i] = ParseDirResult{Path: path, FileID: b.fileIDs[path], Bag: loadFailure(b.fileIDs[path], loadErr, opts.MaxDiagnostics)}
			return nil
		}
		fileID := b.fileIDs[path]
		bag := diag.NewBag(opts.MaxDiagnostics)
		res := parseFile(b.fileSet.Get(fileID), interner, bag, opts)
		results[i] = ParseDirResult{
			Path:    path,
			FileID:  fileID,
			Program: res.Program,
			Bag:     bag,
		}
		return nil
	})

	log.Info("parsed directory",
		zap.String("dir", dir),
		zap.Int("files", len(files)),
		zap.Int("failed", len(b.loadErrors)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return b.fileSet, interner, results, err
}
