package driver

import (
	"fmt"

	"fortio.org/safecast"

	"phpfront/internal/ast"
	"phpfront/internal/diag"
	"phpfront/internal/parser"
	"phpfront/internal/source"
	"phpfront/internal/token"
)

type ParseResult struct {
	FileSet  *source.FileSet
	File     *source.File
	Program  *ast.Program
	Interner *source.Interner
	Bag      *diag.Bag
}

func Parse(path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(opts.MaxDiagnostics)
	interner := source.NewInterner()
	res := parseFile(file, interner, bag, opts)

	return &ParseResult{
		FileSet:  fs,
		File:     file,
		Program:  res.Program,
		Interner: interner,
		Bag:      bag,
	}, nil
}

// parseFile runs lexer and parser over file.
func parseFile(file *source.File, interner *source.Interner, bag *diag.Bag, opts Options) parser.Result {
	return parseTokens(file, tokenizeFile(file, bag, opts), interner, bag, opts)
}

// parseTokens parses an already lexed file. Lexical errors in bag count
// toward the parser's error limit. Repeated identical parser diagnostics
// (same code, span and message) are reported once.
func parseTokens(file *source.File, tokens []token.Token, interner *source.Interner, bag *diag.Bag, opts Options) parser.Result {
	lexErrors, err := safecast.Conv[uint](bag.Count(diag.LexError))
	if err != nil {
		panic(fmt.Errorf("lexer error count overflow: %w", err))
	}

	return parser.ParseFile(file, tokens, parser.Options{
		Version:       opts.version(),
		Reporter:      diag.NewDedupReporter(diag.BagReporter{Bag: bag}),
		Interner:      interner,
		MaxErrors:     opts.maxErrors(),
		CurrentErrors: lexErrors,
	})
}
