package driver

import (
	"phpfront/internal/diag"
	"phpfront/internal/lexer"
	"phpfront/internal/source"
	"phpfront/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

func Tokenize(path string, opts Options) (*TokenizeResult, error) {
	// Создаём FileSet и загружаем файл
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(opts.MaxDiagnostics)
	tokens := tokenizeFile(file, bag, opts)

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}

// tokenizeFile lexes the whole file, lexical errors go to bag.
func tokenizeFile(file *source.File, bag *diag.Bag, opts Options) []token.Token {
	return lexer.Tokenize(file, lexer.Options{
		Reporter:     diag.BagReporter{Bag: bag},
		ShortOpenTag: opts.ShortOpenTag,
	})
}
