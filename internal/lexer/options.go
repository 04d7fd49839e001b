package lexer

import (
	"phpfront/internal/diag"
	"phpfront/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil: тогда ошибки игнорируем (но продолжаем лексить)
	// ShortOpenTag enables the bare "<?" opening tag (short_open_tag=On).
	ShortOpenTag bool
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
}
