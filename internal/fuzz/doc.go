// Package fuzztests houses Go fuzz harnesses that exercise the frontend
// pipeline (source -> lexer -> parser). Its goal is to smoke test totality:
// no panics, no hangs, and structural invariants on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер/парсер, проверяя инварианты testkit.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/diag,
// internal/testkit.

package fuzztests
