package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"phpfront/internal/diag"
	"phpfront/internal/source"
)

const tabWidth = 4

type palette struct {
	enabled bool
	err     *color.Color
	warn    *color.Color
	hint    *color.Color
	code    *color.Color
	gutter  *color.Color
	note    *color.Color
	fix     *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		enabled: enabled,
		err:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		hint:    color.New(color.FgCyan),
		code:    color.New(color.Faint),
		gutter:  color.New(color.FgBlue),
		note:    color.New(color.FgCyan, color.Bold),
		fix:     color.New(color.FgGreen),
	}
	if enabled {
		// решение о цвете принимает вызывающий, а не color.NoColor
		for _, c := range []*color.Color{p.err, p.warn, p.hint, p.code, p.gutter, p.note, p.fix} {
			c.EnableColor()
		}
	}
	return p
}

func (p palette) paint(c *color.Color, s string) string {
	if !p.enabled {
		return s
	}
	return c.Sprint(s)
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.hint
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой диагностики печатает
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строки контекста с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
// Порядок: порядок bag.Items().
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	file := fileOf(fs, d.Primary)
	sevColor := pal.severity(d.Severity)
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		location(fs, file, d.Primary, opts.PathMode),
		pal.paint(sevColor, d.Severity.String()),
		pal.paint(pal.code, d.Code.ID()),
		d.Message,
	)
	if file != nil && file.Len() > 0 {
		writeSnippet(w, file, d.Primary, opts, pal, sevColor)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n",
				pal.paint(pal.note, "note:"),
				location(fs, fileOf(fs, n.Span), n.Span, opts.PathMode),
				n.Msg,
			)
		}
	}

	if opts.ShowFixes {
		for i, fx := range d.Fixes {
			fmt.Fprintf(w, "  %s %s\n", pal.paint(pal.fix, fmt.Sprintf("fix #%d:", i+1)), fx.Title)
			for _, e := range fx.Edits {
				fmt.Fprintf(w, "    edit %s apply=%q\n", location(fs, fileOf(fs, e.Span), e.Span, opts.PathMode), e.NewText)
				if !opts.ShowPreview {
					continue
				}
				preview, err := buildFixEditPreview(fs, e)
				if err != nil {
					continue
				}
				fmt.Fprintln(w, "    preview:")
				for _, l := range preview.before {
					fmt.Fprintf(w, "      - %s\n", l)
				}
				for _, l := range preview.after {
					fmt.Fprintf(w, "      %s\n", pal.paint(pal.fix, "+ "+l))
				}
			}
		}
	}
}

// location renders "path:line:col", or just the path when the span has no
// resolvable file.
func location(fs *source.FileSet, file *source.File, sp source.Span, mode PathMode) string {
	path := formatPath(fs, file, mode)
	if file == nil {
		return path
	}
	lc := file.LineCol(min(sp.Start, file.Len()))
	return fmt.Sprintf("%s:%d:%d", path, lc.Line, lc.Col)
}

func writeSnippet(w io.Writer, file *source.File, sp source.Span, opts PrettyOpts, pal palette, sevColor *color.Color) {
	start := file.LineCol(min(sp.Start, file.Len()))
	end := file.LineCol(min(sp.End, file.Len()))
	lines := uint32(len(file.LineIdx()) + 1)

	ctx := uint32(max(opts.Context, 0))
	first := start.Line - min(ctx, start.Line-1)
	last := min(start.Line+ctx, lines)
	gw := len(strconv.FormatUint(uint64(last), 10))

	for ln := first; ln <= last; ln++ {
		text := clip(expandTabs(file.GetLine(ln)), opts.Width)
		fmt.Fprintf(w, " %s %s\n", pal.paint(pal.gutter, fmt.Sprintf("%*d |", gw, ln)), text)
		if ln != start.Line {
			continue
		}
		pad, width := caretGeometry(file.GetLine(ln), start, end)
		caret := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, " %s %s%s\n",
			pal.paint(pal.gutter, strings.Repeat(" ", gw)+" |"),
			strings.Repeat(" ", pad),
			pal.paint(sevColor, caret),
		)
	}
}

// caretGeometry returns the display column of the span start within line and
// the width of the underline. Multi-line spans are underlined to the end of
// the first line.
func caretGeometry(line string, start, end source.LineCol) (pad, width int) {
	from := min(int(start.Col)-1, len(line))
	to := len(line)
	if end.Line == start.Line {
		to = min(max(int(end.Col)-1, from), len(line))
	}
	pad = runewidth.StringWidth(expandTabs(line[:from]))
	width = max(runewidth.StringWidth(expandTabs(line[from:to])), 1)
	return pad, width
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func clip(s string, width uint8) string {
	if width == 0 || runewidth.StringWidth(s) <= int(width) {
		return s
	}
	return runewidth.Truncate(s, int(width), "…")
}

// Short prints one line per diagnostic:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) {
	for _, d := range bag.Items() {
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			location(fs, fileOf(fs, d.Primary), d.Primary, mode),
			d.Severity, d.Code.ID(), d.Message)
	}
}
