package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	cmhtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

var hl_formatter = cmhtml.New(
	cmhtml.WithClasses(true),
	cmhtml.ClassPrefix("chrm-"),
)

// highlightCode renders a fenced code block through chroma when the
// info string names a known lexer.  Any failure falls back to the
// plain escaped code path.
func highlightCode(lang, code string) (string, bool) {
	lx := lexers.Get(lang)
	if lx == nil {
		return "", false
	}
	lx = chroma.Coalesce(lx)

	it, err := lx.Tokenise(nil, code)
	if err != nil {
		return "", false
	}

	var b strings.Builder
	if err := hl_formatter.Format(&b, styles.Fallback, it); err != nil {
		return "", false
	}

	return b.String(), true
}
