package render

import (
	"fmt"
	"regexp"
	"strings"
)

// entity_reg matches a complete character reference at the start of a
// string.  An ampersand that begins one of these is already escaped and
// is left alone, which keeps escaping idempotent.
var entity_reg = regexp.MustCompile(
	`^&(?:#[0-9]{1,7}|#[xX][0-9a-fA-F]{1,6}|[a-zA-Z][a-zA-Z0-9]{1,31});`)

// EscapeCode escapes code sample text for literal output: ampersands
// (unless already a known entity), angle brackets, quotes, backslash,
// and all non-ASCII code points as numeric character references.
func EscapeCode(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for i, r := range text {
		switch {
		case r == '&':
			if entity_reg.MatchString(text[i:]) {
				b.WriteByte('&')
			} else {
				b.WriteString("&amp;")
			}
		case r == '<':
			b.WriteString("&lt;")
		case r == '>':
			b.WriteString("&gt;")
		case r == '"':
			b.WriteString("&#34;")
		case r == '\'':
			b.WriteString("&#39;")
		case r == '\\':
			b.WriteString("&#92;")
		case r > 0x7f:
			fmt.Fprintf(&b, "&#%d;", r)
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

// EscapeAttr escapes an attribute value for double-quoted emission.
func EscapeAttr(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for i, r := range text {
		switch r {
		case '&':
			if entity_reg.MatchString(text[i:]) {
				b.WriteByte('&')
			} else {
				b.WriteString("&amp;")
			}
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&#34;")
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}
