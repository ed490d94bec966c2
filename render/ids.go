package render

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// SafeIDs generates de-duplicated element IDs from heading text.
// One instance is used per Convert call.
type SafeIDs struct {
	used map[string]int
}

func NewSafeIDs() *SafeIDs {
	return &SafeIDs{used: map[string]int{}}
}

// Generate folds text to NFKC, keeps letters and digits, and joins the
// rest with single hyphens.  A repeated ID gets a numeric suffix.
func (ids *SafeIDs) Generate(text string) string {
	text = norm.NFKC.String(text)

	var b strings.Builder
	dash := true
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
			dash = false
		default:
			if !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}

	id := strings.Trim(b.String(), "-")
	if id == "" {
		id = "section"
	}

	n := ids.used[id]
	ids.used[id] = n + 1
	if n > 0 {
		id = id + "-" + strconv.Itoa(n)
	}

	return id
}
