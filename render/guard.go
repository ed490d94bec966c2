package render

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Guard hides complete block-level tag regions behind opaque tokens so
// later passes cannot rewrite their interior.  A fresh Guard is made for
// every Convert call; tokens map 1:1 to stored originals.
//
// An unterminated region (open tag with no matching close) never
// matches and stays visible to later passes.
type Guard struct {
	tags []string

	toks []string
	orig []string
}

const guard_mark = "\x00"

// DefaultGuardTags are the block containers protected before any
// formatting pass runs.
var DefaultGuardTags = []string{
	"p", "ul", "ol", "pre", "code", "table",
	"figure", "figcaption", "address", "details",
	"span", "embed", "video", "audio", "textarea", "input",
}

var guard_reg_cache = map[string]*regexp.Regexp{}
var guard_reg_mtx sync.Mutex

func guard_reg(tag string) *regexp.Regexp {
	guard_reg_mtx.Lock()
	defer guard_reg_mtx.Unlock()

	if re, ok := guard_reg_cache[tag]; ok {
		return re
	}

	re := regexp.MustCompile(
		`(?is)<` + tag + `(?:\s[^<>]*)?>.*?</` + tag + `\s*>`)
	guard_reg_cache[tag] = re
	return re
}

// NewGuard makes a Guard for the given tag set, or for DefaultGuardTags
// when no tags are given.
func NewGuard(tags ...string) *Guard {
	if len(tags) == 0 {
		tags = DefaultGuardTags
	}
	return &Guard{tags: tags}
}

// Protect replaces every non-overlapping top-level tag region with an
// opaque token.
func (g *Guard) Protect(text string) string {
	for _, tag := range g.tags {
		re := guard_reg(tag)
		text = re.ReplaceAllStringFunc(text, func(s string) string {
			tok := guard_mark + fmt.Sprintf("g%d", len(g.toks)) + guard_mark
			g.toks = append(g.toks, tok)
			g.orig = append(g.orig, s)
			return tok
		})
	}

	return text
}

// Restore replaces every token with its stored original.  Regions
// protected later may contain earlier tokens, so replacement loops
// until the text holds no token at all.
func (g *Guard) Restore(text string) string {
	for strings.Contains(text, guard_mark) {
		changed := false
		for i, tok := range g.toks {
			if !strings.Contains(text, tok) {
				continue
			}
			text = strings.ReplaceAll(text, tok, g.orig[i])
			changed = true
		}
		if !changed {
			break
		}
	}

	return text
}

// HasProtected reports whether text still carries guard tokens.
func HasProtected(text string) bool {
	return strings.Contains(text, guard_mark)
}
