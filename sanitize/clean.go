package sanitize

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	xhtml "golang.org/x/net/html"
)

// Cleanup strips document cruft that pasted or imported HTML drags
// along: doctypes, XML prologues, comments, CDATA, and office-suite
// namespace tags and styles.  Code samples are pulled out first so
// none of this can touch them.

var cleanup_regs = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<!DOCTYPE[^>]*>`),
	regexp.MustCompile(`(?is)<\?xml.*?\?>`),
	regexp.MustCompile(`(?s)<!--.*?-->`),
	regexp.MustCompile(`(?s)<!\[CDATA\[.*?\]\]>`),
	regexp.MustCompile(`(?is)<xml[^>]*>.*?</xml>`),
	regexp.MustCompile(`(?is)</?[ovwxp]:[^>]*>`),
	regexp.MustCompile(`(?i)\s*mso-[^:;"']+:[^;"']+;?`),
	regexp.MustCompile(`(?i)\s*class="?Mso[a-zA-Z0-9]*"?`),
}

func cleanup(text string) string {
	for _, re := range cleanup_regs {
		text = re.ReplaceAllString(text, "")
	}
	return text
}

const code_mark = "\x00"

type codeRegion struct {
	tok   string
	attrs string
	text  string
}

var code_reg = regexp.MustCompile(`(?is)<code([^>]*)>(.*?)</code\s*>`)

// protectCode extracts <code> regions, attributes included, behind
// inert tokens.
func protectCode(text string) (string, []codeRegion) {
	var regions []codeRegion

	text = code_reg.ReplaceAllStringFunc(text, func(s string) string {
		m := code_reg.FindStringSubmatch(s)
		tok := code_mark + fmt.Sprintf("code%d", len(regions)) + code_mark
		regions = append(regions, codeRegion{
			tok:   tok,
			attrs: m[1],
			text:  m[2],
		})
		return tok
	})

	return text, regions
}

// restoreCode re-wraps every protected region with its original
// attributes.
func restoreCode(text string, regions []codeRegion) string {
	for _, cr := range regions {
		text = strings.Replace(text, cr.tok,
			"<code"+cr.attrs+">"+cr.text+"</code>", 1)
	}
	return text
}

var uri_tag_reg = regexp.MustCompile(`<[^>]*>?`)
var js_scheme_reg = regexp.MustCompile(`(?i)^[\s]*j[\s]*a[\s]*v[\s]*a[\s]*s[\s]*c[\s]*r[\s]*i[\s]*p[\s]*t[\s]*:`)

// CleanUri normalizes a URI-valued attribute: percent and entity
// decoding (so encoded schemes cannot smuggle through), embedded tag
// removal, and javascript: scheme stripping.
func CleanUri(val string) string {
	val = strings.TrimSpace(val)

	for i := 0; i < 3; i++ {
		dec, err := url.QueryUnescape(val)
		if err != nil || dec == val {
			break
		}
		val = dec
	}

	val = xhtml.UnescapeString(val)
	val = uri_tag_reg.ReplaceAllString(val, "")

	val = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, val)

	for js_scheme_reg.MatchString(val) {
		val = js_scheme_reg.ReplaceAllString(val, "")
	}

	return strings.TrimSpace(val)
}
