// Package render is the content rendering pipeline: a
// lightweight-markup-to-HTML transformer with custom embed syntax.
//
// A Convert call protects existing block HTML behind opaque tokens,
// reconstructs lists, applies the ordered rule table, wraps
// paragraphs, and restores the protected regions.  The pipeline never
// fails on malformed input; it degrades to literal or empty output.
package render

import (
	"regexp"
	"strings"
)

type Renderer struct {
	cfg    *RenderConfig
	passes []pass
	tmpl   *TmplTable
	em     *Embedder

	ref_kind_reg *regexp.Regexp
}

func New(cfg *RenderConfig) *Renderer {
	if cfg == nil {
		cfg = NewRenderConfigDefault()
	}

	rules := cfg.Embed.Rules.Value
	if rules == nil {
		rules = (*EmbedRules)(nil).MakeNew()
	}
	tmpl := cfg.Tmpl.Table.Value
	if tmpl == nil {
		tmpl = DefaultTmplTable
	}

	var site_ids []string
	for _, p := range rules.Platform {
		site_ids = append(site_ids, p.SiteId)
		site_ids = append(site_ids, p.Alias...)
	}

	passes, ref_kind_reg := newPasses(site_ids)

	return &Renderer{
		cfg:          cfg,
		passes:       passes,
		tmpl:         tmpl,
		em:           NewEmbedder(rules, tmpl),
		ref_kind_reg: ref_kind_reg,
	}
}

var nl_reg = regexp.MustCompile(`\r\n?`)
var para_reg = regexp.MustCompile(`\n[ \t]*\n+`)

// Convert renders one document.  All per-call state lives on the
// stack, so a Renderer may be shared by concurrent renders.
func (rz *Renderer) Convert(src string) string {
	text := nl_reg.ReplaceAllString(src, "\n")

	guard := NewGuard(rz.cfg.Protect...)
	text = guard.Protect(text)

	text = FormatLists(text)

	rc := &renderCtx{rz: rz, ids: NewSafeIDs()}
	for _, p := range rz.passes {
		text = p.run(rc, text)
	}

	// generated block structure is protected too, so paragraph
	// wrapping only ever sees running text
	text = guard.Protect(text)

	text = makeParagraphs(text)

	return guard.Restore(text)
}

// makeParagraphs replaces blank-line runs with paragraph boundaries
// and wraps the whole result when it is not already a block and holds
// no protected region.
func makeParagraphs(text string) string {
	text = strings.TrimSpace(text)
	text = para_reg.ReplaceAllString(text, "</p>\n<p>")

	if !strings.HasPrefix(text, "<p") && !HasProtected(text) {
		text = "<p>" + text + "</p>"
	}

	return text
}
