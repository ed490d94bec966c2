package render

import (
	"regexp"
	"strconv"
)

// The transformer is a fixed, ordered list of passes applied once each
// over the whole document.  Order is a first-class invariant: images
// and links run before emphasis, headings before paragraph wrapping,
// references after the plain link pass.  A later pass never re-parses
// text an earlier pass emitted, except where its pattern happens to
// match emitted markup; that interaction is part of the contract and
// is left as is.

type pass struct {
	name string
	run  func(rc *renderCtx, text string) string
}

type renderCtx struct {
	rz  *Renderer
	ids *SafeIDs
}

func rxPass(name, pattern string,
	h func(rc *renderCtx, m []string) string) pass {
	re := regexp.MustCompile(pattern)

	return pass{
		name: name,
		run: func(rc *renderCtx, text string) string {
			return re.ReplaceAllStringFunc(text, func(s string) string {
				return h(rc, re.FindStringSubmatch(s))
			})
		},
	}
}

const refKindFixed = "ref|footnote|figure|audio|video"

func newPasses(site_ids []string) ([]pass, *regexp.Regexp) {
	ref_kinds := refKindFixed
	for _, id := range site_ids {
		ref_kinds += "|" + regexp.QuoteMeta(id)
	}
	ref_kind_reg := regexp.MustCompile(`^(?:` + ref_kinds + `)(?:[:"]|$)`)

	return []pass{
		rxPass("image",
			`!\[([^\]\[]*)\]\([ \t]*([^")\s]+)(?:[ \t]+"([^"]*)")?[ \t]*\)`,
			func(rc *renderCtx, m []string) string {
				img := `<img src="` + EscapeAttr(m[2]) +
					`" alt="` + EscapeAttr(m[1]) + `"`
				if m[3] != "" {
					img += ` title="` + EscapeAttr(m[3]) + `"`
				}
				return img + ` />`
			}),

		rxPass("link",
			`\[([^\]\[]*)\]\([ \t]*([^")\s]+)(?:[ \t]+"([^"]*)")?[ \t]*\)`,
			func(rc *renderCtx, m []string) string {
				// media/platform references keep their text for
				// the reference pass further down the table
				if rc.rz.ref_kind_reg.MatchString(m[1]) {
					return m[0]
				}

				a := `<a href="` + EscapeAttr(m[2]) + `"`
				if m[3] != "" {
					a += ` title="` + EscapeAttr(m[3]) + `"`
				}
				return a + `>` + m[1] + `</a>`
			}),

		rxPass("emphasis",
			`(\*{1,3})([^*\n]+)(\*{1,3})`,
			func(rc *renderCtx, m []string) string {
				switch len(m[1]) {
				case 2:
					return "<strong>" + m[2] + "</strong>"
				case 3:
					return "<strong><em>" + m[2] + "</em></strong>"
				default:
					return "<em>" + m[2] + "</em>"
				}
			}),

		rxPass("delete",
			`~~([^~\n]+)~~`,
			func(rc *renderCtx, m []string) string {
				return "<del>" + m[1] + "</del>"
			}),

		rxPass("quote",
			`:"([^"\n]*)"`,
			func(rc *renderCtx, m []string) string {
				return "<q>" + m[1] + "</q>"
			}),

		rxPass("heading",
			`(?m)^(#{1,6}|={1,6})[ \t]*(.+?)[ \t]*$`,
			func(rc *renderCtx, m []string) string {
				n := strconv.Itoa(len(m[1]))
				if rc.rz.cfg.AutoIds {
					id := rc.ids.Generate(m[2])
					return "<h" + n + ` id="` + id + `">` +
						m[2] + "</h" + n + ">"
				}
				return "<h" + n + ">" + m[2] + "</h" + n + ">"
			}),

		rxPass("fenced code",
			"(?s)```[ \t]*([0-9a-zA-Z_+.-]*)[ \t]*\n(.*?)```",
			func(rc *renderCtx, m []string) string {
				if rc.rz.cfg.Highlight && m[1] != "" {
					if hl, ok := highlightCode(m[1], m[2]); ok {
						return hl
					}
				}
				return "<pre><code>" + EscapeCode(m[2]) + "</code></pre>"
			}),

		rxPass("inline code",
			"`([^`\n]+)`",
			func(rc *renderCtx, m []string) string {
				return "<code>" + EscapeCode(m[1]) + "</code>"
			}),

		rxPass("template span",
			`\{\{(.*?)\}\}`,
			func(rc *renderCtx, m []string) string {
				return rc.rz.tmpl.Render("template_span",
					map[string]string{"text": EscapeCode(m[1])})
			}),

		{name: "table", run: func(rc *renderCtx, text string) string {
			return FormatTables(text)
		}},

		rxPass("horizontal rule",
			`(?m)^[ \t]*[-_+]{4,}[ \t]*$`,
			func(rc *renderCtx, m []string) string {
				return "<hr />"
			}),

		rxPass("reference",
			`\[(`+ref_kinds+`)`+
				`(?::[ \t]*([^"\]\[()]*)|"([^"]*)")?`+
				`(?:\[([^\]\[]*)\])?\]?`+
				`\([ \t]*([^")\s]+)(?:[ \t]+"([^"]*)")?`+
				`(?:[ \t]+([^")]+))?[ \t]*\)\]?`,
			func(rc *renderCtx, m []string) string {
				kind := m[1]
				title := m[2]
				if title == "" {
					title = m[3]
				}
				caption := m[4]
				src := m[5]
				preview := m[6]
				tracks := m[7]

				em := rc.rz.em
				switch kind {
				case "ref", "footnote":
					// footnotes are a stub: render nothing
					return ""
				case "figure":
					return em.Figure(src, title, caption)
				case "audio":
					return em.Audio(src, title)
				case "video":
					return em.Video(src, title, preview, tracks)
				default:
					return em.Hosted(kind, src)
				}
			}),

		rxPass("wiki link",
			`\[([^|\]\[]+)\|([^\]\[]+)\]`,
			func(rc *renderCtx, m []string) string {
				return `<a href="` + EscapeAttr(m[1]) + `">` +
					m[2] + `</a>`
			}),
	}, ref_kind_reg
}
