package render

import (
	"strings"
)

// Embedder turns media references into rendered fragments.  Resolution
// never hard-fails: a reference that matches nothing renders as inert
// bracket text.
type Embedder struct {
	rules *EmbedRules
	tmpl  *TmplTable
}

func NewEmbedder(rules *EmbedRules, tmpl *TmplTable) *Embedder {
	if rules == nil {
		rules = (*EmbedRules)(nil).MakeNew()
	}
	if tmpl == nil {
		tmpl = DefaultTmplTable
	}
	return &Embedder{rules: rules, tmpl: tmpl}
}

// Audio renders an uploaded audio reference.
func (em *Embedder) Audio(src, title string) string {
	return em.tmpl.Render("audio_embed", map[string]string{
		"src":   EscapeAttr(src),
		"title": EscapeAttr(title),
	})
}

// Video renders an uploaded video reference.  A non-empty preview
// selects the poster variant; tracks is the raw caption-track list.
func (em *Embedder) Video(src, title, preview, tracks string) string {
	name := "video_embed"
	vars := map[string]string{
		"src":      EscapeAttr(src),
		"title":    EscapeAttr(title),
		"captions": em.CaptionTracks(tracks),
	}
	if preview != "" {
		name = "video_with_preview_embed"
		vars["preview"] = EscapeAttr(preview)
	}

	return em.tmpl.Render(name, vars)
}

// Figure renders an uploaded figure reference.
func (em *Embedder) Figure(src, title, caption string) string {
	return em.tmpl.Render("figure_embed", map[string]string{
		"src":     EscapeAttr(src),
		"title":   EscapeAttr(title),
		"caption": caption,
	})
}

// CaptionTracks renders a colon-delimited list of comma-separated
// (source[, language[, is_default]]) tuples into caption-track
// fragments.
func (em *Embedder) CaptionTracks(list string) string {
	list = strings.TrimSpace(list)
	if list == "" {
		return ""
	}

	var b strings.Builder
	for _, tuple := range strings.Split(list, ":") {
		fields := strings.Split(tuple, ",")

		src := strings.TrimSpace(fields[0])
		if src == "" {
			continue
		}

		lang := ""
		if len(fields) > 1 {
			lang = strings.TrimSpace(fields[1])
		}
		is_default := len(fields) > 2 && strings.TrimSpace(fields[2]) != ""

		vars := map[string]string{"src": EscapeAttr(src)}
		if is_default {
			vars["default"] = "default"
		}

		name := "caption_track_embed"
		if lang != "" {
			name = "caption_track_lang_embed"
			vars["lang"] = EscapeAttr(lang)
		}

		b.WriteString(em.tmpl.Render(name, vars))
	}

	return b.String()
}

// Hosted resolves a third-party hosting reference by trying the
// platform's patterns in order.  No match yields literal bracket text.
func (em *Embedder) Hosted(site_id, url string) string {
	url = strings.TrimSpace(url)

	p := em.rules.Find(site_id)
	if p != nil {
		for _, re := range p.Match {
			m := re.FindStringSubmatch(url)
			if m == nil {
				continue
			}

			vars := map[string]string{}
			for gi, gname := range re.SubexpNames() {
				if gname == "" || gi >= len(m) {
					continue
				}
				vars[gname] = EscapeAttr(m[gi])
			}

			return em.tmpl.Render(p.Tmpl, vars)
		}
	}

	return "[" + site_id + " " + url + "]"
}
