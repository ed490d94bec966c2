// Package sanitize is a whitelist-driven HTML sanitizer.  Untrusted
// HTML is parsed into an attributed tag tree and re-serialized with
// only whitelisted structure; anything the schema does not name is
// dropped.  Malformed input never raises an error; tags that fail to
// match become literal text and the worst case is an empty tree.
package sanitize

import (
	"regexp"
	"strings"
)

// DefaultMaxDepth bounds tag tree recursion on adversarial input.
const DefaultMaxDepth = 20

// Tags that close themselves; they parse straight into leaf nodes.
var self_closing_tags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true,
	"embed": true, "hr": true, "img": true, "input": true,
	"link": true, "meta": true, "param": true, "source": true,
	"track": true, "wbr": true,
}

// TagNode is one node of the parsed tag tree.  A node holds either
// opaque text (text nodes and no-nest content) or child nodes, never
// both.
type TagNode struct {
	Name     string
	Attr     map[string]string
	Text     string
	Children []*TagNode

	leaf bool
}

type Sanitizer struct {
	schema   Schema
	maxDepth int
}

func New(schema Schema) *Sanitizer {
	if schema == nil {
		schema = *DefaultSchema
	}
	return &Sanitizer{schema: schema, maxDepth: DefaultMaxDepth}
}

// Sanitize runs the full chain: code protection, HTML cleanup, tag
// tree parse, whitelist build.
func (sn *Sanitizer) Sanitize(src string) string {
	text, regions := protectCode(src)
	text = cleanup(text)
	text = restoreCode(text, regions)

	var b strings.Builder
	sn.build(&b, sn.parse(text, 0))

	return b.String()
}

var open_tag_reg = regexp.MustCompile(
	`^<([a-zA-Z][a-zA-Z0-9]*)((?:\s+[^<>]*?)?)\s*(/?)>`)
var close_tag_reg = regexp.MustCompile(
	`^</[a-zA-Z][a-zA-Z0-9]*\s*>`)
var attr_reg = regexp.MustCompile(
	`([a-zA-Z][a-zA-Z0-9:_-]*)(?:\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'<>]+)))?`)

func parseAttrs(text string) map[string]string {
	attrs := map[string]string{}
	for _, m := range attr_reg.FindAllStringSubmatch(text, -1) {
		val := m[2]
		if val == "" {
			val = m[3]
		}
		if val == "" {
			val = m[4]
		}
		attrs[strings.ToLower(m[1])] = val
	}
	return attrs
}

// parse tokenizes src into a node list.  Stray close tags are
// consumed, anything else that fails to parse as a tag stays literal
// text.  Past maxDepth the subtree comes back empty.
func (sn *Sanitizer) parse(src string, depth int) []*TagNode {
	if depth >= sn.maxDepth {
		return nil
	}

	var nodes []*TagNode
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			nodes = append(nodes, &TagNode{Text: text.String()})
			text.Reset()
		}
	}

	pos := 0
	for pos < len(src) {
		lt := strings.IndexByte(src[pos:], '<')
		if lt < 0 {
			text.WriteString(src[pos:])
			break
		}
		text.WriteString(src[pos : pos+lt])
		pos += lt

		if m := close_tag_reg.FindString(src[pos:]); m != "" {
			// unmatched close tag, dropped
			pos += len(m)
			continue
		}

		m := open_tag_reg.FindStringSubmatch(src[pos:])
		if m == nil {
			// not a tag, keep the "<" literal
			text.WriteByte('<')
			pos++
			continue
		}

		name := strings.ToLower(m[1])
		attrs := parseAttrs(m[2])
		tag_len := len(m[0])

		if self_closing_tags[name] || m[3] == "/" {
			flush()
			nodes = append(nodes,
				&TagNode{Name: name, Attr: attrs, leaf: true})
			pos += tag_len
			continue
		}

		content_end, tail, ok := findClose(src[pos+tag_len:], name)
		if !ok {
			// unterminated: the tag text stays literal
			text.WriteString(m[0])
			pos += tag_len
			continue
		}

		content := src[pos+tag_len : pos+tag_len+content_end]
		flush()

		node := &TagNode{Name: name, Attr: attrs}
		if sn.schema.NoNest(name) {
			node.Text = content
		} else {
			node.Children = sn.parse(content, depth+1)
		}
		nodes = append(nodes, node)

		pos += tag_len + tail
	}
	flush()

	return nodes
}

// findClose locates the matching close tag for name, counting nested
// same-name opens.  It returns the content end offset and the offset
// just past the close tag.
func findClose(src, name string) (int, int, bool) {
	low := strings.ToLower(src)
	open_mark := "<" + name
	close_mark := "</" + name

	depth := 1
	pos := 0
	for pos < len(low) {
		lt := strings.IndexByte(low[pos:], '<')
		if lt < 0 {
			break
		}
		pos += lt

		if strings.HasPrefix(low[pos:], close_mark) {
			rest := low[pos+len(close_mark):]
			j := 0
			for j < len(rest) && is_space(rest[j]) {
				j++
			}
			if j < len(rest) && rest[j] == '>' {
				tail := pos + len(close_mark) + j + 1
				depth--
				if depth == 0 {
					return pos, tail, true
				}
				pos = tail
				continue
			}
		} else if strings.HasPrefix(low[pos:], open_mark) &&
			len(low) > pos+len(open_mark) &&
			!is_alnum(low[pos+len(open_mark)]) {
			gt := strings.IndexByte(low[pos:], '>')
			if gt < 0 {
				break
			}
			if low[pos+gt-1] != '/' {
				depth++
			}
			pos += gt + 1
			continue
		}

		pos++
	}

	return 0, 0, false
}

func is_space(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func is_alnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

// build re-serializes the whitelisted part of the tree.  Attributes
// are emitted in schema order, URI attributes get URI cleaning, all
// other values plain escaping.
func (sn *Sanitizer) build(b *strings.Builder, nodes []*TagNode) {
	for _, node := range nodes {
		if node.Name == "" {
			b.WriteString(escapeText(node.Text))
			continue
		}

		rule, ok := sn.schema[node.Name]
		if !ok {
			// not whitelisted: the node and its content are gone
			continue
		}

		b.WriteByte('<')
		b.WriteString(node.Name)
		for _, attr := range rule.Attributes {
			val, has := node.Attr[attr]
			if !has {
				continue
			}
			if rule.IsUriAttr(attr) {
				val = CleanUri(val)
			}
			b.WriteByte(' ')
			b.WriteString(attr)
			b.WriteString(`="`)
			b.WriteString(escapeAttr(val))
			b.WriteByte('"')
		}

		if node.leaf || rule.SelfClosing {
			b.WriteString(" />")
			continue
		}

		b.WriteByte('>')
		if rule.NoNest {
			b.WriteString(escapeText(node.Text))
		} else {
			sn.build(b, node.Children)
		}
		b.WriteString("</")
		b.WriteString(node.Name)
		b.WriteByte('>')
	}
}

var entity_reg = regexp.MustCompile(
	`^&(?:#[0-9]{1,7}|#[xX][0-9a-fA-F]{1,6}|[a-zA-Z][a-zA-Z0-9]{1,31});`)

// escapeText escapes text content; an ampersand already starting a
// character reference is kept, which makes escaping idempotent.
func escapeText(text string) string {
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
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

func escapeAttr(text string) string {
	return strings.ReplaceAll(escapeText(text), `"`, "&#34;")
}
