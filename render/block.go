package render

import (
	"regexp"
	"strings"
)

// List reconstruction works on one explicit stack of open frames.
// Frames are monotonically increasing in indent from bottom to top;
// closing a frame emits its closing tag exactly once.  At identical
// indent with conflicting markers, the most recent open frame wins
// until a marker of the other kind shows up.

type listFrame struct {
	ordered bool
	indent  int
}

var list_item_reg = regexp.MustCompile(
	`^([ \t]*)(?:([-+*])|([0-9]+)\.)[ \t]+(.*)$`)

func indentWidth(ws string) int {
	n := 0
	for _, r := range ws {
		if r == '\t' {
			n += 4
		} else {
			n++
		}
	}
	return n
}

func listTag(ordered bool) (string, string) {
	if ordered {
		return "<ol>", "</ol>"
	}
	return "<ul>", "</ul>"
}

// FormatLists converts indentation-based list lines into nested
// <ul>/<ol>/<li> structure.  Non-list lines close the whole stack and
// pass through untouched.
func FormatLists(text string) string {
	var out []string
	var run strings.Builder
	var stack []listFrame

	flush := func() {
		for i := len(stack) - 1; i >= 0; i-- {
			_, close_tag := listTag(stack[i].ordered)
			run.WriteString(close_tag)
		}
		stack = stack[:0]
		if run.Len() > 0 {
			out = append(out, run.String())
			run.Reset()
		}
	}

	for _, line := range strings.Split(text, "\n") {
		m := list_item_reg.FindStringSubmatch(line)
		if m == nil {
			flush()
			out = append(out, line)
			continue
		}

		indent := indentWidth(m[1])
		ordered := m[2] == ""
		content := m[4]

		for len(stack) > 0 && stack[len(stack)-1].indent > indent {
			_, close_tag := listTag(stack[len(stack)-1].ordered)
			run.WriteString(close_tag)
			stack = stack[:len(stack)-1]
		}

		if len(stack) > 0 {
			top := stack[len(stack)-1]
			if top.indent == indent && top.ordered != ordered {
				_, close_tag := listTag(top.ordered)
				run.WriteString(close_tag)
				stack = stack[:len(stack)-1]
			}
		}

		if len(stack) == 0 || stack[len(stack)-1].indent < indent {
			open_tag, _ := listTag(ordered)
			run.WriteString(open_tag)
			stack = append(stack, listFrame{ordered: ordered, indent: indent})
		}

		run.WriteString("<li>")
		run.WriteString(content)
		run.WriteString("</li>")
	}
	flush()

	return strings.Join(out, "\n")
}

// Table lines.  A border line is drawn with "+", "-" and "|"; a row
// line is pipe-delimited.  The first data row of a block becomes the
// header row.
var table_border_reg = regexp.MustCompile(`^[ \t]*\+[-+| ]*\+?[ \t]*$`)
var table_row_reg = regexp.MustCompile(`^[ \t]*\|.*$`)

// FormatTables converts runs of table lines into a single <table> per
// run.
func FormatTables(text string) string {
	lines := strings.Split(text, "\n")
	var out []string

	var rows []string
	flush := func() {
		if len(rows) == 0 {
			return
		}
		out = append(out, buildTable(rows))
		rows = nil
	}

	for _, line := range lines {
		switch {
		case table_border_reg.MatchString(line):
			// skip, keeps the block open
		case table_row_reg.MatchString(line):
			rows = append(rows, line)
		case len(rows) > 0 && strings.TrimSpace(line) == "":
			// blank lines inside a block are skipped
		default:
			flush()
			out = append(out, line)
		}
	}
	flush()

	return strings.Join(out, "\n")
}

func buildTable(rows []string) string {
	var b strings.Builder
	b.WriteString("<table>")

	for i, row := range rows {
		cell_tag := "td"
		if i == 0 {
			cell_tag = "th"
		}

		b.WriteString("<tr>")
		for _, cell := range splitTableRow(row) {
			b.WriteString("<" + cell_tag + ">")
			b.WriteString(strings.TrimSpace(cell))
			b.WriteString("</" + cell_tag + ">")
		}
		b.WriteString("</tr>")
	}

	b.WriteString("</table>")
	return b.String()
}

// splitTableRow splits on unescaped pipes; "\|" is a literal pipe.
// Empty edge cells from leading/trailing delimiters are dropped.
func splitTableRow(row string) []string {
	row = strings.TrimSpace(row)

	var cells []string
	var cur strings.Builder
	esc := false
	for _, r := range row {
		switch {
		case esc:
			if r != '|' {
				cur.WriteByte('\\')
			}
			cur.WriteRune(r)
			esc = false
		case r == '\\':
			esc = true
		case r == '|':
			cells = append(cells, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if esc {
		cur.WriteByte('\\')
	}
	cells = append(cells, cur.String())

	if len(cells) > 0 && strings.TrimSpace(cells[0]) == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && strings.TrimSpace(cells[len(cells)-1]) == "" {
		cells = cells[:len(cells)-1]
	}

	return cells
}
