package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatLists(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "flat unordered",
			in:   "- a\n- b",
			want: "<ul><li>a</li><li>b</li></ul>",
		},
		{
			name: "flat ordered",
			in:   "1. a\n2. b",
			want: "<ol><li>a</li><li>b</li></ol>",
		},
		{
			name: "nested",
			in:   "- a\n- b\n  - c",
			want: "<ul><li>a</li><li>b</li><ul><li>c</li></ul></ul>",
		},
		{
			name: "nested closes back",
			in:   "- a\n  - b\n- c",
			want: "<ul><li>a</li><ul><li>b</li></ul><li>c</li></ul>",
		},
		{
			name: "type switch same indent",
			in:   "- a\n1. b",
			want: "<ul><li>a</li></ul><ol><li>b</li></ol>",
		},
		{
			name: "tab indent nests",
			in:   "- a\n\t- b",
			want: "<ul><li>a</li><ul><li>b</li></ul></ul>",
		},
		{
			name: "plain line closes stack",
			in:   "- a\nplain",
			want: "<ul><li>a</li></ul>\nplain",
		},
		{
			name: "non-list text untouched",
			in:   "no list here",
			want: "no list here",
		},
		{
			name: "plus and star markers",
			in:   "+ a\n* b",
			want: "<ul><li>a</li><li>b</li></ul>",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatLists(tc.in); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatTables(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "header and data row",
			in:   "| a | b |\n| c | d |",
			want: "<table><tr><th>a</th><th>b</th></tr>" +
				"<tr><td>c</td><td>d</td></tr></table>",
		},
		{
			name: "border lines skipped",
			in:   "+---+---+\n| a | b |\n+---+---+",
			want: "<table><tr><th>a</th><th>b</th></tr></table>",
		},
		{
			name: "non-table text untouched",
			in:   "plain text",
			want: "plain text",
		},
		{
			name: "two separate blocks",
			in:   "| a |\nx\n| b |",
			want: "<table><tr><th>a</th></tr></table>\nx\n" +
				"<table><tr><th>b</th></tr></table>",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatTables(tc.in); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSplitTableRow(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{`| a | b |`, []string{" a ", " b "}},
		{`a | b`, []string{"a ", " b"}},
		{`| a \| b |`, []string{" a | b "}},
		{`| one |`, []string{" one "}},
	}

	for _, tc := range tests {
		got := splitTableRow(tc.in)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("splitTableRow(%q) mismatch (-want +got):\n%s",
				tc.in, diff)
		}
	}
}
