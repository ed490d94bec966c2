package render

import (
	"testing"
)

func TestEscapeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a < b > c", "a &lt; b &gt; c"},
		{"x & y", "x &amp; y"},
		{"&amp; stays", "&amp; stays"},
		{"&#34; stays", "&#34; stays"},
		{`"quoted"`, "&#34;quoted&#34;"},
		{`back\slash`, "back&#92;slash"},
		{"café", "caf&#233;"},
	}

	for _, tc := range tests {
		if got := EscapeCode(tc.in); got != tc.want {
			t.Errorf("EscapeCode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEscapeCode_Idempotent(t *testing.T) {
	inputs := []string{
		"a < b & c",
		"&lt;already&gt;",
		"mixed &amp; raw &",
		"plain text",
	}

	for _, in := range inputs {
		once := EscapeCode(in)
		if twice := EscapeCode(once); twice != once {
			t.Errorf("EscapeCode not idempotent on %q: %q vs %q",
				in, once, twice)
		}
	}
}

func TestEscapeAttr(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`say "hi"`, "say &#34;hi&#34;"},
		{"a & b", "a &amp; b"},
		{"&quot;kept", "&quot;kept"},
		{"no change", "no change"},
	}

	for _, tc := range tests {
		if got := EscapeAttr(tc.in); got != tc.want {
			t.Errorf("EscapeAttr(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSafeIDs(t *testing.T) {
	ids := NewSafeIDs()

	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Hello World", "hello-world-1"},
		{"Hello World", "hello-world-2"},
		{"C++ FAQ!", "c-faq"},
		{"  spaced  out  ", "spaced-out"},
		{"!!!", "section"},
		{"Ｈｅｌｌｏ", "hello"},
	}

	for _, tc := range tests {
		if got := ids.Generate(tc.in); got != tc.want {
			t.Errorf("Generate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
