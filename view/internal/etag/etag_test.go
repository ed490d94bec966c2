package etag

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMake(t *testing.T) {
	tag := Make([]byte("a"), []byte("b"))

	if len(tag) != 34 || tag[0] != '"' || tag[len(tag)-1] != '"' {
		t.Errorf("malformed tag: %q", tag)
	}
	if tag != Make([]byte("a"), []byte("b")) {
		t.Error("tag is not deterministic")
	}
	if tag == Make([]byte("a"), []byte("c")) {
		t.Error("different parts yield the same tag")
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		in       string
		want     []string
		want_any bool
	}{
		{`"a1"`, []string{`"a1"`}, false},
		{`"a1", "b2"`, []string{`"a1"`, `"b2"`}, false},
		{`W/"a1", "b2"`, []string{`"a1"`, `"b2"`}, false},
		{`*`, nil, true},
		{` * `, nil, true},
		{`unquoted`, nil, false},
		{``, nil, false},
	}

	for _, tc := range tests {
		got, got_any := Split(tc.in)
		if got_any != tc.want_any {
			t.Errorf("Split(%q) any = %v, want %v",
				tc.in, got_any, tc.want_any)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Split(%q) mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
}
