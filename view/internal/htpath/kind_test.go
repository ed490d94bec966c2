package htpath

import (
	"testing"
)

func TestGetFileKindByExt(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{"md", KindMarkdown},
		{".md", KindMarkdown},
		{"MD", KindMarkdown},
		{"markdown", KindMarkdown},
		{"html", KindHtml},
		{"htm", KindHtml},
		{"txt", KindText},
		{"csv", KindText},
		{"jpg", KindBinary},
		{"", KindBinary},
	}

	for _, tc := range tests {
		if got := GetFileKindByExt(tc.ext); got != tc.want {
			t.Errorf("GetFileKindByExt(%q) = %q, want %q",
				tc.ext, got, tc.want)
		}
	}
}

func TestSetExt(t *testing.T) {
	if err := SetMarkdownExt("mdown"); err != nil {
		t.Fatal(err)
	}
	if got := GetFileKindByExt("mdown"); got != KindMarkdown {
		t.Errorf("registered extension not found: %q", got)
	}

	if err := SetHtmlExt(".xhtml"); err != nil {
		t.Fatal(err)
	}
	if got := GetFileKindByExt("xhtml"); got != KindHtml {
		t.Errorf("registered extension not found: %q", got)
	}

	for _, bad := range []string{"", "no spaces", "no/slash", "Ünicode"} {
		if err := SetTextExt(bad); err != ErrBadExt {
			t.Errorf("SetTextExt(%q) = %v, want ErrBadExt", bad, err)
		}
	}
}
