package view_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/cypnk/perlite/upath"
	"github.com/cypnk/perlite/view"
)

const testTmpl = `<html><head><title>{{.Title}}</title></head>` +
	`<body>{{.Text}}` +
	`{{if .Options.DirectoryView}}{{range .Files}}` +
	`<i class="{{file_type .Name}}">{{.Name}}</i>{{end}}{{end}}` +
	`</body></html>`

func testFS() fstest.MapFS {
	mod := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	return fstest.MapFS{
		"docs/README.md": &fstest.MapFile{
			Data:    []byte("# Title\n\nbody **x**"),
			ModTime: mod,
		},
		"docs/page.html": &fstest.MapFile{
			Data: []byte(`<p onclick="evil()">hi</p>` +
				`<script>alert(1)</script>`),
			ModTime: mod,
		},
		"docs/note.txt": &fstest.MapFile{
			Data:    []byte("plain note"),
			ModTime: mod,
		},
		"docs/raw.bin": &fstest.MapFile{
			Data:    []byte{0x00, 0x01, 0x02},
			ModTime: mod,
		},
		"tmpl/view.tmpl": &fstest.MapFile{
			Data:    []byte(testTmpl),
			ModTime: mod,
		},
	}
}

func newTestView(t *testing.T) *view.View {
	t.Helper()

	cfg := &view.ViewConfig{
		SocketType:   "tcp",
		SocketPath:   "127.0.0.1:0",
		DocumentRoot: upath.MustNew("/docs"),
		TmplPaths:    []upath.UPath{upath.MustNew("/tmpl/view.tmpl")},
		SystemFS:     testFS(),
	}

	v, err := view.NewView(cfg)
	if err != nil {
		t.Fatal(err)
	}

	return v
}

func TestDump_Markdown(t *testing.T) {
	v := newTestView(t)

	var out, eout bytes.Buffer
	v.Dump(&out, &eout, "/")

	if eout.Len() != 0 {
		t.Fatalf("dump errors: %s", eout.String())
	}

	got := out.String()
	for _, want := range []string{
		`<h1 id="title">Title</h1>`,
		"<strong>x</strong>",
		"<title>Title</title>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %s in dump: %s", want, got)
		}
	}
}

func TestDump_HtmlSanitized(t *testing.T) {
	v := newTestView(t)

	var out, eout bytes.Buffer
	v.Dump(&out, &eout, "/page.html")

	got := out.String()
	if strings.Contains(got, "onclick") || strings.Contains(got, "script") {
		t.Errorf("unsafe HTML survived: %s", got)
	}
	if !strings.Contains(got, "<p>hi</p>") {
		t.Errorf("sanitized body lost: %s", got)
	}
}

func TestDump_Text(t *testing.T) {
	v := newTestView(t)

	var out, eout bytes.Buffer
	v.Dump(&out, &eout, "/note.txt")

	if !strings.Contains(out.String(), "plain note") {
		t.Errorf("text body missing: %s", out.String())
	}
}

func TestDump_Binary(t *testing.T) {
	v := newTestView(t)

	var out, eout bytes.Buffer
	v.Dump(&out, &eout, "/raw.bin")

	if !bytes.Equal(out.Bytes(), []byte{0x00, 0x01, 0x02}) {
		t.Errorf("binary content changed: %v", out.Bytes())
	}
}

func TestDump_NotFound(t *testing.T) {
	v := newTestView(t)

	var out, eout bytes.Buffer
	v.Dump(&out, &eout, "/missing.md")

	if !strings.Contains(eout.String(), "404") {
		t.Errorf("expected 404 error: %s", eout.String())
	}
}

func TestHandler_DirectoryListing(t *testing.T) {
	v := newTestView(t)

	var out, eout bytes.Buffer
	v.Dump(&out, &eout, "/")

	got := out.String()
	for _, want := range []string{"README.md", "note.txt"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %s in listing: %s", want, got)
		}
	}
}

func TestHandler_OK(t *testing.T) {
	v := newTestView(t)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	v.Handler(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	if res.Header.Get("Etag") == "" {
		t.Error("missing Etag header")
	}
	if res.Header.Get("Last-Modified") == "" {
		t.Error("missing Last-Modified header")
	}
	if ct := res.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestHandler_NotModified(t *testing.T) {
	v := newTestView(t)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	v.Handler(rec, req)

	tag := rec.Result().Header.Get("Etag")
	if tag == "" {
		t.Fatal("no Etag on first response")
	}

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("If-None-Match", tag)
	rec = httptest.NewRecorder()
	v.Handler(rec, req)

	if code := rec.Result().StatusCode; code != http.StatusNotModified {
		t.Errorf("status = %d, want 304", code)
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	v := newTestView(t)

	req := httptest.NewRequest("POST", "/", nil)
	rec := httptest.NewRecorder()
	v.Handler(rec, req)

	if code := rec.Result().StatusCode; code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", code)
	}
}

func TestHandler_NotFound(t *testing.T) {
	v := newTestView(t)

	req := httptest.NewRequest("GET", "/missing.md", nil)
	rec := httptest.NewRecorder()
	v.Handler(rec, req)

	if code := rec.Result().StatusCode; code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", code)
	}
}

func TestNewView_BadConfig(t *testing.T) {
	cfg := &view.ViewConfig{
		SocketType: "carrier-pigeon",
		SocketPath: "x",
		SystemFS:   testFS(),
	}
	if _, err := view.NewView(cfg); err == nil {
		t.Error("bad socket type accepted")
	}

	cfg = &view.ViewConfig{
		SocketType: "tcp",
		SocketPath: "127.0.0.1:0",
		SystemFS:   testFS(),
	}
	if _, err := view.NewView(cfg); err == nil {
		t.Error("missing document root accepted")
	}
}

func TestTmplFileType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/", "dir-root"},
		{"", "dir-root"},
		{"sub/", "dir"},
		{"doc.md", "file-txt"},
		{"page.html", "file-txt"},
		{"note.txt", "file-txt"},
		{"image.jpg", "file"},
		{"noext", "file"},
		{".hidden", "file"},
	}

	for _, tc := range tests {
		if got := view.TmplFileType(tc.in); got != tc.want {
			t.Errorf("TmplFileType(%q) = %q, want %q",
				tc.in, got, tc.want)
		}
	}
}
