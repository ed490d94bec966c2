package view

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"regexp"
	"time"

	"github.com/l4go/rpath"
	"github.com/l4go/task"
	"github.com/l4go/unifs"

	"github.com/cypnk/perlite/view/internal/dirview"
	"github.com/cypnk/perlite/view/internal/etag"
	"github.com/cypnk/perlite/view/internal/htpath"
	"github.com/cypnk/perlite/view/internal/links"
)

type tmplOptions struct {
	DirectoryView bool
	LocationNavi  string
}

type tmplParam struct {
	Options *tmplOptions

	Title     string
	Top       string
	Lib       string
	Path      string
	PathLinks []links.Link
	Text      string
	TextType  string
	Files     []*dirview.FileStamp
	IsOpen    bool
}

func (v *View) setCacheHeader(header Setter) {
	if v.CacheControl != "" {
		header.Set("Cache-Control", v.CacheControl)
	}
}

func (v *View) MakeEtag(t time.Time) string {
	tm := make([]byte, 8)
	binary.LittleEndian.PutUint64(tm, uint64(t.UnixMicro()))

	return etag.Make(v.TemplateTag, tm)
}

func isModified(hd Getter, org_tag string) bool {
	if_nmatch := hd.Get("If-None-Match")
	if if_nmatch == "" {
		return true
	}

	tags, any := etag.Split(if_nmatch)
	if any {
		return false
	}
	for _, tag := range tags {
		if tag == org_tag {
			return false
		}
	}

	return true
}

func (v *View) Handler(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "405 not supported "+r.Method+" method",
			http.StatusMethodNotAllowed)
		return
	}

	v.writeView(r.URL.Path, r.Header, NewHttpWriter(w, r))
}

// Dump renders one request path to out without a server.
func (v *View) Dump(out, eout io.Writer, req_path string) {
	req_path = rpath.Join("/", req_path)
	v.writeView(req_path, &DummyGetter{}, NewDumpWrite(out, eout))
}

func (v *View) writeView(req_path string, r_header Getter, w HttpWriter) {
	w_header := w.Header()

	htreq, ht_err := htpath.New(v.SystemFS,
		v.DocumentRoot.String(), req_path, v.IndexName)
	switch {
	case ht_err == nil:
	case ht_err == htpath.ErrBadRequestType:
		w.Error("400 bad request path", http.StatusBadRequest)
		return
	case os.IsNotExist(ht_err):
		w.Error("404 not found", http.StatusNotFound)
		return
	default:
		w.Error("500 file read error", http.StatusInternalServerError)
		return
	}
	if dir_mod, ok := v.DirViewStamp.DirModTime(htreq.Dir()); ok {
		htreq.UpdateModTime(dir_mod)
	}

	is_dir := htreq.IsDir()
	has_doc := htreq.HasDoc()

	var proc_type string
	var text_type string
	switch {
	case !has_doc && is_dir:
		proc_type = "dir"
	case htreq.Kind() == htpath.KindMarkdown:
		proc_type = "md"
	case htreq.Kind() == htpath.KindHtml:
		proc_type = "html"
	case v.TextViewMode != "raw" && htreq.Kind() == htpath.KindText:
		proc_type = "text"
		text_type = "plaintext"
	default:
		v.setCacheHeader(w_header)
		w.ServeFile(v.SystemFS, htreq.FullDoc())
		return
	}

	dir_view := true
	is_open := is_dir
	switch v.DirectoryViewMode {
	case "none":
		dir_view = false
		is_open = false
	case "autoindex":
		dir_view = is_dir
		is_open = true
	case "close":
		is_open = false
	case "auto":
	case "open":
		is_open = true
	}

	mod_time := htreq.ModTime()
	if mod_time.Before(v.ConfigModTime) {
		mod_time = v.ConfigModTime
	}
	last_mod := htreq.LastMod()

	tag := v.MakeEtag(mod_time)
	if !isModified(r_header, tag) {
		w_header.Set("Last-Modified", last_mod)
		w_header.Set("Etag", tag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	var raw_bin []byte
	if has_doc {
		var rd_err error
		raw_bin, rd_err = unifs.ReadFile(v.SystemFS, htreq.FullDoc())
		if rd_err != nil {
			w.Error("500 document file read error",
				http.StatusInternalServerError)
			return
		}
	}

	req_abs_path := rpath.Join(v.UrlTopPath, htreq.Req())

	var doc string
	var title string
	switch proc_type {
	case "dir":
		title = "View: " + req_abs_path
	case "text":
		doc = string(raw_bin)
		title = "View: " + req_abs_path
	case "md":
		doc = v.Renderer.Convert(string(raw_bin))
		title = docTitle(string(raw_bin), req_abs_path)
	case "html":
		doc = v.Sanitizer.Sanitize(string(raw_bin))
		title = "View: " + req_abs_path
	}

	var f_list []*dirview.FileStamp
	if dir_view {
		f_list = v.DirViewStamp.Get(htreq.Dir(), !is_dir)
	}

	tmpl_param := tmplParam{
		Options: &tmplOptions{
			DirectoryView: dir_view,
			LocationNavi:  v.LocationNavi,
		},
		Top:       v.UrlTopPath,
		Lib:       v.UrlLibPath,
		Path:      req_abs_path,
		PathLinks: links.NewLinks(rpath.Join("/", htreq.Req())),
		Text:      doc,
		TextType:  text_type,
		Title:     title,
		Files:     f_list,
		IsOpen:    is_open,
	}

	var buf bytes.Buffer
	if err := v.execTemplate(&buf, tmpl_param); err != nil {
		w.Error("503 template execute error:"+err.Error(),
			http.StatusServiceUnavailable)
		return
	}

	w_header.Set("Content-Type", "text/html; charset=utf-8")
	w_header.Set("Last-Modified", last_mod)
	w_header.Set("Etag", tag)
	v.setCacheHeader(w_header)
	buf.WriteTo(w)
}

var doc_title_reg = regexp.MustCompile(`(?m)^(?:#{1,6}|={1,6})[ \t]*(.+?)[ \t]*$`)

func docTitle(md string, alt string) string {
	if m := doc_title_reg.FindStringSubmatch(md); m != nil {
		return m[1]
	}
	return "View: " + alt
}

func (v *View) execTemplate(w io.Writer, param interface{}) error {
	tmpl, err := v.OriginTmpl.Clone()
	if err != nil {
		return err
	}

	return tmpl.ExecuteTemplate(w, v.MainTmplName, param)
}

func (v *View) SumTemplate() ([]byte, error) {
	tmpl_param := tmplParam{
		Options: &tmplOptions{
			DirectoryView: (v.DirectoryViewMode != "none"),
			LocationNavi:  v.LocationNavi,
		},
		Top:       v.UrlTopPath,
		Lib:       v.UrlLibPath,
		Path:      v.UrlTopPath,
		PathLinks: links.NewLinks("/"),
		TextType:  "md",
	}

	h_ctx := sha256.New()
	if err := v.execTemplate(h_ctx, tmpl_param); err != nil {
		return nil, err
	}

	return h_ctx.Sum(nil), nil
}

var ErrUnsupportedSocketType = errors.New("unsupported socket type")

func listen(cc task.Canceller, stype string, spath string) (net.Listener, error) {
	switch stype {
	default:
		return nil, ErrUnsupportedSocketType
	case "unix":
	case "tcp":
	}

	lcnf := &net.ListenConfig{}
	return lcnf.Listen(cc.AsContext(), stype, spath)
}

func (v *View) ListenAndServe(cc task.Canceller) error {
	lstn, lerr := listen(cc, v.SocketType, v.SocketPath)
	switch lerr {
	case nil:
	case context.Canceled:
		return nil
	default:
		return new_err("socket listen error: %v.", lerr)
	}

	if v.SocketType == "unix" {
		defer os.Remove(v.SocketPath)
		os.Chmod(v.SocketPath, 0777)
	}

	return v.Serve(cc, lstn)
}

func (v *View) Serve(cc task.Canceller, lstn net.Listener) error {
	if v.SocketType == "" || v.SocketPath == "" {
		addr := lstn.Addr()
		v.SocketType = addr.Network()
		v.SocketPath = addr.String()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", v.Handler)

	srv := &http.Server{Addr: v.SocketPath, Handler: mux}
	go func() {
		<-cc.RecvCancel()
		srv.Close()
	}()

	serr := srv.Serve(lstn)
	switch serr {
	default:
		return new_err("HTTP server error: %v.", serr)
	case nil:
	case http.ErrServerClosed:
	}

	return nil
}
