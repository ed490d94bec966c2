package view

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"text/template"
	"time"

	"github.com/l4go/rpath"

	"github.com/cypnk/perlite/render"
	"github.com/cypnk/perlite/sanitize"
	"github.com/cypnk/perlite/upath"

	"github.com/cypnk/perlite/view/internal/dirview"
	"github.com/cypnk/perlite/view/internal/htpath"
)

func new_err(format string, v ...interface{}) error {
	return errors.New(fmt.Sprintf(format, v...))
}

// View is the read-only preview server: markdown documents go through
// the render pipeline, raw HTML fragments through the sanitizer.
type View struct {
	SystemFS fs.FS

	SocketType string
	SocketPath string

	CacheControl string
	UrlTopPath   string
	UrlLibPath   string

	DocumentRoot upath.UPath

	IndexName    string
	OriginTmpl   *template.Template
	MainTmplName string

	Renderer  *render.Renderer
	Sanitizer *sanitize.Sanitizer

	DirectoryViewMode   string
	DirectoryViewHidden []*regexp.Regexp
	TimeStampFormat     string
	DirViewStamp        *dirview.DirViewStamp

	TextViewMode string
	LocationNavi string

	ConfigModTime time.Time
	TemplateTag   []byte
}

func newViewDefault() *View {
	v := &View{}

	v.UrlTopPath = "/"
	v.UrlLibPath = "/"
	v.IndexName = "README.md"
	v.MainTmplName = "view.tmpl"
	v.DirectoryViewMode = "autoindex"
	v.TimeStampFormat = "%F %T"
	v.TextViewMode = "html"
	v.LocationNavi = "dirs"

	return v
}

func NewView(cfg *ViewConfig) (*View, error) {
	v := newViewDefault()

	v.SystemFS = cfg.SystemFS
	v.ConfigModTime = cfg.ModTime

	v.SocketType = cfg.SocketType
	v.SocketPath = cfg.SocketPath
	if v.SocketType != "tcp" && v.SocketType != "unix" {
		return nil, new_err("Bad socket type: %s", v.SocketType)
	}

	v.CacheControl = cfg.CacheControl

	if cfg.UrlTopPath != "" {
		v.UrlTopPath = rpath.SetDir("/" + cfg.UrlTopPath)
	}
	if cfg.UrlLibPath != "" {
		v.UrlLibPath = rpath.SetDir("/" + cfg.UrlLibPath)
	}

	if !cfg.DocumentRoot.IsZero() {
		v.DocumentRoot = cfg.DocumentRoot
	}
	if v.DocumentRoot.IsZero() {
		return nil, new_err("Must document root")
	}
	if fi, err := v.DocumentRoot.Stat(v.SystemFS); err != nil || !fi.IsDir() {
		return nil, new_err("Not found root directory: %s",
			v.DocumentRoot.String())
	}

	if cfg.IndexName != "" {
		v.IndexName = cfg.IndexName
	}
	if strings.IndexRune(v.IndexName, '/') >= 0 {
		return nil, new_err("Bad index name")
	}

	for _, ext := range cfg.MarkdownExt {
		if e := htpath.SetMarkdownExt(ext); e != nil {
			return nil, new_err("Bad file extension: %s", ext)
		}
	}
	for _, ext := range cfg.HtmlExt {
		if e := htpath.SetHtmlExt(ext); e != nil {
			return nil, new_err("Bad file extension: %s", ext)
		}
	}
	for _, ext := range cfg.TextExt {
		if e := htpath.SetTextExt(ext); e != nil {
			return nil, new_err("Bad file extension: %s", ext)
		}
	}

	if cfg.DirectoryViewHidden != nil {
		v.DirectoryViewHidden = make(
			[]*regexp.Regexp, len(cfg.DirectoryViewHidden))

		for i, ign_str := range cfg.DirectoryViewHidden {
			re, err := regexp.Compile(ign_str)
			if err != nil {
				return nil, new_err("Bad hidden pattern: %s", ign_str)
			}
			v.DirectoryViewHidden[i] = re
		}
	}

	if cfg.DirectoryViewMode != "" {
		v.DirectoryViewMode = cfg.DirectoryViewMode
	}
	switch v.DirectoryViewMode {
	case "none":
	case "autoindex":
	case "close":
	case "auto":
	case "open":
	default:
		return nil, new_err("Bad directory view mode: %s",
			v.DirectoryViewMode)
	}

	if cfg.TimeStampFormat != "" {
		v.TimeStampFormat = cfg.TimeStampFormat
	}
	var err error
	v.DirViewStamp, err = dirview.NewDirViewStamp(
		v.SystemFS, v.DocumentRoot, v.TimeStampFormat,
		v.DirectoryViewHidden)
	if err != nil {
		return nil, new_err("Bad timestamp format: %s", v.TimeStampFormat)
	}

	if cfg.TextViewMode != "" {
		v.TextViewMode = cfg.TextViewMode
	}
	switch v.TextViewMode {
	case "raw":
	case "html":
	default:
		return nil, new_err("Bad text view mode: %s", v.TextViewMode)
	}

	if cfg.LocationNavi != "" {
		v.LocationNavi = cfg.LocationNavi
	}
	switch v.LocationNavi {
	case "none":
	case "dirs":
	default:
		return nil, new_err("Bad location navi type: %s", v.LocationNavi)
	}

	v.OriginTmpl = template.New("").Funcs(template.FuncMap{
		"file_type": TmplFileType,
	})
	v.OriginTmpl, err = v.OriginTmpl.ParseFS(
		v.SystemFS, upath.FSPaths(cfg.TmplPaths)...)
	if err != nil {
		return nil, new_err("Template parse error: %s", err)
	}

	if cfg.MainTmpl != "" {
		v.MainTmplName = cfg.MainTmpl
	}

	v.Renderer = render.New(cfg.RenderConfig.Value)

	var schema sanitize.Schema
	if cfg.SanitizeSchema.Value != nil {
		schema = *cfg.SanitizeSchema.Value
	}
	v.Sanitizer = sanitize.New(schema)

	sum, err := v.SumTemplate()
	if err != nil {
		return nil, new_err("Template execute error: %s", err)
	}
	v.TemplateTag = sum

	return v, nil
}
