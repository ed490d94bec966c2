package htpath

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"time"

	"github.com/l4go/rpath"
	"github.com/l4go/unifs"
)

// HtPath resolves a request path against the document root: directory
// vs file, index lookup, document kind, and modification time.
type HtPath struct {
	fsys  fs.FS
	root  string
	req   string
	index string

	is_dir bool
	dir    string
	file   string
	ext    string

	mod_time time.Time
}

var ErrBadRequestType = errors.New("bad request type")
var ErrBadIndexBase = errors.New("bad index base")

func New(fsys fs.FS, root string, req string, index string) (*HtPath, error) {
	root = rpath.SetDir(root)
	req = rpath.Clean(req)
	index = rpath.Clean(index)
	if rpath.IsDir(index) {
		return nil, ErrBadIndexBase
	}

	is_dir := rpath.IsDir(req)

	req_fi, err := unifs.Stat(fsys, path.Join(root, req))
	if err != nil {
		return nil, err
	}
	if req_fi.IsDir() {
		if !is_dir {
			req = rpath.SetDir(req)
			is_dir = true
		}
	} else if is_dir {
		return nil, ErrBadRequestType
	}
	mod_time := req_fi.ModTime()

	var dir, file string
	if is_dir {
		dir = req
		if index != "" {
			fi, err := unifs.Stat(fsys, path.Join(root, dir, index))
			if err == nil && !fi.IsDir() {
				file = index
				if idx_mod := fi.ModTime(); idx_mod.After(mod_time) {
					mod_time = idx_mod
				}
			}
		}
	} else {
		dir, file = rpath.Split(req)
	}

	return &HtPath{
		fsys:  fsys,
		root:  root,
		req:   req,
		index: index,

		is_dir: is_dir,
		dir:    dir,
		file:   file,
		ext:    rpath.Ext(file),

		mod_time: mod_time,
	}, nil
}

func (hp *HtPath) Req() string {
	return hp.req
}

func (hp *HtPath) IsDir() bool {
	return hp.is_dir
}

func (hp *HtPath) HasDoc() bool {
	return hp.file != ""
}

func (hp *HtPath) Dir() string {
	return hp.dir
}

func (hp *HtPath) Doc() string {
	if hp.file == "" {
		return ""
	}
	return rpath.Join(hp.dir, hp.file)
}

func (hp *HtPath) FullDoc() string {
	if hp.file == "" {
		return ""
	}
	return rpath.Join(hp.root, hp.dir, hp.file)
}

func (hp *HtPath) Ext() string {
	return hp.ext
}

// Kind classifies the document for the handler: markdown and html
// documents are rendered, text is passed to the text view, binary is
// served as is.
func (hp *HtPath) Kind() string {
	return GetFileKindByExt(hp.ext)
}

func (hp *HtPath) UpdateModTime(mod time.Time) {
	if !mod.IsZero() && hp.mod_time.Before(mod) {
		hp.mod_time = mod
	}
}

func (hp *HtPath) ModTime() time.Time {
	return hp.mod_time
}

func (hp *HtPath) LastMod() string {
	return hp.mod_time.Format(http.TimeFormat)
}
