package view

import (
	"path"

	"github.com/cypnk/perlite/view/internal/htpath"
)

func TmplFileType(name string) string {
	if len(name) == 0 || name == "/" {
		return "dir-root"
	}

	if name[len(name)-1] == '/' {
		return "dir"
	}

	ext := path.Ext(name)
	if ext == "" || path.Base(name) == ext {
		return "file"
	}

	switch htpath.GetFileKindByExt(ext) {
	case htpath.KindMarkdown, htpath.KindHtml, htpath.KindText:
		return "file-txt"
	}

	return "file"
}
