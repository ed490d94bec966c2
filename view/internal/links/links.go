package links

import (
	"path"
	"strings"

	"github.com/l4go/rpath"
)

// Link is one location breadcrumb segment.
type Link struct {
	Name string
	Path string
}

// NewLinks builds breadcrumb links for an absolute request path.  The
// last segment gets an empty path; the others climb with "..".
func NewLinks(p string) []Link {
	p = rpath.Clean(p)
	if p == "" || p[0] != '/' {
		return nil
	}

	segs := []string{"/"}
	if p != "/" {
		segs = strings.Split(path.Clean(p), "/")
		segs[0] = "/"
	}

	up_base := 0
	if !rpath.IsDir(p) {
		up_base = 1
	}

	lnk := make([]Link, len(segs))
	for i, n := range segs {
		climb := len(segs) - i - 1 + up_base

		lnk[i].Name = n
		switch {
		case i == len(segs)-1:
			lnk[i].Path = ""
		case climb == 1:
			lnk[i].Path = "."
		default:
			lnk[i].Path = strings.TrimSuffix(
				strings.Repeat("../", climb-1), "/")
		}
	}

	return lnk
}
