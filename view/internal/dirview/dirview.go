package dirview

import (
	"io/fs"
	"path"
	"regexp"
	"sort"
	"time"

	"github.com/l4go/rpath"
	"github.com/l4go/unifs"
	"github.com/lestrrat-go/strftime"

	"github.com/cypnk/perlite/upath"
)

// FileStamp is one directory listing entry with a formatted
// modification stamp.
type FileStamp struct {
	Name  string
	Path  string
	Stamp string
}

type DirViewStamp struct {
	rt_fs fs.FS
	root  upath.UPath
	tf    *strftime.Strftime
	hide  []*regexp.Regexp
}

var DefaultHidden = []*regexp.Regexp{
	regexp.MustCompile(`^\.`),
}

func NewDirViewStamp(rt_fs fs.FS, root upath.UPath, fmt string,
	hide []*regexp.Regexp) (*DirViewStamp, error) {
	tf, err := strftime.New(fmt)
	if err != nil {
		return nil, err
	}

	if hide == nil {
		hide = DefaultHidden
	}

	return &DirViewStamp{rt_fs: rt_fs, root: root, tf: tf, hide: hide}, nil
}

func MatchList(regs []*regexp.Regexp, tgt string) bool {
	for _, re := range regs {
		if re.MatchString(tgt) {
			return true
		}
	}
	return false
}

// DirModTime returns the modification time of a directory under the
// root, when it exists.
func (dvs *DirViewStamp) DirModTime(rel_dir string) (time.Time, bool) {
	full_dir := rpath.Join(dvs.root.String(), rpath.Clean("/"+rel_dir))

	fi, err := unifs.Stat(dvs.rt_fs, full_dir)
	if err != nil || !fi.IsDir() {
		return time.Time{}, false
	}

	return fi.ModTime(), true
}

// Get lists a directory with "./" and "../" entries first, hidden
// names filtered, directories sorted before files.
func (dvs *DirViewStamp) Get(rel_dir string, with_cwd bool) []*FileStamp {
	rel_dir = rpath.Clean("/" + rel_dir)
	full_dir := rpath.Join(dvs.root.String(), rel_dir)

	var lst []*FileStamp

	if fi, err := unifs.Stat(dvs.rt_fs, full_dir); err == nil && with_cwd {
		lst = append(lst, dvs.new_stamp("./", fi))
	}
	if rel_dir != "/" {
		if fi, err := unifs.Stat(dvs.rt_fs, rpath.Dir(full_dir)); err == nil {
			lst = append(lst, dvs.new_stamp("../", fi))
		}
	}

	dent, err := unifs.ReadDir(dvs.rt_fs, full_dir)
	if err != nil {
		return lst
	}

	var files []*FileStamp
	for _, de := range dent {
		name := de.Name()
		if MatchList(dvs.hide, name) {
			continue
		}

		fi, err := unifs.Stat(dvs.rt_fs, path.Join(full_dir, name))
		if err != nil {
			continue
		}

		files = append(files,
			dvs.new_stamp(rpath.SetType(name, fi.IsDir()), fi))
	}

	sort.Slice(files, func(i, j int) bool {
		if rpath.IsDir(files[i].Name) != rpath.IsDir(files[j].Name) {
			return rpath.IsDir(files[i].Name)
		}
		return path.Clean(files[i].Name) < path.Clean(files[j].Name)
	})

	return append(lst, files...)
}

func (dvs *DirViewStamp) new_stamp(name string, fi fs.FileInfo) *FileStamp {
	p := name
	switch p {
	case "./", "../":
	default:
		p = "./" + p
	}

	return &FileStamp{
		Name:  name,
		Path:  p,
		Stamp: dvs.tf.FormatString(fi.ModTime()),
	}
}
