package upath

import (
	"io/fs"
	"strings"

	"github.com/l4go/unifs"
)

// UPath is a configuration path that accepts both fs-rooted ("/...")
// and OS-native notation in TOML values.
type UPath struct {
	p unifs.UniPath
}

var Zero = UPath{p: unifs.Zero}

func New(uni_name string) (UPath, error) {
	p, err := unifs.New(uni_name)
	if err != nil {
		return UPath{}, err
	}
	return UPath{p: p}, nil
}

func MustNew(uni_name string) UPath {
	return UPath{p: unifs.MustNew(uni_name)}
}

func NewByOS(os_name string) (UPath, error) {
	p, err := unifs.NewFromOSPath(os_name)
	if err != nil {
		return UPath{}, err
	}
	return UPath{p: p}, nil
}

func (up UPath) IsZero() bool {
	return up.p.IsZero()
}

func (up UPath) String() string {
	return up.p.String()
}

func (up UPath) FSPath() string {
	return up.p.FSPath()
}

func FSPaths(ups []UPath) []string {
	fs_names := make([]string, len(ups))
	for i, up := range ups {
		fs_names[i] = up.FSPath()
	}

	return fs_names
}

func (up UPath) Join(names ...string) (UPath, error) {
	p, err := up.p.Join(names...)
	if err != nil {
		return UPath{}, err
	}
	return UPath{p: p}, nil
}

func (up UPath) Open(fsys fs.FS) (fs.File, error) {
	return up.p.Open(fsys)
}

func (up UPath) Stat(fsys fs.FS) (fs.FileInfo, error) {
	return up.p.Stat(fsys)
}

func (up UPath) ReadFile(fsys fs.FS) ([]byte, error) {
	return up.p.ReadFile(fsys)
}

func (up UPath) ReadDir(fsys fs.FS) ([]fs.DirEntry, error) {
	return up.p.ReadDir(fsys)
}

func (up *UPath) UnmarshalTOML(decode func(interface{}) error) error {
	var str string
	if err := decode(&str); err != nil {
		return err
	}

	switch {
	case str == "":
		*up = Zero
		return nil
	case strings.HasPrefix(str, "/"):
		new_up, err := New(str)
		if err != nil {
			return err
		}
		*up = new_up
	default:
		new_up, err := NewByOS(str)
		if err != nil {
			return err
		}
		*up = new_up
	}

	return nil
}
