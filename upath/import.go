package upath

import (
	"io/fs"
	"time"

	"github.com/naoina/toml"
)

// NewMaker builds the default value of an imported config table.
type NewMaker[T any] interface {
	MakeNew() T
}

// Import is a config field holding a path to a sub-config file.
// RebuildByType resets Value to its default and, when the path is
// set, overlays the decoded file on top of it.
type Import[T NewMaker[T]] struct {
	UPath   UPath
	ModTime time.Time `toml:"-"`
	Value   T         `toml:"-"`
}

func (im *Import[T]) UnmarshalTOML(decode func(interface{}) error) error {
	return decode(&im.UPath)
}

func (im *Import[T]) RebuildByType(fsys fs.FS) error {
	im.Value = im.Value.MakeNew()

	if im.UPath.IsZero() {
		return nil
	}

	f, err := im.UPath.Open(fsys)
	if err != nil {
		return &fs.PathError{Op: "import", Path: im.UPath.String(), Err: err}
	}
	defer f.Close()

	if err := toml.NewDecoder(f).Decode(im.Value); err != nil {
		return &fs.PathError{Op: "import", Path: im.UPath.String(), Err: err}
	}

	if fi, err := f.Stat(); err == nil {
		im.ModTime = fi.ModTime()
	}

	return nil
}
