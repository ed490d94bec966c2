package view

import (
	"io"
	"io/fs"
	"time"

	"github.com/l4go/osfs"
	"github.com/l4go/recode"
	"github.com/l4go/unifs"
	"github.com/naoina/toml"

	"github.com/cypnk/perlite/render"
	"github.com/cypnk/perlite/sanitize"
	"github.com/cypnk/perlite/upath"
)

type ViewConfig struct {
	SocketType   string
	SocketPath   string
	CacheControl string `toml:",omitempty"`

	UrlTopPath string `toml:",omitempty"`
	UrlLibPath string `toml:",omitempty"`

	DocumentRoot upath.UPath
	IndexName    string `toml:",omitempty"`
	TmplPaths    []upath.UPath
	MainTmpl     string `toml:",omitempty"`

	MarkdownExt []string `toml:",omitempty"`
	HtmlExt     []string `toml:",omitempty"`
	TextExt     []string `toml:",omitempty"`

	RenderConfig   upath.Import[*render.RenderConfig] `toml:",omitempty"`
	SanitizeSchema upath.Import[*sanitize.Schema]     `toml:",omitempty"`

	DirectoryViewMode   string   `toml:",omitempty"`
	DirectoryViewHidden []string `toml:",omitempty"`
	TimeStampFormat     string   `toml:",omitempty"`

	TextViewMode string `toml:",omitempty"`
	LocationNavi string `toml:",omitempty"`

	SystemFS fs.FS     `toml:"-"`
	ModTime  time.Time `toml:"-"`
}

func NewViewConfig(file string) (*ViewConfig, error) {
	return NewViewConfigFS(osfs.OsRootFS, file)
}

func NewViewConfigFS(fsys fs.FS, file string) (*ViewConfig, error) {
	cfg_f, err := unifs.Open(fsys, file)
	if err != nil {
		return nil, new_err("Config file open error: %s: %s", file, err)
	}
	defer cfg_f.Close()

	text, err := io.ReadAll(cfg_f)
	if err != nil {
		return nil, new_err("Config read error: %s: %s", file, err)
	}

	cfg := &ViewConfig{}
	if err := toml.Unmarshal(text, cfg); err != nil {
		return nil, new_err("Config file parse error: %s: %s", file, err)
	}

	if err := recode.RecursiveRebuild(cfg, fsys); err != nil {
		return nil, new_err("Config file import error: %s", err)
	}

	cfg.SystemFS = fsys
	if fi, err := cfg_f.Stat(); err == nil {
		cfg.ModTime = fi.ModTime()
	}
	if cfg.ModTime.Before(cfg.RenderConfig.ModTime) {
		cfg.ModTime = cfg.RenderConfig.ModTime
	}
	if cfg.ModTime.Before(cfg.SanitizeSchema.ModTime) {
		cfg.ModTime = cfg.SanitizeSchema.ModTime
	}

	return cfg, nil
}
