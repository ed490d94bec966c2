package render

import (
	_ "embed"
	"fmt"
	"regexp"
	"time"

	"github.com/naoina/toml"

	"github.com/cypnk/perlite/upath"
)

//go:embed markdown.conf
var defaultRenderConfig []byte

//go:embed embed_rules.conf
var defaultEmbedRules []byte

// EmbedRules configures the embed resolver: media file extension lists
// and the ordered per-platform URL patterns.
type EmbedRules struct {
	AudioExt []string      `toml:",omitempty"`
	VideoExt []string      `toml:",omitempty"`
	Platform []PlatformOpt `toml:",omitempty"`

	init bool `toml:"-"`
}

func (er *EmbedRules) IsZero() bool {
	return !er.init
}

func (er *EmbedRules) Initialize() {
	type Raw EmbedRules
	if err := toml.Unmarshal(defaultEmbedRules, (*Raw)(er)); err != nil {
		panic("bad default config file: " + err.Error())
	}

	er.init = true
}

func (_ *EmbedRules) MakeNew() *EmbedRules {
	er := &EmbedRules{}
	er.Initialize()

	return er
}

func (er *EmbedRules) UnmarshalTOML(decode func(interface{}) error) error {
	if er.IsZero() {
		er.Initialize()
	}

	type Raw EmbedRules
	return decode((*Raw)(er))
}

// Find returns the platform entry for a site id, or nil.
func (er *EmbedRules) Find(site_id string) *PlatformOpt {
	for i := range er.Platform {
		p := &er.Platform[i]
		if p.SiteId == site_id {
			return p
		}
		for _, alias := range p.Alias {
			if alias == site_id {
				return p
			}
		}
	}
	return nil
}

// PlatformOpt is one third-party hosting platform.  Match holds its
// URL patterns in trial order: full URL forms first, short forms next,
// bare-ID fallback last.
type PlatformOpt struct {
	SiteId string
	Alias  []string
	Match  []*regexp.Regexp
	Tmpl   string
}

func (po *PlatformOpt) UnmarshalTOML(decode func(interface{}) error) error {
	type rawPlatformOpt struct {
		SiteId string
		Alias  []string `toml:",omitempty"`
		Match  []string
		Tmpl   string
	}

	rpo := rawPlatformOpt{}
	if err := decode(&rpo); err != nil {
		return err
	}

	if rpo.SiteId == "" {
		return fmt.Errorf("Missing 'site_id' parameter")
	}
	if len(rpo.Match) == 0 {
		return fmt.Errorf("Missing 'match' parameter: %s", rpo.SiteId)
	}
	if rpo.Tmpl == "" {
		return fmt.Errorf("Missing 'tmpl' parameter: %s", rpo.SiteId)
	}

	match := make([]*regexp.Regexp, len(rpo.Match))
	for i, pat := range rpo.Match {
		re, err := regexp.Compile(pat)
		if err != nil {
			return fmt.Errorf("Bad 'match' pattern: %s: %s", rpo.SiteId, err)
		}
		match[i] = re
	}

	po.SiteId = rpo.SiteId
	po.Alias = rpo.Alias
	po.Match = match
	po.Tmpl = rpo.Tmpl

	return nil
}

type EmbedOptions struct {
	Rules upath.Import[*EmbedRules] `toml:",omitempty"`
}

type TmplOptions struct {
	Table upath.Import[*TmplTable] `toml:",omitempty"`
}

// RenderConfig is the render pipeline configuration.
type RenderConfig struct {
	Protect   []string `toml:",omitempty"`
	Highlight bool     `toml:",omitempty"`
	AutoIds   bool     `toml:",omitempty"`

	Embed EmbedOptions `toml:",omitempty"`
	Tmpl  TmplOptions  `toml:",omitempty"`

	ModTime time.Time `toml:"-"`
	init    bool      `toml:"-"`
}

func NewRenderConfigDefault() *RenderConfig {
	rc := &RenderConfig{}
	rc.Initialize()

	return rc
}

func (rc *RenderConfig) Initialize() {
	type Raw RenderConfig
	if err := toml.Unmarshal(defaultRenderConfig, (*Raw)(rc)); err != nil {
		panic("bad default config file: " + err.Error())
	}

	if rc.Embed.Rules.Value == nil {
		rc.Embed.Rules.Value = rc.Embed.Rules.Value.MakeNew()
	}
	if rc.Tmpl.Table.Value == nil {
		rc.Tmpl.Table.Value = rc.Tmpl.Table.Value.MakeNew()
	}

	rc.init = true
}

func (_ *RenderConfig) MakeNew() *RenderConfig {
	return NewRenderConfigDefault()
}

func (rc *RenderConfig) UnmarshalTOML(decode func(interface{}) error) error {
	if !rc.init {
		rc.Initialize()
	}

	type Raw RenderConfig
	return decode((*Raw)(rc))
}
