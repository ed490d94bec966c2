package sanitize

import (
	_ "embed"

	"github.com/naoina/toml"
)

//go:embed htmlsanitizer.conf
var defaultSchemaBin []byte

// TagRule is the whitelist entry for one tag.  Anything absent from
// the schema is dropped, never passed through.
type TagRule struct {
	Attributes    []string `toml:",omitempty"`
	UriAttributes []string `toml:",omitempty"`
	SelfClosing   bool     `toml:",omitempty"`
	NoNest        bool     `toml:",omitempty"`
}

func (tr *TagRule) AllowsAttr(name string) bool {
	for _, a := range tr.Attributes {
		if a == name {
			return true
		}
	}
	return false
}

func (tr *TagRule) IsUriAttr(name string) bool {
	for _, a := range tr.UriAttributes {
		if a == name {
			return true
		}
	}
	return false
}

// Schema is the whitelist: tag name to rule.  It is loaded once and
// shared read-only across renders.
type Schema map[string]*TagRule

var DefaultSchema = (*Schema)(nil).MakeNew()

func (_ *Schema) MakeNew() *Schema {
	sc := &Schema{}
	if err := toml.Unmarshal(defaultSchemaBin, (*map[string]*TagRule)(sc)); err != nil {
		panic("bad default schema file: " + err.Error())
	}

	return sc
}

// A file-supplied schema replaces the embedded default outright;
// merging whitelists would silently widen them.
func (sc *Schema) UnmarshalTOML(decode func(interface{}) error) error {
	*sc = Schema{}
	return decode((*map[string]*TagRule)(sc))
}

func (sc Schema) NoNest(tag string) bool {
	tr, ok := sc[tag]
	return ok && tr.NoNest
}
