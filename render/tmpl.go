package render

import (
	_ "embed"
	"regexp"
	"strings"

	"github.com/naoina/toml"
)

//go:embed templates.conf
var defaultTmplBin []byte

// TmplTable maps template names to fragment text with {name}
// placeholders.  The table is built once and shared read-only.
type TmplTable map[string]string

var DefaultTmplTable = (*TmplTable)(nil).MakeNew()

func (_ *TmplTable) MakeNew() *TmplTable {
	tt := &TmplTable{}
	if err := toml.Unmarshal(defaultTmplBin, (*map[string]string)(tt)); err != nil {
		panic("bad default template file: " + err.Error())
	}

	return tt
}

// A file-supplied table overlays the embedded defaults.  Entries the
// file does not name keep their default text.
func (tt *TmplTable) UnmarshalTOML(decode func(interface{}) error) error {
	if len(*tt) == 0 {
		*tt = *(tt.MakeNew())
	}

	over := map[string]string{}
	if err := decode(&over); err != nil {
		return err
	}
	for name, text := range over {
		(*tt)[name] = text
	}

	return nil
}

var tmpl_hole_reg = regexp.MustCompile(`\{[a-z][a-z0-9_]*\}`)

// Render substitutes {name} placeholders from vars and deletes any
// placeholder left unfilled.  An unknown template renders empty.
func (tt *TmplTable) Render(name string, vars map[string]string) string {
	text, ok := (*tt)[name]
	if !ok {
		return ""
	}

	for k, v := range vars {
		text = strings.ReplaceAll(text, "{"+k+"}", v)
	}

	return tmpl_hole_reg.ReplaceAllString(text, "")
}
