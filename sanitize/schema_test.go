package sanitize

import (
	"testing"

	"github.com/naoina/toml"
)

func TestDefaultSchema(t *testing.T) {
	sc := *DefaultSchema

	for _, tag := range []string{"p", "a", "img", "table", "code", "pre"} {
		if _, ok := sc[tag]; !ok {
			t.Errorf("default schema misses %s", tag)
		}
	}
	if _, ok := sc["script"]; ok {
		t.Error("script must never be whitelisted")
	}

	a := sc["a"]
	if !a.AllowsAttr("href") || a.AllowsAttr("onclick") {
		t.Error("bad a attribute whitelist")
	}
	if !a.IsUriAttr("href") || a.IsUriAttr("title") {
		t.Error("bad a URI attribute set")
	}

	if !sc.NoNest("code") {
		t.Error("code must be no-nest")
	}
	if sc.NoNest("div") {
		t.Error("div must allow nesting")
	}
	if sc.NoNest("nosuchtag") {
		t.Error("unknown tag reported no-nest")
	}

	if !sc["img"].SelfClosing {
		t.Error("img must be self-closing")
	}
}

func TestSchema_FileReplacesDefault(t *testing.T) {
	conf := []byte("[b]\n")

	sc := Schema{}
	if err := toml.Unmarshal(conf, &sc); err != nil {
		t.Fatal(err)
	}

	if len(sc) != 1 {
		t.Fatalf("expected exactly one tag, got %d", len(sc))
	}
	if _, ok := sc["b"]; !ok {
		t.Error("configured tag missing")
	}
	if _, ok := sc["p"]; ok {
		t.Error("default entries must not merge into a file schema")
	}
}
