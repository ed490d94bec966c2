package render

import (
	"strings"
	"testing"

	"github.com/naoina/toml"
)

func TestTmplTable_Render(t *testing.T) {
	tt := &TmplTable{
		"greet": "<b>{name}</b> says {word}",
	}

	got := tt.Render("greet", map[string]string{
		"name": "cat",
		"word": "meow",
	})
	want := "<b>cat</b> says meow"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTmplTable_UnfilledHoleDeleted(t *testing.T) {
	tt := &TmplTable{
		"greet": "<b>{name}</b>{extra}",
	}

	got := tt.Render("greet", map[string]string{"name": "cat"})
	want := "<b>cat</b>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTmplTable_UnknownTemplate(t *testing.T) {
	tt := DefaultTmplTable

	if got := tt.Render("no_such_template", nil); got != "" {
		t.Errorf("unknown template rendered %q, want empty", got)
	}
}

func TestTmplTable_Defaults(t *testing.T) {
	tt := DefaultTmplTable

	for _, name := range []string{
		"audio_embed", "video_embed", "video_with_preview_embed",
		"figure_embed", "youtube_embed", "vimeo_embed",
		"template_span",
	} {
		if _, ok := (*tt)[name]; !ok {
			t.Errorf("default table misses %s", name)
		}
	}
}

func TestTmplTable_DefaultsKeepQuotedAttrs(t *testing.T) {
	tt := DefaultTmplTable

	got := tt.Render("audio_embed", map[string]string{
		"src":   "a.mp3",
		"title": "t",
	})
	if !strings.Contains(got, `src="a.mp3"`) {
		t.Errorf("audio template lost quoted attributes: %q", got)
	}
}

func TestTmplTable_FileOverlay(t *testing.T) {
	conf := []byte(`youtube_embed = "<custom>{id}</custom>"`)

	tt := &TmplTable{}
	if err := toml.Unmarshal(conf, tt); err != nil {
		t.Fatal(err)
	}

	got := tt.Render("youtube_embed", map[string]string{"id": "abc"})
	if got != "<custom>abc</custom>" {
		t.Errorf("overlay ignored: %q", got)
	}

	// untouched defaults survive the overlay
	if !strings.Contains(tt.Render("vimeo_embed",
		map[string]string{"id": "42"}), "player.vimeo.com/video/42") {
		t.Error("default entry lost after overlay")
	}
}
