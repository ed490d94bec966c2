package htpath

import (
	"errors"
	"regexp"
	"strings"
)

// Document kinds by file extension.  The extension sets are seeded
// with defaults and extended from configuration at startup, before
// any request is handled.

const (
	KindMarkdown = "markdown"
	KindHtml     = "html"
	KindText     = "text"
	KindBinary   = "binary"
)

var ext_kind_table = map[string]string{
	"md":       KindMarkdown,
	"markdown": KindMarkdown,
	"htm":      KindHtml,
	"html":     KindHtml,
	"txt":      KindText,
	"text":     KindText,
	"conf":     KindText,
	"toml":     KindText,
	"css":      KindText,
	"csv":      KindText,
	"log":      KindText,
}

var ext_reg = regexp.MustCompile(`^[0-9a-z_-]+$`)

var ErrBadExt = errors.New("bad file extension")

func set_ext(ext string, kind string) error {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if !ext_reg.MatchString(ext) {
		return ErrBadExt
	}

	ext_kind_table[ext] = kind
	return nil
}

func SetMarkdownExt(ext string) error {
	return set_ext(ext, KindMarkdown)
}

func SetHtmlExt(ext string) error {
	return set_ext(ext, KindHtml)
}

func SetTextExt(ext string) error {
	return set_ext(ext, KindText)
}

// GetFileKindByExt returns the document kind for an extension;
// unknown extensions are binary.
func GetFileKindByExt(ext string) string {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if kind, ok := ext_kind_table[ext]; ok {
		return kind
	}
	return KindBinary
}
