package ui

import (
	"embed"
	"fmt"

	"github.com/leonelquinteros/gotext"
)

//go:embed locales/*.po
var localeFS embed.FS

// Text looks up player-facing strings by message id.
type Text struct {
	po *gotext.Po
}

// LoadText loads the embedded catalog for lang (e.g. "en").
func LoadText(lang string) (*Text, error) {
	content, err := localeFS.ReadFile("locales/" + lang + ".po")
	if err != nil {
		return nil, fmt.Errorf("no catalog for language %q: %w", lang, err)
	}
	po := gotext.NewPo()
	po.Parse(content)
	return &Text{po: po}, nil
}

// Get returns the translation of id. Unknown ids come back unchanged.
// Translations with verbs are formatted by the caller with fmt.Sprintf.
func (t *Text) Get(id string) string {
	get := t.po.Get
	return get(id)
}
