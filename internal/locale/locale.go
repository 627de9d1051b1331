// Package locale resolves user locales and holds all locale-specific copy
// used by the conversation engine.
package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Locale is a supported language code.
type Locale string

const (
	English Locale = "en"
	Spanish Locale = "es"
)

// Default is used when a requested locale cannot be matched.
const Default = English

var (
	supportedTags = []language.Tag{language.English, language.Spanish}
	supported     = []Locale{English, Spanish}
	matcher       = language.NewMatcher(supportedTags)
)

// Match resolves a BCP 47 string (e.g. "es-MX", "en_US") to the closest
// supported Locale. Unparseable or unsupported input yields Default.
func Match(raw string) Locale {
	if raw == "" {
		return Default
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return Default
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Default
	}
	return supported[idx]
}

// Supported returns all supported locales.
func Supported() []Locale {
	out := make([]Locale, len(supported))
	copy(out, supported)
	return out
}

func (l Locale) String() string {
	return string(l)
}

// Tag returns the BCP 47 tag for l.
func (l Locale) Tag() language.Tag {
	return language.Make(string(l))
}

// LanguageName returns the English name of the language, as used in
// model prompts ("Spanish").
func (l Locale) LanguageName() string {
	return display.English.Languages().Name(l.Tag())
}

// NativeName returns the language's name in itself ("español").
func (l Locale) NativeName() string {
	return display.Self.Name(l.Tag())
}
