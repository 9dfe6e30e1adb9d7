package domain

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/cocktailapp/cocktail-server/internal/normalize"
)

// Locale is a supported instruction language.
type Locale string

// Supported locales. ENG is the fallback everywhere.
const (
	LocaleENG Locale = "ENG"
	LocaleFRA Locale = "FRA"
	LocaleESP Locale = "ESP"
	LocaleGER Locale = "GER"
	LocaleITA Locale = "ITA"
)

// Locales lists the supported locales in display order.
var Locales = []Locale{LocaleENG, LocaleFRA, LocaleESP, LocaleGER, LocaleITA}

var localeByISO = map[string]Locale{
	"en": LocaleENG,
	"fr": LocaleFRA,
	"es": LocaleESP,
	"de": LocaleGER,
	"it": LocaleITA,
}

var localeTags = []language.Tag{
	language.English,
	language.French,
	language.Spanish,
	language.German,
	language.Italian,
}

var localeMatcher = language.NewMatcher(localeTags)

// Valid reports whether l is one of the supported locales.
func (l Locale) Valid() bool {
	for _, known := range Locales {
		if l == known {
			return true
		}
	}
	return false
}

// OrDefault returns l, or ENG when l is not supported.
func (l Locale) OrDefault() Locale {
	if l.Valid() {
		return l
	}
	return LocaleENG
}

// ParseLocale accepts the locale codes themselves ("FRA"), ISO codes ("fr", "fra")
// and language names. The legacy placeholder "string" maps to ENG.
func ParseLocale(raw string) (Locale, bool) {
	trimmed := strings.TrimSpace(raw)
	if strings.EqualFold(trimmed, "string") {
		return LocaleENG, true
	}
	if l := Locale(strings.ToUpper(trimmed)); l.Valid() {
		return l, true
	}
	if l, ok := localeByISO[normalize.LanguageCode(trimmed)]; ok {
		return l, true
	}
	return "", false
}

// LocaleFromAcceptLanguage picks the best supported locale for an Accept-Language header.
func LocaleFromAcceptLanguage(header string) Locale {
	if header == "" {
		return LocaleENG
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return LocaleENG
	}
	_, index, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return LocaleENG
	}
	return Locales[index]
}

// Instructions carries a cocktail's preparation text in every supported locale.
type Instructions struct {
	ENG string
	FRA string
	ESP string
	GER string
	ITA string
}

var instructionFields = map[Locale]func(*Instructions) *string{
	LocaleENG: func(i *Instructions) *string { return &i.ENG },
	LocaleFRA: func(i *Instructions) *string { return &i.FRA },
	LocaleESP: func(i *Instructions) *string { return &i.ESP },
	LocaleGER: func(i *Instructions) *string { return &i.GER },
	LocaleITA: func(i *Instructions) *string { return &i.ITA },
}

// For returns the text for l. Unknown locales and missing translations fall back to ENG.
func (i Instructions) For(l Locale) string {
	field, ok := instructionFields[l]
	if !ok {
		return i.ENG
	}
	if text := *field(&i); text != "" {
		return text
	}
	return i.ENG
}

// Set stores text for l and reports whether l is supported.
func (i *Instructions) Set(l Locale, text string) bool {
	field, ok := instructionFields[l]
	if !ok {
		return false
	}
	*field(i) = text
	return true
}
