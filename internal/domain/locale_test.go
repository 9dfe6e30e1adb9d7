package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLocale(t *testing.T) {
	tests := []struct {
		input string
		want  Locale
		ok    bool
	}{
		{"FRA", LocaleFRA, true},
		{"fra", LocaleFRA, true},
		{"fr", LocaleFRA, true},
		{"ger", LocaleGER, true},
		{"de-AT", LocaleGER, true},
		{"Italiano", LocaleITA, true},
		{"string", LocaleENG, true},
		{"ESP", LocaleESP, true},
		{"JPN", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseLocale(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocale_OrDefault(t *testing.T) {
	assert.Equal(t, LocaleGER, LocaleGER.OrDefault())
	assert.Equal(t, LocaleENG, Locale("").OrDefault())
	assert.Equal(t, LocaleENG, Locale("string").OrDefault())
}

func TestLocaleFromAcceptLanguage(t *testing.T) {
	assert.Equal(t, LocaleENG, LocaleFromAcceptLanguage(""))
	assert.Equal(t, LocaleFRA, LocaleFromAcceptLanguage("fr-FR,fr;q=0.9,en;q=0.8"))
	assert.Equal(t, LocaleGER, LocaleFromAcceptLanguage("de-CH"))
	assert.Equal(t, LocaleITA, LocaleFromAcceptLanguage("ja;q=0.9, it;q=0.8"))
	assert.Equal(t, LocaleENG, LocaleFromAcceptLanguage("%%%"))
}

func TestInstructions_For(t *testing.T) {
	in := Instructions{ENG: "Shake well.", FRA: "Secouer."}

	assert.Equal(t, "Secouer.", in.For(LocaleFRA))
	assert.Equal(t, "Shake well.", in.For(LocaleENG))
	assert.Equal(t, "Shake well.", in.For(LocaleESP), "missing translation falls back to ENG")
	assert.Equal(t, "Shake well.", in.For(Locale("string")))
}

func TestInstructions_Set(t *testing.T) {
	var in Instructions
	assert.True(t, in.Set(LocaleITA, "Agitare."))
	assert.False(t, in.Set(Locale("XXX"), "nope"))
	assert.Equal(t, "Agitare.", in.ITA)
}
