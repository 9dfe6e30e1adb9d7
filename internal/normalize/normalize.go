// Package normalize cleans user-supplied names before they are stored or compared.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// languageNames maps three-letter codes and language names to ISO 639-1 codes.
//
//nolint:gochecknoglobals // static lookup table
var languageNames = map[string]string{
	"eng": "en", "fra": "fr", "fre": "fr", "spa": "es", "esp": "es",
	"deu": "de", "ger": "de", "ita": "it",
	"english": "en", "anglais": "en",
	"french": "fr", "français": "fr", "francais": "fr",
	"spanish": "es", "español": "es", "espagnol": "es",
	"german": "de", "deutsch": "de", "allemand": "de",
	"italian": "it", "italiano": "it", "italien": "it",
}

// Name trims, collapses inner whitespace and composes accents so that
// "  Triple   sec " and "Triple sec" are stored as the same ingredient.
func Name(raw string) string {
	s := strings.Map(func(r rune) rune {
		if r == 0 || (unicode.IsControl(r) && !unicode.IsSpace(r)) {
			return -1
		}
		return r
	}, raw)
	s = norm.NFC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// Key folds a name for case-insensitive comparison.
func Key(raw string) string {
	return strings.ToLower(Name(raw))
}

// Keys folds every name and drops empties and duplicates, keeping first-seen order.
func Keys(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, r := range raw {
		k := Key(r)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// LanguageCode converts a language representation to an ISO 639-1 code.
// It handles:
//   - BCP 47 tags: "fr", "fr-FR", "en_GB"
//   - ISO 639-2 codes: "fra", "fre", "deu", "ger"
//   - Language names: "French", "Deutsch"
//
// Returns empty string for unrecognized values.
func LanguageCode(raw string) string {
	s := strings.ToLower(Name(raw))
	if s == "" {
		return ""
	}
	if code, ok := languageNames[s]; ok {
		return code
	}

	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return ""
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return ""
	}
	return base.String()
}
