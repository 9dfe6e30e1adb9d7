package auth

import (
	"strings"
	"unicode"
)

// SpecialCharacters is the set a password must draw at least one symbol from.
const SpecialCharacters = `!@#$%^&*(),.?":{}|<>`

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

type passwordRule struct {
	message string
	ok      func(string) bool
}

var passwordRules = []passwordRule{
	{
		message: "Le mot de passe doit contenir au moins 8 caractères",
		ok:      func(p string) bool { return len([]rune(p)) >= MinPasswordLength },
	},
	{
		message: "Le mot de passe doit contenir au moins une majuscule",
		ok:      func(p string) bool { return strings.IndexFunc(p, unicode.IsUpper) >= 0 },
	},
	{
		message: "Le mot de passe doit contenir au moins une minuscule",
		ok:      func(p string) bool { return strings.IndexFunc(p, unicode.IsLower) >= 0 },
	},
	{
		message: "Le mot de passe doit contenir au moins un chiffre",
		ok:      func(p string) bool { return strings.IndexFunc(p, unicode.IsDigit) >= 0 },
	},
	{
		message: "Le mot de passe doit contenir au moins un caractère spécial",
		ok:      func(p string) bool { return strings.ContainsAny(p, SpecialCharacters) },
	},
}

// CheckPasswordPolicy returns one message per unmet rule, or nil when the password is acceptable.
func CheckPasswordPolicy(password string) []string {
	var failures []string
	for _, rule := range passwordRules {
		if !rule.ok(password) {
			failures = append(failures, rule.message)
		}
	}
	return failures
}
