// Package domain holds the cocktail catalog, user and comment types and the rules shared by services.
package domain

import "time"

// Age bounds accepted at registration.
const (
	MinAge   = 13
	MaxAge   = 130
	AdultAge = 18
)

// Pseudo length bounds.
const (
	MinPseudoLength = 3
	MaxPseudoLength = 30
)

// User is a registered account.
type User struct {
	ID                int64
	Pseudo            string
	PasswordHash      string
	Age               int
	Language          Locale
	IsAdult           bool
	CreatedAt         time.Time
	CocktailsSearched int
}

// IsAdultAge reports whether age grants access to alcoholic cocktails.
func IsAdultAge(age int) bool {
	return age >= AdultAge
}

// ValidAge reports whether age is accepted at registration.
func ValidAge(age int) bool {
	return age >= MinAge && age <= MaxAge
}

// NewUser builds an account with IsAdult computed once from age.
// PasswordHash is left for the caller, which needs CreatedAt to salt it.
func NewUser(pseudo string, age int, lang Locale, now time.Time) *User {
	return &User{
		Pseudo:    pseudo,
		Age:       age,
		Language:  lang,
		IsAdult:   IsAdultAge(age),
		CreatedAt: now.UTC(),
	}
}
