package domain

// Audience describes who is asking, for age gating.
type Audience int

// Audiences.
const (
	AudienceAnonymous Audience = iota
	AudienceAdult
	AudienceMinor
)

// AudienceFor returns the audience of u. A nil user is anonymous.
func AudienceFor(u *User) Audience {
	switch {
	case u == nil:
		return AudienceAnonymous
	case u.IsAdult:
		return AudienceAdult
	default:
		return AudienceMinor
	}
}

// IsMinor reports whether alcoholic content is hidden from this audience.
func (a Audience) IsMinor() bool {
	return a == AudienceMinor
}

// Allows reports whether a cocktail with this classification may be shown.
// Only Alcoholic is hidden from minors; Optional alcohol stays visible.
func (a Audience) Allows(alcohol Alcohol) bool {
	return !a.IsMinor() || alcohol != Alcoholic
}

// FilterCocktails drops the cocktails this audience may not see, keeping order.
func FilterCocktails(a Audience, cocktails []Cocktail) []Cocktail {
	if !a.IsMinor() {
		return cocktails
	}
	out := make([]Cocktail, 0, len(cocktails))
	for _, c := range cocktails {
		if a.Allows(c.Alcohol) {
			out = append(out, c)
		}
	}
	return out
}

// FilterPartialMatches is FilterCocktails for partial matches.
func FilterPartialMatches(a Audience, matches []PartialMatch) []PartialMatch {
	if !a.IsMinor() {
		return matches
	}
	out := make([]PartialMatch, 0, len(matches))
	for _, m := range matches {
		if a.Allows(m.Alcohol) {
			out = append(out, m)
		}
	}
	return out
}
