package domain

// Ingredient is a shared catalog ingredient. Names are unique case-insensitively.
type Ingredient struct {
	ID          int64
	Name        string
	Description string
}

// Suggestion bounds for ingredients a user might add.
const (
	DefaultSuggestions = 5
	MaxSuggestions     = 10
)
