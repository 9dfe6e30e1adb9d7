package domain

import (
	"math"
	"time"
	"unicode/utf8"
)

// Comment constraints.
const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 1000
)

// Comment is a user's single review of a cocktail.
type Comment struct {
	ID         int64
	UserID     int64
	CocktailID int64
	Text       string
	Rating     int
	CreatedAt  time.Time

	// Filled by listing queries.
	Pseudo       string
	CocktailName string
}

// ValidRating reports whether rating is in [MinRating, MaxRating].
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// ValidCommentLength reports whether text fits MaxCommentLength characters.
func ValidCommentLength(text string) bool {
	return utf8.RuneCountInString(text) <= MaxCommentLength
}

// AverageRating returns the mean rating, 0 when there are none.
func AverageRating(comments []Comment) float64 {
	if len(comments) == 0 {
		return 0
	}
	total := 0
	for _, c := range comments {
		total += c.Rating
	}
	return float64(total) / float64(len(comments))
}

// RoundRating rounds to one decimal place.
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
