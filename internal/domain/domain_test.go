package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewUser_ComputesAdultOnce(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.FixedZone("CET", 3600))

	adult := NewUser("barman", 18, LocaleFRA, now)
	assert.True(t, adult.IsAdult)
	assert.Equal(t, time.UTC, adult.CreatedAt.Location())

	minor := NewUser("ado", 17, LocaleENG, now)
	assert.False(t, minor.IsAdult)
}

func TestValidAge(t *testing.T) {
	assert.False(t, ValidAge(12))
	assert.True(t, ValidAge(13))
	assert.True(t, ValidAge(130))
	assert.False(t, ValidAge(131))
}

func TestParseAlcohol(t *testing.T) {
	got, ok := ParseAlcohol("non ALCOHOLIC")
	assert.True(t, ok)
	assert.Equal(t, NonAlcoholic, got)

	_, ok = ParseAlcohol("sometimes")
	assert.False(t, ok)
}

func TestCocktailFilter_IsEmpty(t *testing.T) {
	assert.True(t, CocktailFilter{}.IsEmpty())
	assert.False(t, CocktailFilter{Ingredients: []string{"gin"}}.IsEmpty())
	assert.False(t, CocktailFilter{ExcludeAlcoholic: true}.IsEmpty())
}

func TestAverageRating(t *testing.T) {
	assert.Zero(t, AverageRating(nil))

	avg := AverageRating([]Comment{{Rating: 5}, {Rating: 4}, {Rating: 4}})
	assert.InDelta(t, 4.333, avg, 0.001)
	assert.Equal(t, 4.3, RoundRating(avg))
	assert.Equal(t, 4.5, RoundRating(4.45))
}

func TestCommentBounds(t *testing.T) {
	assert.False(t, ValidRating(0))
	assert.True(t, ValidRating(1))
	assert.True(t, ValidRating(5))
	assert.False(t, ValidRating(6))

	assert.True(t, ValidCommentLength(strings.Repeat("é", MaxCommentLength)))
	assert.False(t, ValidCommentLength(strings.Repeat("a", MaxCommentLength+1)))
}
