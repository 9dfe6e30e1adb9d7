package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/cocktailapp/cocktail-server/internal/errors"
)

func TestComments_AddListDelete(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	alice := env.register(t, "alice", 20)
	bob := env.register(t, "bob", 25)
	mojito := env.catalog["Mojito"].ID

	clock := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	env.comments.now = func() time.Time { return clock }

	c, err := env.comments.Add(ctx, alice, mojito, AddCommentRequest{Text: "  Très frais  ", Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, "Très frais", c.Text)
	assert.Equal(t, "alice", c.Pseudo)
	assert.Equal(t, "Mojito", c.CocktailName)

	_, err = env.comments.Add(ctx, alice, mojito, AddCommentRequest{Text: "Encore", Rating: 4})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists, "one comment per user and cocktail")

	clock = clock.Add(time.Hour)
	_, err = env.comments.Add(ctx, bob, mojito, AddCommentRequest{Text: "Trop sucré", Rating: 3})
	require.NoError(t, err)

	list, err := env.comments.ListForCocktail(ctx, mojito)
	require.NoError(t, err)
	assert.Equal(t, "Mojito", list.Cocktail.Name)
	assert.InDelta(t, 4.0, list.Average, 1e-9)
	require.Len(t, list.Comments, 2)
	assert.Equal(t, "bob", list.Comments[0].Pseudo, "newest first")

	mine, err := env.comments.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Mojito", mine[0].CocktailName)

	require.NoError(t, env.comments.Delete(ctx, alice, mojito))
	assert.ErrorIs(t, env.comments.Delete(ctx, alice, mojito), domainerrors.ErrNotFound)

	list, err = env.comments.ListForCocktail(ctx, mojito)
	require.NoError(t, err)
	assert.Len(t, list.Comments, 1)
	assert.InDelta(t, 3.0, list.Average, 1e-9)
}

func TestComments_Validation(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	alice := env.register(t, "alice", 20)
	mojito := env.catalog["Mojito"].ID

	tests := []struct {
		name       string
		cocktailID int64
		req        AddCommentRequest
		want       error
	}{
		{"rating zero", mojito, AddCommentRequest{Text: "ok", Rating: 0}, domainerrors.ErrValidation},
		{"rating six", mojito, AddCommentRequest{Text: "ok", Rating: 6}, domainerrors.ErrValidation},
		{"blank text", mojito, AddCommentRequest{Text: "   ", Rating: 3}, domainerrors.ErrValidation},
		{"text too long", mojito, AddCommentRequest{Text: strings.Repeat("é", 1001), Rating: 3}, domainerrors.ErrValidation},
		{"non-positive id", 0, AddCommentRequest{Text: "ok", Rating: 3}, domainerrors.ErrValidation},
		{"unknown cocktail", 9999, AddCommentRequest{Text: "ok", Rating: 3}, domainerrors.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.comments.Add(ctx, alice, tt.cocktailID, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := env.comments.Add(ctx, alice, mojito, AddCommentRequest{Text: strings.Repeat("é", 1000), Rating: 3})
	assert.NoError(t, err, "1000 characters is the limit, not 1000 bytes")
}

func TestComments_ListEmptyAndUnknown(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	_, err := env.comments.ListForCocktail(ctx, env.catalog["Punch"].ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	assert.Contains(t, err.Error(), "Punch")

	_, err = env.comments.ListForCocktail(ctx, 9999)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
