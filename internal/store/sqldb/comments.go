package sqldb

import (
	"context"
	"fmt"

	"github.com/cocktailapp/cocktail-server/internal/domain"
	"github.com/cocktailapp/cocktail-server/internal/store"
)

type commentRow struct {
	ID           int64  `db:"id_commentaire"`
	UserID       int64  `db:"id_utilisateur"`
	CocktailID   int64  `db:"id_cocktail"`
	Text         string `db:"texte"`
	Rating       int    `db:"note"`
	CreatedAt    string `db:"date_creation"`
	Pseudo       string `db:"pseudo"`
	CocktailName string `db:"nom_cocktail"`
}

func (r commentRow) toDomain() (domain.Comment, error) {
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("parse date_creation of comment %d: %w", r.ID, err)
	}
	return domain.Comment{
		ID:           r.ID,
		UserID:       r.UserID,
		CocktailID:   r.CocktailID,
		Text:         r.Text,
		Rating:       r.Rating,
		CreatedAt:    createdAt,
		Pseudo:       r.Pseudo,
		CocktailName: r.CocktailName,
	}, nil
}

func commentsFromRows(rows []commentRow) ([]domain.Comment, error) {
	out := make([]domain.Comment, len(rows))
	for i, r := range rows {
		c, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

const commentSelect = `
	SELECT cm.id_commentaire, cm.id_utilisateur, cm.id_cocktail, cm.texte, cm.note, cm.date_creation,
		u.pseudo, c.nom_cocktail
	FROM commentaire cm
	JOIN utilisateur u ON u.id_utilisateur = cm.id_utilisateur
	JOIN cocktail c ON c.id_cocktail = cm.id_cocktail`

// CreateComment stores a comment and sets its ID and CreatedAt.
// A second comment by the same user on the same cocktail returns store.ErrAlreadyExists;
// an unknown user or cocktail returns store.ErrNotFound.
func (s *Store) CreateComment(ctx context.Context, comment *domain.Comment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = s.now().UTC()
	}

	id, err := s.insert(ctx, `
		INSERT INTO commentaire (id_utilisateur, id_cocktail, texte, note, date_creation)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id_commentaire`,
		comment.UserID, comment.CocktailID, comment.Text, comment.Rating, formatTime(comment.CreatedAt))
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return store.ErrAlreadyExists.WithCause(err)
		case isForeignKeyViolation(err):
			return store.ErrNotFound.WithCause(err)
		}
		return fmt.Errorf("insert comment: %w", err)
	}

	comment.ID = id
	return nil
}

// GetUserComment returns the user's comment on a cocktail.
func (s *Store) GetUserComment(ctx context.Context, userID, cocktailID int64) (*domain.Comment, error) {
	var row commentRow
	err := s.get(ctx, &row, commentSelect+`
	WHERE cm.id_utilisateur = ? AND cm.id_cocktail = ?`, userID, cocktailID)
	if err != nil {
		return nil, notFound(err)
	}
	c, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCocktailComments returns a cocktail's comments, newest first, with author pseudos.
func (s *Store) ListCocktailComments(ctx context.Context, cocktailID int64) ([]domain.Comment, error) {
	var rows []commentRow
	err := s.selectAll(ctx, &rows, commentSelect+`
	WHERE cm.id_cocktail = ?
	ORDER BY cm.date_creation DESC, cm.id_commentaire DESC`, cocktailID)
	if err != nil {
		return nil, fmt.Errorf("list cocktail comments: %w", err)
	}
	return commentsFromRows(rows)
}

// ListUserComments returns the user's comments, newest first, with cocktail names.
func (s *Store) ListUserComments(ctx context.Context, userID int64) ([]domain.Comment, error) {
	var rows []commentRow
	err := s.selectAll(ctx, &rows, commentSelect+`
	WHERE cm.id_utilisateur = ?
	ORDER BY cm.date_creation DESC, cm.id_commentaire DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user comments: %w", err)
	}
	return commentsFromRows(rows)
}

// DeleteComment removes a comment only when it belongs to userID.
func (s *Store) DeleteComment(ctx context.Context, commentID, userID int64) error {
	res, err := s.exec(ctx,
		`DELETE FROM commentaire WHERE id_commentaire = ? AND id_utilisateur = ?`, commentID, userID)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return mustAffect(res)
}
