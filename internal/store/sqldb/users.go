package sqldb

import (
	"context"
	"fmt"

	"github.com/cocktailapp/cocktail-server/internal/domain"
	"github.com/cocktailapp/cocktail-server/internal/store"
)

const userColumns = `id_utilisateur, pseudo, mdp, age, langue, est_majeur, date_creation, cocktails_recherches`

type userRow struct {
	ID                int64  `db:"id_utilisateur"`
	Pseudo            string `db:"pseudo"`
	PasswordHash      string `db:"mdp"`
	Age               int    `db:"age"`
	Language          string `db:"langue"`
	IsAdult           int    `db:"est_majeur"`
	CreatedAt         string `db:"date_creation"`
	CocktailsSearched int    `db:"cocktails_recherches"`
}

func (r userRow) toDomain() (*domain.User, error) {
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse date_creation of user %d: %w", r.ID, err)
	}
	return &domain.User{
		ID:                r.ID,
		Pseudo:            r.Pseudo,
		PasswordHash:      r.PasswordHash,
		Age:               r.Age,
		Language:          domain.Locale(r.Language).OrDefault(),
		IsAdult:           r.IsAdult != 0,
		CreatedAt:         createdAt,
		CocktailsSearched: r.CocktailsSearched,
	}, nil
}

// CreateUser inserts the user and sets its ID.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now().UTC()
	}

	id, err := s.insert(ctx, `
		INSERT INTO utilisateur (pseudo, mdp, age, langue, est_majeur, date_creation, cocktails_recherches)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id_utilisateur`,
		user.Pseudo, user.PasswordHash, user.Age, string(user.Language),
		boolToInt(user.IsAdult), formatTime(user.CreatedAt), user.CocktailsSearched,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithCause(err)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	user.ID = id
	return nil
}

// GetUser retrieves a user by id.
func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var row userRow
	if err := s.get(ctx, &row, `SELECT `+userColumns+` FROM utilisateur WHERE id_utilisateur = ?`, id); err != nil {
		return nil, notFound(err)
	}
	return row.toDomain()
}

// GetUserByPseudo retrieves a user by pseudo, case-insensitively.
func (s *Store) GetUserByPseudo(ctx context.Context, pseudo string) (*domain.User, error) {
	var row userRow
	if err := s.get(ctx, &row, `SELECT `+userColumns+` FROM utilisateur WHERE LOWER(pseudo) = LOWER(?)`, pseudo); err != nil {
		return nil, notFound(err)
	}
	return row.toDomain()
}

// PseudoTaken reports whether another user already uses pseudo, ignoring case.
// The user excludeUserID is skipped so keeping one's own pseudo is not a conflict.
func (s *Store) PseudoTaken(ctx context.Context, pseudo string, excludeUserID int64) (bool, error) {
	var count int
	err := s.get(ctx, &count,
		`SELECT COUNT(*) FROM utilisateur WHERE LOWER(pseudo) = LOWER(?) AND id_utilisateur <> ?`,
		pseudo, excludeUserID)
	if err != nil {
		return false, fmt.Errorf("check pseudo: %w", err)
	}
	return count > 0, nil
}

// UpdateUserPseudo renames a user.
func (s *Store) UpdateUserPseudo(ctx context.Context, id int64, pseudo string) error {
	res, err := s.exec(ctx, `UPDATE utilisateur SET pseudo = ? WHERE id_utilisateur = ?`, pseudo, id)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithCause(err)
		}
		return fmt.Errorf("update pseudo: %w", err)
	}
	return mustAffect(res)
}

// UpdateUserPassword replaces the password digest.
func (s *Store) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := s.exec(ctx, `UPDATE utilisateur SET mdp = ? WHERE id_utilisateur = ?`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return mustAffect(res)
}

// UpdateUserLanguage changes the preferred locale.
func (s *Store) UpdateUserLanguage(ctx context.Context, id int64, lang domain.Locale) error {
	res, err := s.exec(ctx, `UPDATE utilisateur SET langue = ? WHERE id_utilisateur = ?`, string(lang), id)
	if err != nil {
		return fmt.Errorf("update language: %w", err)
	}
	return mustAffect(res)
}

// IncrementCocktailsSearched bumps the search counter by one.
func (s *Store) IncrementCocktailsSearched(ctx context.Context, id int64) error {
	res, err := s.exec(ctx,
		`UPDATE utilisateur SET cocktails_recherches = cocktails_recherches + 1 WHERE id_utilisateur = ?`, id)
	if err != nil {
		return fmt.Errorf("increment search counter: %w", err)
	}
	return mustAffect(res)
}

// DeleteUser removes the account. Inventory links and comments cascade.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.exec(ctx, `DELETE FROM utilisateur WHERE id_utilisateur = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return mustAffect(res)
}
