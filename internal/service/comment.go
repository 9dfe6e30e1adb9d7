package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/cocktailapp/cocktail-server/internal/domain"
	domainerrors "github.com/cocktailapp/cocktail-server/internal/errors"
	"github.com/cocktailapp/cocktail-server/internal/store"
)

// CommentService manages cocktail reviews. A user holds at most one comment per cocktail.
type CommentService struct {
	store  store.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewCommentService creates a new comment service.
func NewCommentService(s store.Store, logger *slog.Logger) *CommentService {
	return &CommentService{store: s, logger: orDiscard(logger), now: time.Now}
}

// AddCommentRequest is a new review.
type AddCommentRequest struct {
	Text   string `json:"texte"`
	Rating int    `json:"note"`
}

// CocktailComments is a cocktail's reviews with their average rating.
type CocktailComments struct {
	Cocktail domain.Cocktail
	Average  float64 // rounded to one decimal
	Comments []domain.Comment
}

// Add stores the user's review of a cocktail.
func (s *CommentService) Add(ctx context.Context, user *domain.User, cocktailID int64, req AddCommentRequest) (*domain.Comment, error) {
	if cocktailID <= 0 {
		return nil, domainerrors.Validation("L'identifiant du cocktail doit être un entier positif")
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, domainerrors.Validation("Le commentaire ne peut pas être vide")
	}
	if !domain.ValidCommentLength(text) {
		return nil, domainerrors.Validationf("Le commentaire ne doit pas dépasser %d caractères", domain.MaxCommentLength)
	}
	if !domain.ValidRating(req.Rating) {
		return nil, domainerrors.Validationf("La note doit être comprise entre %d et %d", domain.MinRating, domain.MaxRating)
	}

	cocktail, err := s.store.GetCocktail(ctx, cocktailID)
	if err != nil {
		if isNotFound(err) {
			return nil, domainerrors.NotFound(msgCocktailNotFound)
		}
		return nil, storageFailure(ctx, s.logger, "get cocktail", err)
	}

	if _, err := s.store.GetUserComment(ctx, user.ID, cocktailID); err == nil {
		return nil, alreadyCommented()
	} else if !isNotFound(err) {
		return nil, storageFailure(ctx, s.logger, "get user comment", err)
	}

	comment := &domain.Comment{
		UserID:     user.ID,
		CocktailID: cocktailID,
		Text:       text,
		Rating:     req.Rating,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		switch {
		case isAlreadyExists(err):
			return nil, alreadyCommented()
		case isNotFound(err):
			return nil, domainerrors.NotFound(msgCocktailNotFound)
		default:
			return nil, storageFailure(ctx, s.logger, "create comment", err)
		}
	}
	comment.Pseudo = user.Pseudo
	comment.CocktailName = cocktail.Name

	s.logger.Info("comment added", "user_id", user.ID, "cocktail_id", cocktailID, "rating", comment.Rating)
	return comment, nil
}

// Delete removes the user's comment on a cocktail.
func (s *CommentService) Delete(ctx context.Context, user *domain.User, cocktailID int64) error {
	if cocktailID <= 0 {
		return domainerrors.Validation("L'identifiant du cocktail doit être un entier positif")
	}
	notFound := domainerrors.NotFound("Vous n'avez pas de commentaire sur ce cocktail")

	comment, err := s.store.GetUserComment(ctx, user.ID, cocktailID)
	if err != nil {
		if isNotFound(err) {
			return notFound
		}
		return storageFailure(ctx, s.logger, "get user comment", err)
	}

	if err := s.store.DeleteComment(ctx, comment.ID, user.ID); err != nil {
		if isNotFound(err) {
			return notFound
		}
		return storageFailure(ctx, s.logger, "delete comment", err)
	}
	return nil
}

// ListForCocktail returns a cocktail's reviews, newest first.
func (s *CommentService) ListForCocktail(ctx context.Context, cocktailID int64) (*CocktailComments, error) {
	if cocktailID <= 0 {
		return nil, domainerrors.Validation("L'identifiant du cocktail doit être un entier positif")
	}

	cocktail, err := s.store.GetCocktail(ctx, cocktailID)
	if err != nil {
		if isNotFound(err) {
			return nil, domainerrors.NotFound(msgCocktailNotFound)
		}
		return nil, storageFailure(ctx, s.logger, "get cocktail", err)
	}

	comments, err := s.store.ListCocktailComments(ctx, cocktailID)
	if err != nil {
		return nil, storageFailure(ctx, s.logger, "list comments", err)
	}
	if len(comments) == 0 {
		return nil, domainerrors.NotFoundf("Aucun commentaire pour le cocktail '%s'", cocktail.Name)
	}

	return &CocktailComments{
		Cocktail: cocktail.Cocktail,
		Average:  domain.RoundRating(domain.AverageRating(comments)),
		Comments: comments,
	}, nil
}

// ListForUser returns the user's own reviews, newest first.
func (s *CommentService) ListForUser(ctx context.Context, userID int64) ([]domain.Comment, error) {
	comments, err := s.store.ListUserComments(ctx, userID)
	if err != nil {
		return nil, storageFailure(ctx, s.logger, "list user comments", err)
	}
	return comments, nil
}

func alreadyCommented() *domainerrors.Error {
	return domainerrors.AlreadyExists("Vous avez déjà commenté ce cocktail")
}
