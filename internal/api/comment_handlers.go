package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cocktailapp/cocktail-server/internal/service"
)

func (s *Server) registerCommentRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "addComment",
		Method:        http.MethodPost,
		Path:          "/commentaires/ajouter_com/{id_cocktail}",
		Summary:       "Commenter un cocktail",
		Description:   "Un seul commentaire par utilisateur et par cocktail, noté de 1 à 5",
		Tags:          []string{"Comments"},
		Security:      bearerSecurity,
		DefaultStatus: http.StatusCreated,
	}, s.handleAddComment)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteComment",
		Method:      http.MethodDelete,
		Path:        "/commentaires/supprimer_com/{id_cocktail}",
		Summary:     "Supprimer mon commentaire",
		Tags:        []string{"Comments"},
		Security:    bearerSecurity,
	}, s.handleDeleteComment)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCocktailComments",
		Method:      http.MethodGet,
		Path:        "/commentaires/liste_com/{id_cocktail}",
		Summary:     "Commentaires d'un cocktail",
		Description: "Commentaires du plus récent au plus ancien, avec la note moyenne",
		Tags:        []string{"Comments"},
	}, s.handleListCocktailComments)

	huma.Register(s.api, huma.Operation{
		OperationID: "listMyComments",
		Method:      http.MethodGet,
		Path:        "/commentaires/mes_commentaires",
		Summary:     "Mes commentaires",
		Tags:        []string{"Comments"},
		Security:    bearerSecurity,
	}, s.handleListMyComments)
}

// CocktailIDPath is the cocktail path parameter.
type CocktailIDPath struct {
	CocktailID int64 `path:"id_cocktail" doc:"Identifiant du cocktail"`
}

// AddCommentRequest is the review body.
type AddCommentRequest struct {
	Text   string `json:"texte" doc:"Commentaire, 1000 caractères au plus"`
	Rating int    `json:"note" doc:"Note de 1 à 5"`
}

// AddCommentInput wraps the review request for Huma.
type AddCommentInput struct {
	CocktailIDPath
	Body AddCommentRequest
}

// AddCommentResponse confirms the stored review.
type AddCommentResponse struct {
	Message string          `json:"message" doc:"Message"`
	Comment CommentResponse `json:"commentaire" doc:"Commentaire enregistré"`
}

// AddCommentOutput wraps the review response for Huma.
type AddCommentOutput struct {
	Body AddCommentResponse
}

// CocktailRatingResponse summarizes a cocktail's reviews.
type CocktailRatingResponse struct {
	ID            int64   `json:"id_cocktail" doc:"Cocktail ID"`
	Name          string  `json:"nom_cocktail" doc:"Nom du cocktail"`
	AverageRating float64 `json:"note_moyenne" doc:"Note moyenne, une décimale"`
	CommentCount  int     `json:"nombre_commentaires" doc:"Nombre de commentaires"`
}

// CocktailCommentsResponse lists a cocktail's reviews.
type CocktailCommentsResponse struct {
	Cocktail CocktailRatingResponse `json:"cocktail" doc:"Cocktail"`
	Comments []CommentResponse      `json:"commentaires" doc:"Commentaires"`
}

// CocktailCommentsOutput wraps the reviews for Huma.
type CocktailCommentsOutput struct {
	Body CocktailCommentsResponse
}

// MyCommentsResponse lists the caller's reviews.
type MyCommentsResponse struct {
	Comments []CommentResponse `json:"commentaires" doc:"Commentaires"`
	Total    int               `json:"total" doc:"Nombre de commentaires"`
}

// MyCommentsOutput wraps the caller's reviews for Huma.
type MyCommentsOutput struct {
	Body MyCommentsResponse
}

func (s *Server) handleAddComment(ctx context.Context, input *AddCommentInput) (*AddCommentOutput, error) {
	user, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	comment, err := s.services.Comments.Add(ctx, user, input.CocktailID, service.AddCommentRequest{
		Text:   input.Body.Text,
		Rating: input.Body.Rating,
	})
	if err != nil {
		return nil, err
	}

	return &AddCommentOutput{
		Body: AddCommentResponse{Message: "Commentaire ajouté", Comment: mapComment(*comment)},
	}, nil
}

func (s *Server) handleDeleteComment(ctx context.Context, input *CocktailIDPath) (*MessageOutput, error) {
	user, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Comments.Delete(ctx, user, input.CocktailID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Commentaire supprimé"}}, nil
}

func (s *Server) handleListCocktailComments(ctx context.Context, input *CocktailIDPath) (*CocktailCommentsOutput, error) {
	res, err := s.services.Comments.ListForCocktail(ctx, input.CocktailID)
	if err != nil {
		return nil, err
	}

	return &CocktailCommentsOutput{
		Body: CocktailCommentsResponse{
			Cocktail: CocktailRatingResponse{
				ID:            res.Cocktail.ID,
				Name:          res.Cocktail.Name,
				AverageRating: res.Average,
				CommentCount:  len(res.Comments),
			},
			Comments: mapComments(res.Comments),
		},
	}, nil
}

func (s *Server) handleListMyComments(ctx context.Context, _ *struct{}) (*MyCommentsOutput, error) {
	user, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	comments, err := s.services.Comments.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &MyCommentsOutput{
		Body: MyCommentsResponse{Comments: mapComments(comments), Total: len(comments)},
	}, nil
}
