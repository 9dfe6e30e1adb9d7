package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cocktailapp/cocktail-server/internal/domain"
	"github.com/cocktailapp/cocktail-server/internal/service"
)

func (s *Server) registerAccountRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getProfile",
		Method:      http.MethodGet,
		Path:        "/mon_compte/informations",
		Summary:     "Mon profil",
		Description: "Renvoie les informations du compte connecté",
		Tags:        []string{"Account"},
		Security:    bearerSecurity,
	}, s.handleGetProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateProfile",
		Method:      http.MethodPut,
		Path:        "/mon_compte/mettre_a_jour",
		Summary:     "Modifier mon profil",
		Description: "Modifie le pseudo, le mot de passe ou la langue. Chaque champ est traité indépendamment.",
		Tags:        []string{"Account"},
		Security:    bearerSecurity,
	}, s.handleUpdateProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteAccount",
		Method:      http.MethodDelete,
		Path:        "/mon_compte/supprimer",
		Summary:     "Supprimer mon compte",
		Description: "Supprime le compte, son inventaire et ses commentaires. Exige la confirmation CONFIRMER.",
		Tags:        []string{"Account"},
		Security:    bearerSecurity,
	}, s.handleDeleteAccount)
}

// ProfileResponse contains the caller's account information.
type ProfileResponse struct {
	Pseudo            string `json:"pseudo" doc:"Pseudo"`
	Age               int    `json:"age" doc:"Âge"`
	Langue            string `json:"langue" doc:"Langue des instructions"`
	IsAdult           bool   `json:"est_majeur" doc:"Majeur (18 ans ou plus)"`
	CreatedAt         string `json:"date_creation" doc:"Date d'inscription (jj/mm/aaaa)"`
	CocktailsSearched int    `json:"cocktails_recherches" doc:"Nombre de recherches effectuées"`
}

// ProfileOutput wraps the profile response for Huma.
type ProfileOutput struct {
	Body ProfileResponse
}

func mapProfile(u *domain.User) ProfileResponse {
	return ProfileResponse{
		Pseudo:            u.Pseudo,
		Age:               u.Age,
		Langue:            string(u.Language),
		IsAdult:           u.IsAdult,
		CreatedAt:         formatDate(u.CreatedAt),
		CocktailsSearched: u.CocktailsSearched,
	}
}

// UpdateProfileRequest lists the optional profile changes.
type UpdateProfileRequest struct {
	NewPseudo   *string `json:"nouveau_pseudo,omitempty" doc:"Nouveau pseudo"`
	NewPassword *string `json:"nouveau_mdp,omitempty" doc:"Nouveau mot de passe"`
	Langue      *string `json:"langue,omitempty" doc:"Nouvelle langue"`
}

// UpdateProfileInput wraps the update request for Huma.
type UpdateProfileInput struct {
	Body UpdateProfileRequest
}

// UpdateProfileResponse reports applied and refused changes.
type UpdateProfileResponse struct {
	Message string          `json:"message" doc:"Résumé"`
	Changes []string        `json:"changements_effectues,omitempty" doc:"Modifications appliquées"`
	Errors  []string        `json:"erreurs,omitempty" doc:"Modifications refusées"`
	User    ProfileResponse `json:"utilisateur" doc:"Profil à jour"`
}

// UpdateProfileOutput wraps the update response for Huma.
type UpdateProfileOutput struct {
	Body UpdateProfileResponse
}

// DeleteAccountRequest carries the confirmation word.
type DeleteAccountRequest struct {
	Confirmation string `json:"confirmation" doc:"Doit valoir CONFIRMER"`
}

// DeleteAccountInput wraps the delete request for Huma.
type DeleteAccountInput struct {
	Body DeleteAccountRequest
}

// DeleteAccountResponse confirms the deletion.
type DeleteAccountResponse struct {
	Information string `json:"information" doc:"Compte supprimé"`
	Message     string `json:"message" doc:"Message"`
	Deleted     bool   `json:"supprime" doc:"Toujours vrai"`
}

// DeleteAccountOutput wraps the delete response for Huma.
type DeleteAccountOutput struct {
	Body DeleteAccountResponse
}

func (s *Server) handleGetProfile(ctx context.Context, _ *struct{}) (*ProfileOutput, error) {
	user, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	return &ProfileOutput{Body: mapProfile(user)}, nil
}

func (s *Server) handleUpdateProfile(ctx context.Context, input *UpdateProfileInput) (*UpdateProfileOutput, error) {
	user, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	res, err := s.services.Accounts.UpdateProfile(ctx, user, service.UpdateProfileRequest{
		Pseudo:   input.Body.NewPseudo,
		Password: input.Body.NewPassword,
		Langue:   input.Body.Langue,
	})
	if err != nil {
		return nil, err
	}

	body := UpdateProfileResponse{User: mapProfile(res.User)}
	if res.Complete() {
		body.Message = "Modification réussie : " + strings.Join(res.Changes, ", ")
	} else {
		body.Message = "Modification partiellement réussie"
		body.Changes = res.Changes
		body.Errors = res.Errors
	}
	return &UpdateProfileOutput{Body: body}, nil
}

func (s *Server) handleDeleteAccount(ctx context.Context, input *DeleteAccountInput) (*DeleteAccountOutput, error) {
	user, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Accounts.DeleteAccount(ctx, user, input.Body.Confirmation); err != nil {
		return nil, err
	}

	return &DeleteAccountOutput{
		Body: DeleteAccountResponse{
			Information: "Compte supprimé",
			Message:     "Le compte '" + user.Pseudo + "' et toutes ses données ont été supprimés",
			Deleted:     true,
		},
	}, nil
}
