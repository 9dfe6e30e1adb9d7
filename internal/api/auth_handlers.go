package api

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/cocktailapp/cocktail-server/internal/errors"
	"github.com/cocktailapp/cocktail-server/internal/service"
)

const tokenTypeBearer = "bearer"

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/auth/token",
		Summary:     "Connexion",
		Description: "Échange un pseudo et un mot de passe contre un token d'accès. Accepte du JSON {pseudo, mdp} ou un formulaire username/password.",
		Tags:        []string{"Auth"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/auth/inscription",
		Summary:       "Inscription",
		Description:   "Crée un compte et renvoie un token d'accès",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, s.handleRegister)
}

// === DTOs ===

// LoginRequest is the JSON login body.
type LoginRequest struct {
	Pseudo   string `json:"pseudo"`
	Password string `json:"mdp"`
}

// LoginInput carries the raw body so both JSON and form logins are accepted.
type LoginInput struct {
	ContentType string `header:"Content-Type"`
	RawBody     []byte
}

// TokenResponse contains an access token.
type TokenResponse struct {
	AccessToken string `json:"access_token" doc:"Bearer access token"`
	TokenType   string `json:"token_type" doc:"Token type (bearer)"`
	ExpiresIn   int    `json:"expires_in" doc:"Token lifetime in seconds"`
}

// TokenOutput wraps the token response for Huma.
type TokenOutput struct {
	Body TokenResponse
}

// RegisterRequest is the request body for registration.
type RegisterRequest struct {
	Pseudo   string `json:"pseudo" doc:"Pseudo, 3 à 30 caractères"`
	Password string `json:"mdp" doc:"Mot de passe"`
	Age      int    `json:"age" doc:"Âge, entre 13 et 130 ans"`
	Langue   string `json:"langue,omitempty" doc:"Langue des instructions: FRA, ESP, ITA, ENG ou GER"`
}

// RegisterInput wraps the register request for Huma.
type RegisterInput struct {
	Body RegisterRequest
}

// RegisterResponse contains the created account and its first token.
type RegisterResponse struct {
	Message     string `json:"message" doc:"Status message"`
	Pseudo      string `json:"pseudo" doc:"Registered pseudo"`
	ID          int64  `json:"id" doc:"User ID"`
	AccessToken string `json:"access_token" doc:"Bearer access token"`
	TokenType   string `json:"token_type" doc:"Token type (bearer)"`
}

// RegisterOutput wraps the register response for Huma.
type RegisterOutput struct {
	Body RegisterResponse
}

// === Handlers ===

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*TokenOutput, error) {
	pseudo, password, err := parseCredentials(input.ContentType, input.RawBody)
	if err != nil {
		return nil, err
	}

	_, token, err := s.services.Accounts.Login(ctx, pseudo, password)
	if err != nil {
		return nil, err
	}

	return &TokenOutput{Body: tokenResponse(token)}, nil
}

func (s *Server) handleRegister(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	res, err := s.services.Accounts.Register(ctx, service.RegisterRequest{
		Pseudo:   input.Body.Pseudo,
		Password: input.Body.Password,
		Age:      input.Body.Age,
		Langue:   input.Body.Langue,
	})
	if err != nil {
		return nil, err
	}

	return &RegisterOutput{
		Body: RegisterResponse{
			Message:     "Utilisateur créé",
			Pseudo:      res.User.Pseudo,
			ID:          res.User.ID,
			AccessToken: res.Token.Token,
			TokenType:   tokenTypeBearer,
		},
	}, nil
}

// parseCredentials reads pseudo and password from a form or JSON body.
func parseCredentials(contentType string, body []byte) (pseudo, password string, err error) {
	mediaType, _, _ := mime.ParseMediaType(contentType)

	if mediaType == "application/x-www-form-urlencoded" {
		values, perr := url.ParseQuery(string(body))
		if perr != nil {
			return "", "", domainerrors.Validation("Formulaire de connexion illisible")
		}
		pseudo, password = values.Get("username"), values.Get("password")
	} else {
		var req LoginRequest
		if jerr := json.Unmarshal(body, &req); jerr != nil {
			return "", "", domainerrors.Validation("Corps de requête JSON invalide")
		}
		pseudo, password = req.Pseudo, req.Password
	}

	if pseudo == "" || password == "" {
		return "", "", domainerrors.Validation("Le pseudo et le mot de passe sont requis")
	}
	return pseudo, password, nil
}

func tokenResponse(token service.AccessToken) TokenResponse {
	return TokenResponse{
		AccessToken: token.Token,
		TokenType:   tokenTypeBearer,
		ExpiresIn:   int(time.Until(token.ExpiresAt).Round(time.Second).Seconds()),
	}
}
