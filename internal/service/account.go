package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cocktailapp/cocktail-server/internal/auth"
	"github.com/cocktailapp/cocktail-server/internal/domain"
	domainerrors "github.com/cocktailapp/cocktail-server/internal/errors"
	"github.com/cocktailapp/cocktail-server/internal/metrics"
	"github.com/cocktailapp/cocktail-server/internal/normalize"
	"github.com/cocktailapp/cocktail-server/internal/store"
)

// DeleteConfirmation must be sent verbatim to delete an account.
const DeleteConfirmation = "CONFIRMER"

// AccountService handles registration, login, token resolution and profile changes.
type AccountService struct {
	store   store.Store
	issuer  auth.TokenIssuer
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewAccountService creates a new account service. metrics may be nil.
func NewAccountService(s store.Store, issuer auth.TokenIssuer, m *metrics.Metrics, logger *slog.Logger) *AccountService {
	return &AccountService{
		store:   s,
		issuer:  issuer,
		metrics: m,
		logger:  orDiscard(logger),
		now:     time.Now,
	}
}

// RegisterRequest contains the data needed to open an account.
type RegisterRequest struct {
	Pseudo   string `json:"pseudo" validate:"required"`
	Password string `json:"mdp" validate:"required,max=1024"`
	Age      int    `json:"age"`
	Langue   string `json:"langue,omitempty"`
}

// AccessToken is a freshly issued bearer token.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// RegisterResult is the created account with its first token.
type RegisterResult struct {
	User  *domain.User
	Token AccessToken
}

// Register validates the request, creates the account and logs the user in.
func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	pseudo := normalize.Name(req.Pseudo)
	if err := checkPseudoLength(pseudo); err != nil {
		return nil, domainerrors.Validation(err.Error())
	}

	if !domain.ValidAge(req.Age) {
		return nil, domainerrors.Validationf(
			"L'âge '%d' n'est pas valide. Il doit être compris entre %d et %d ans.", req.Age, domain.MinAge, domain.MaxAge)
	}

	lang := domain.LocaleENG
	if strings.TrimSpace(req.Langue) != "" {
		parsed, ok := domain.ParseLocale(req.Langue)
		if !ok {
			return nil, unsupportedLanguage(req.Langue)
		}
		lang = parsed
	}

	if violations := auth.CheckPasswordPolicy(req.Password); len(violations) > 0 {
		return nil, domainerrors.ValidationWithDetails(
			"Le mot de passe ne respecte pas les critères de sécurité", map[string]any{"erreurs": violations})
	}

	taken, err := s.store.PseudoTaken(ctx, pseudo, 0)
	if err != nil {
		return nil, storageFailure(ctx, s.logger, "check pseudo", err)
	}
	if taken {
		return nil, pseudoTaken(pseudo)
	}

	user := domain.NewUser(pseudo, req.Age, lang, s.now())
	user.PasswordHash, err = auth.HashPassword(req.Password, user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if isAlreadyExists(err) {
			return nil, pseudoTaken(pseudo)
		}
		return nil, storageFailure(ctx, s.logger, "create user", err)
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordRegistration()
	s.logger.Info("user registered", "user_id", user.ID, "pseudo", user.Pseudo, "adult", user.IsAdult)

	return &RegisterResult{User: user, Token: token}, nil
}

// Login checks credentials and issues an access token.
// Unknown pseudo and wrong password are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, pseudo, password string) (*domain.User, AccessToken, error) {
	user, err := s.store.GetUserByPseudo(ctx, normalize.Name(pseudo))
	if err != nil {
		if isNotFound(err) {
			s.metrics.RecordLogin(false)
			return nil, AccessToken{}, domainerrors.ErrInvalidCredentials
		}
		return nil, AccessToken{}, storageFailure(ctx, s.logger, "get user by pseudo", err)
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		s.logger.Warn("unreadable password hash", "user_id", user.ID, "error", err)
	}
	if !ok {
		s.metrics.RecordLogin(false)
		return nil, AccessToken{}, domainerrors.ErrInvalidCredentials
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, AccessToken{}, err
	}
	s.metrics.RecordLogin(true)
	return user, token, nil
}

// Authenticate resolves a bearer token to its user.
func (s *AccountService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.issuer.Verify(token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, domainerrors.TokenExpired("Le token a expiré, veuillez vous reconnecter")
		}
		return nil, domainerrors.Unauthorized("Token invalide")
	}

	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, domainerrors.Unauthorized("Utilisateur introuvable")
		}
		return nil, storageFailure(ctx, s.logger, "get user", err)
	}
	return user, nil
}

func (s *AccountService) issue(user *domain.User) (AccessToken, error) {
	token, expiresAt, err := s.issuer.Issue(user.ID, user.Pseudo)
	if err != nil {
		return AccessToken{}, fmt.Errorf("issue token: %w", err)
	}
	return AccessToken{Token: token, ExpiresAt: expiresAt}, nil
}

// PasswordOutcome is the result of a password change attempt.
type PasswordOutcome int

// Password change outcomes.
const (
	PasswordChanged PasswordOutcome = iota
	PasswordUnchanged
	PasswordRejected
)

// ChangePassword replaces the user's password. The new password is compared with the
// current digest first, so resubmitting the same password reports PasswordUnchanged.
// Policy violations are returned with PasswordRejected.
func (s *AccountService) ChangePassword(ctx context.Context, user *domain.User, newPassword string) (PasswordOutcome, []string, error) {
	if same, _ := auth.VerifyPassword(user.PasswordHash, newPassword); same {
		return PasswordUnchanged, nil, nil
	}
	if violations := auth.CheckPasswordPolicy(newPassword); len(violations) > 0 {
		return PasswordRejected, violations, nil
	}

	hash, err := auth.HashPassword(newPassword, user.CreatedAt)
	if err != nil {
		return PasswordRejected, nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.store.UpdateUserPassword(ctx, user.ID, hash); err != nil {
		return PasswordRejected, nil, storageFailure(ctx, s.logger, "update password", err)
	}
	user.PasswordHash = hash
	return PasswordChanged, nil, nil
}

// UpdateProfileRequest lists the optional profile changes. Nil fields are left alone.
type UpdateProfileRequest struct {
	Pseudo   *string
	Password *string
	Langue   *string
}

// UpdateProfileResult reports which changes were applied and which were refused.
type UpdateProfileResult struct {
	Changes []string
	Errors  []string
	User    *domain.User
}

// Complete reports whether every requested change was applied.
func (r *UpdateProfileResult) Complete() bool {
	return len(r.Errors) == 0
}

// UpdateProfile attempts each requested change independently. It fails only when
// nothing was requested or when every requested change was refused.
func (s *AccountService) UpdateProfile(ctx context.Context, user *domain.User, req UpdateProfileRequest) (*UpdateProfileResult, error) {
	if req.Pseudo == nil && req.Password == nil && req.Langue == nil {
		return nil, domainerrors.Validation("Aucune donnée à mettre à jour")
	}

	result := &UpdateProfileResult{}

	if req.Pseudo != nil {
		if msg, err := s.changePseudo(ctx, user, *req.Pseudo); err != nil {
			return nil, err
		} else if msg != "" {
			result.Errors = append(result.Errors, msg)
		} else {
			result.Changes = append(result.Changes, "pseudo")
		}
	}

	if req.Password != nil {
		outcome, violations, err := s.ChangePassword(ctx, user, *req.Password)
		switch {
		case err != nil:
			return nil, err
		case outcome == PasswordUnchanged:
			result.Errors = append(result.Errors, "Le nouveau mot de passe est identique à l'ancien")
		case outcome == PasswordRejected:
			result.Errors = append(result.Errors, "Mot de passe invalide : "+strings.Join(violations, ", "))
		default:
			result.Changes = append(result.Changes, "mot de passe")
		}
	}

	if req.Langue != nil {
		lang, ok := domain.ParseLocale(*req.Langue)
		if !ok {
			result.Errors = append(result.Errors, unsupportedLanguage(*req.Langue).Message)
		} else if err := s.store.UpdateUserLanguage(ctx, user.ID, lang); err != nil {
			return nil, storageFailure(ctx, s.logger, "update language", err)
		} else {
			result.Changes = append(result.Changes, "langue")
		}
	}

	if len(result.Changes) == 0 {
		return nil, domainerrors.ValidationWithDetails(
			"Aucune modification n'a pu être effectuée", map[string]any{"erreurs": result.Errors})
	}

	updated, err := s.store.GetUser(ctx, user.ID)
	if err != nil {
		return nil, storageFailure(ctx, s.logger, "reload user", err)
	}
	result.User = updated

	s.logger.Info("profile updated", "user_id", user.ID, "changes", result.Changes, "refused", len(result.Errors))
	return result, nil
}

// changePseudo returns a user-facing refusal message, or an error for storage failures.
// Renaming to the current pseudo is accepted without a write.
func (s *AccountService) changePseudo(ctx context.Context, user *domain.User, raw string) (string, error) {
	pseudo := normalize.Name(raw)
	if pseudo == user.Pseudo {
		return "", nil
	}
	if err := checkPseudoLength(pseudo); err != nil {
		return err.Error(), nil
	}

	taken, err := s.store.PseudoTaken(ctx, pseudo, user.ID)
	if err != nil {
		return "", storageFailure(ctx, s.logger, "check pseudo", err)
	}
	if taken {
		return pseudoTaken(pseudo).Message, nil
	}

	if err := s.store.UpdateUserPseudo(ctx, user.ID, pseudo); err != nil {
		if isAlreadyExists(err) {
			return pseudoTaken(pseudo).Message, nil
		}
		return "", storageFailure(ctx, s.logger, "update pseudo", err)
	}
	user.Pseudo = pseudo
	return "", nil
}

// DeleteAccount removes the user, their inventory and their comments.
func (s *AccountService) DeleteAccount(ctx context.Context, user *domain.User, confirmation string) error {
	if strings.TrimSpace(confirmation) != DeleteConfirmation {
		return domainerrors.Conflict(fmt.Sprintf(
			"Suppression annulée : veuillez envoyer '%s' pour confirmer la suppression de votre compte", DeleteConfirmation))
	}

	if err := s.store.DeleteUser(ctx, user.ID); err != nil {
		if isNotFound(err) {
			return domainerrors.NotFound("Utilisateur introuvable")
		}
		return storageFailure(ctx, s.logger, "delete user", err)
	}

	s.logger.Info("account deleted", "user_id", user.ID, "pseudo", user.Pseudo)
	return nil
}

func checkPseudoLength(pseudo string) error {
	n := utf8.RuneCountInString(pseudo)
	if n < domain.MinPseudoLength {
		return fmt.Errorf("Le pseudo doit contenir au moins %d caractères", domain.MinPseudoLength) //nolint:staticcheck // user-facing sentence
	}
	if n > domain.MaxPseudoLength {
		return fmt.Errorf("Le pseudo ne doit pas dépasser %d caractères", domain.MaxPseudoLength) //nolint:staticcheck // user-facing sentence
	}
	return nil
}

func pseudoTaken(pseudo string) *domainerrors.Error {
	return domainerrors.AlreadyExists(fmt.Sprintf("Le pseudo '%s' est déjà utilisé", pseudo))
}

func unsupportedLanguage(raw string) *domainerrors.Error {
	return domainerrors.Validationf(
		"La langue '%s' n'est pas supportée. Langues disponibles : FRA, ESP, ITA, ENG, GER", strings.TrimSpace(raw))
}
