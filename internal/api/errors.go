package api

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/cocktailapp/cocktail-server/internal/errors"
	"github.com/cocktailapp/cocktail-server/internal/store"
)

// CodeRateLimited is returned with 429 responses.
const CodeRateLimited = "RATE_LIMITED"

// APIError is a custom error type that implements huma.StatusError.
// It maps domain errors to HTTP responses with consistent structure.
type APIError struct { //nolint:revive // API prefix is intentional for clarity
	status  int
	Code    string `json:"code" doc:"Machine-readable error code"`
	Message string `json:"message" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.status
}

// ContentType returns the content type for the error response.
func (e *APIError) ContentType(_ string) string {
	return "application/json"
}

// RegisterErrorHandler configures huma to use domain errors.
// Call this after creating the huma.API but before registering routes.
func RegisterErrorHandler() {
	huma.NewError = newError
}

func newError(status int, message string, errs ...error) huma.StatusError {
	var invalid []string
	for _, err := range errs {
		var domainErr *domainerrors.Error
		if errors.As(err, &domainErr) {
			return &APIError{
				status:  domainErr.HTTPStatus(),
				Code:    string(domainErr.Code),
				Message: domainErr.Message,
				Details: domainErr.Details,
			}
		}

		if errors.Is(err, store.ErrNotFound) {
			return &APIError{
				status:  http.StatusNotFound,
				Code:    string(domainerrors.CodeNotFound),
				Message: "Ressource introuvable",
			}
		}

		var detail huma.ErrorDetailer
		if errors.As(err, &detail) {
			d := detail.ErrorDetail()
			invalid = append(invalid, d.Location+": "+d.Message)
		}
	}

	// Request decoding failures are invalid arguments.
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
		message = "Requête invalide"
	}

	apiErr := &APIError{
		status:  status,
		Code:    statusToCode(status),
		Message: message,
	}
	if len(invalid) > 0 {
		apiErr.Details = map[string]any{"erreurs": invalid}
	}
	if status >= http.StatusInternalServerError {
		apiErr.Message = "Une erreur interne est survenue"
	}
	return apiErr
}

// statusToCode maps HTTP status codes to our domain error codes.
func statusToCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return string(domainerrors.CodeValidation)
	case http.StatusUnauthorized:
		return string(domainerrors.CodeUnauthorized)
	case http.StatusForbidden:
		return string(domainerrors.CodeForbidden)
	case http.StatusNotFound:
		return string(domainerrors.CodeNotFound)
	case http.StatusConflict:
		return string(domainerrors.CodeConflict)
	case http.StatusTooManyRequests:
		return CodeRateLimited
	default:
		if status < http.StatusInternalServerError {
			return string(domainerrors.CodeValidation)
		}
		return string(domainerrors.CodeInternal)
	}
}
