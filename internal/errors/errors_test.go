package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeValidation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeTokenExpired, http.StatusUnauthorized},
		{CodeInvalidCredentials, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeConflict, http.StatusConflict},
		{CodeAlreadyExists, http.StatusConflict},
		{CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := Validation("La note doit être entre 1 et 5")
	assert.True(t, Is(err, ErrValidation))
	assert.False(t, Is(err, ErrNotFound))

	wrapped := fmt.Errorf("ajout commentaire: %w", err)
	assert.True(t, Is(wrapped, ErrValidation))
}

func TestError_WrapKeepsCause(t *testing.T) {
	cause := New("disk full")
	err := Wrap(cause, CodeInternal, "Erreur interne")

	assert.Equal(t, "Erreur interne: disk full", err.Error())
	assert.True(t, Is(err, cause))
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
}

func TestError_WithDetails(t *testing.T) {
	base := Validation("Aucune modification n'a pu être effectuée")
	withDetails := base.WithDetails(map[string]any{"erreurs": []string{"Pseudo déjà utilisé"}})

	assert.Nil(t, base.Details)
	assert.NotNil(t, withDetails.Details)
	assert.Equal(t, base.Message, withDetails.Message)
}
