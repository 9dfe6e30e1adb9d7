package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckPasswordPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     []string
	}{
		{"valid", "Mojito2024!", nil},
		{"too short", "Mo1!a", []string{"Le mot de passe doit contenir au moins 8 caractères"}},
		{"no upper", "mojito2024!", []string{"Le mot de passe doit contenir au moins une majuscule"}},
		{"no lower", "MOJITO2024!", []string{"Le mot de passe doit contenir au moins une minuscule"}},
		{"no digit", "Mojitoooo!", []string{"Le mot de passe doit contenir au moins un chiffre"}},
		{"no special", "Mojito2024", []string{"Le mot de passe doit contenir au moins un caractère spécial"}},
		{"dash is not special", "Mojito-2024", []string{"Le mot de passe doit contenir au moins un caractère spécial"}},
		{"empty", "", []string{
			"Le mot de passe doit contenir au moins 8 caractères",
			"Le mot de passe doit contenir au moins une majuscule",
			"Le mot de passe doit contenir au moins une minuscule",
			"Le mot de passe doit contenir au moins un chiffre",
			"Le mot de passe doit contenir au moins un caractère spécial",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckPasswordPolicy(tt.password))
		})
	}
}
