// Package validation checks request payloads with validator/v10 and reports failures in French.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cocktailapp/cocktail-server/internal/domain"
	domainerrors "github.com/cocktailapp/cocktail-server/internal/errors"
)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator with the cocktail-specific tags registered.
func New() *Validator {
	v := validator.New()

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			name = fld.Tag.Get("query")
		}
		if name == "" {
			return fld.Name
		}
		if i := strings.IndexByte(name, ','); i >= 0 {
			name = name[:i]
		}
		if name == "-" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("locale", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseLocale(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("alcohol", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseAlcohol(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Validator{v: v}
}

// Validate validates a struct and returns a domain error.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrors := make(map[string]string, len(validationErrs))
	parts := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		msg := v.friendlyMessage(e)
		fieldErrors[e.Field()] = msg
		parts = append(parts, e.Field()+" "+msg)
	}

	return domainerrors.ValidationWithDetails("Paramètres invalides : "+strings.Join(parts, ", "), fieldErrors)
}

//nolint:gocyclo // Switch statement covering validation tags is intentionally exhaustive.
func (v *Validator) friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		return "est obligatoire"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("doit contenir au moins %s caractères", e.Param())
		}
		return "doit être supérieur ou égal à " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("ne doit pas dépasser %s caractères", e.Param())
		}
		return "doit être inférieur ou égal à " + e.Param()
	case "len":
		return fmt.Sprintf("doit contenir exactement %s caractères", e.Param())
	case "oneof":
		return "doit être l'une des valeurs : " + e.Param()
	case "gte":
		return "doit être supérieur ou égal à " + e.Param()
	case "lte":
		return "doit être inférieur ou égal à " + e.Param()
	case "gt":
		return "doit être strictement supérieur à " + e.Param()
	case "lt":
		return "doit être strictement inférieur à " + e.Param()
	case "locale":
		return "doit être l'une des langues : FRA, ESP, ITA, ENG, GER"
	case "alcohol":
		return "doit être 'Alcoholic', 'Non alcoholic' ou 'Optional alcohol'"
	case "dive":
		return "contient une valeur invalide"
	default:
		return "est invalide"
	}
}
