package config

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	loomerrors "github.com/loomkit/loom/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	tokenNamePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("token_name", func(fl validator.FieldLevel) bool {
			return tokenNamePattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// ValidatePreferences performs schema validation on a preferences document.
func ValidatePreferences(prefs *Preferences) error {
	if prefs == nil {
		return loomerrors.NewValidationError("preferences", "preferences are nil", nil)
	}

	if err := validatorInstance().Struct(prefs); err != nil {
		return convertValidationError(err)
	}
	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return loomerrors.NewValidationError(field, msg, err)
	}

	return loomerrors.NewValidationError("config", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	var lowered []string
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(snakeCase(part)))
	}
	return strings.Join(lowered, ".")
}

// snakeCase maps Go field names to their YAML spellings, e.g. PrimaryColor
// to primary_color.
func snakeCase(name string) string {
	var sb strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' && i > 0 {
			sb.WriteByte('_')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
