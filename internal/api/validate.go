package api

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator with the password-composition rule the
// signup and admin forms share: 8-16 chars with at least one uppercase
// letter, one digit and one special character from !@#$&*.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("password", validPassword)
	return v
}

func validPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 || len(password) > 16 {
		return false
	}

	hasUpper := false
	hasDigit := false
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}
	hasSpecial := strings.ContainsAny(password, "!@#$&*")

	return hasUpper && hasDigit && hasSpecial
}
