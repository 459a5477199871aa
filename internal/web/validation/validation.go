// Package validation wires the request validator with the custom rules of
// the API.
package validation

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

// PasswordRule is the tag name of the letter-and-digit password rule.
const PasswordRule = "passwd"

// New creates a validator with the custom rules registered.
func New() *validator.Validate {
	v := validator.New()

	// registration only fails for an empty tag
	_ = v.RegisterValidation(PasswordRule, hasLetterAndDigit)

	return v
}

// hasLetterAndDigit requires at least one letter and one digit; the length
// and alphanumeric constraints are separate tags.
func hasLetterAndDigit(fl validator.FieldLevel) bool {
	var letter, digit bool

	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	return letter && digit
}
