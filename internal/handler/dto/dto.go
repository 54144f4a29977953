// Package dto provides Data Transfer Objects for API requests and
// responses, plus the request validator enforcing the input contracts.
package dto

import (
	"math"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	letterRegex   = regexp.MustCompile(`[a-zA-Z]`)
	digitRegex    = regexp.MustCompile(`[0-9]`)
)

// NewValidator creates the request validator with the application's
// custom rules registered.
func NewValidator() *validator.Validate {
	v := validator.New()

	// usernamechars: letters and spaces only.
	_ = v.RegisterValidation("usernamechars", func(fl validator.FieldLevel) bool {
		return usernameRegex.MatchString(fl.Field().String())
	})

	// passwordchars: at least one letter and one digit.
	_ = v.RegisterValidation("passwordchars", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return letterRegex.MatchString(s) && digitRegex.MatchString(s)
	})

	// decimal2: at most two decimal places.
	_ = v.RegisterValidation("decimal2", func(fl validator.FieldLevel) bool {
		cents := fl.Field().Float() * 100
		return math.Abs(cents-math.Round(cents)) < 1e-9
	})

	return v
}

// ValidationMessage renders a caller-safe message for a failed request
// validation.
func ValidationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "Invalid request body"
	}

	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, fe.Field()+" failed "+fe.Tag()+" validation")
	}
	return strings.Join(parts, "; ")
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
