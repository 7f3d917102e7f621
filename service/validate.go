package service

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	msgInvalidEmail    = "Enter a valid email like you@school.edu."
	msgInvalidPassword = "Password: min 8 chars, include at least one number and one special character."
	minPasswordLength  = 8
)

var (
	emailShape    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	passwordDigit = regexp.MustCompile(`[0-9]`)
	passwordMark  = regexp.MustCompile(`[^\w\s]`)
)

// LoginInput is the credential pair typed on the sign-in form.
type LoginInput struct {
	Email    string `validate:"emailshape"`
	Password string `validate:"password"`
}

var loginValidator = newLoginValidator()

func newLoginValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return utf8.RuneCountInString(value) >= minPasswordLength &&
			passwordDigit.MatchString(value) &&
			passwordMark.MatchString(value)
	})
	return validate
}

// ValidateLogin trims both fields and checks them before any request is
// made. The returned error text is meant for display.
func ValidateLogin(email string, password string) (LoginInput, error) {
	input := LoginInput{
		Email:    strings.TrimSpace(email),
		Password: strings.TrimSpace(password),
	}
	if err := loginValidator.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			// Email is checked first, matching field order.
			for _, fe := range fieldErrs {
				if fe.Field() == "Email" {
					return input, errors.New(msgInvalidEmail)
				}
			}
			return input, errors.New(msgInvalidPassword)
		}
		return input, err
	}
	return input, nil
}
