// Package validator checks contact form submissions before they reach the
// database.
package validator

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation errors
var (
	ErrMissingRequiredFields = errors.New("name, email, and message are required")
	ErrInvalidEmail          = errors.New("invalid email format")
)

// emailShapeTag is the struct tag registered for the local@domain.tld check
const emailShapeTag = "email_shape"

// emailShapeRegex accepts non-space@non-space.non-space and nothing stricter
var emailShapeRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactSubmission is a contact form payload after trimming
type ContactSubmission struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email_shape"`
	Company string
	Message string `validate:"required"`
}

// NewContactSubmission trims surrounding whitespace from every field
func NewContactSubmission(name, email, company, message string) ContactSubmission {
	return ContactSubmission{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Company: strings.TrimSpace(company),
		Message: strings.TrimSpace(message),
	}
}

// ContactValidator validates contact submissions.
// It is safe for concurrent use.
type ContactValidator struct {
	validate *validator.Validate
}

// NewContactValidator creates a ContactValidator with the email shape rule registered
func NewContactValidator() *ContactValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation(emailShapeTag, func(fl validator.FieldLevel) bool {
		return IsEmailShape(fl.Field().String())
	})
	return &ContactValidator{validate: v}
}

// Validate reports ErrMissingRequiredFields before ErrInvalidEmail, so a
// submission with both problems gets the presence error.
func (v *ContactValidator) Validate(s ContactSubmission) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return ErrMissingRequiredFields
		}
	}
	return ErrInvalidEmail
}

// IsEmailShape reports whether email looks like local@domain.tld
func IsEmailShape(email string) bool {
	return emailShapeRegex.MatchString(email)
}
