// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// loginEmailPattern accepts anything shaped local@domain.tld without
// consecutive-whitespace or missing-part surprises. It is deliberately loose;
// the mailbox is never verified.
var loginEmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// EchoValidator wraps a validator.Validate instance for echo.
type EchoValidator struct {
	validate *validator.Validate
}

// New creates an EchoValidator with the custom rules registered.
func New() (*EchoValidator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	if err := v.RegisterValidation("login_email", func(fl validator.FieldLevel) bool {
		return loginEmailPattern.MatchString(fl.Field().String())
	}); err != nil {
		return nil, errors.Wrap(err, "register login_email rule")
	}

	return &EchoValidator{validate: v}, nil
}

// Validate implements echo.Validator.
func (v *EchoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// FieldFailures maps failed struct fields to their violated tag. It returns
// nil when err does not carry field-level details.
func FieldFailures(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	failures := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		failures[fe.Field()] = fe.Tag()
	}

	return failures
}
