package handler

import (
	httpvalidator "github.com/Avaneesh40585/Secrets-App/internal/delivery/http/validator"
)

// registrationFailureMessage picks the message shown above the registration
// form. The email check runs first; an unrecognized failure falls back to a
// generic message.
func registrationFailureMessage(err error) string {
	failures := httpvalidator.FieldFailures(err)
	if _, ok := failures["Email"]; ok {
		return "Invalid email format."
	}
	if _, ok := failures["Password"]; ok {
		return "Password must be at least 6 characters."
	}

	return "Invalid registration input."
}
