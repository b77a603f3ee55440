package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// DuplicateEmailMessage is the field error reported when another candidate
// already holds the (normalized) email address.
const DuplicateEmailMessage = "A candidate with this email already exists."

// fieldMessages maps wire field name -> failing tag -> user-facing message.
var fieldMessages = map[string]map[string]string{
	"name": {
		"required": "Name cannot be empty.",
		"min":      "Name must be at least 2 characters long.",
	},
	"email": {
		"required": "Email cannot be empty.",
		"email":    "Enter a valid email address.",
	},
	"phone": {
		"required": "Phone number cannot be empty.",
		"digits":   "Phone number must contain only digits.",
		"len":      "Phone number must be exactly 10 digits.",
	},
	"position_applied": {
		"required": "Position applied cannot be empty.",
	},
	"status": {
		"oneof": "Status must be one of: Applied, Interview, Selected, Rejected.",
	},
	"username": {
		"required": "Username is required.",
	},
	"password": {
		"required": "Password is required.",
	},
}

// Details converts a validator error into per-field message lists. All field
// failures are collected so the caller sees every problem in one response.
// Returns nil when err is not a validation error.
func Details(err error) map[string][]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	details := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		msg := ""
		if byTag, ok := fieldMessages[field]; ok {
			msg = byTag[fe.Tag()]
		}
		if msg == "" {
			msg = fmt.Sprintf("Invalid value for %s.", field)
		}
		details[field] = append(details[field], msg)
	}
	return details
}
