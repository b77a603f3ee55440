package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators registers custom validators and the JSON field-name
// resolver on the validator instance.
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("digits", Digits)

	// Report field names as they appear on the wire, not as Go identifiers.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Digits validates that a string consists of ASCII digits only.
func Digits(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // combine with required if the field is mandatory
	}
	for _, r := range val {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
