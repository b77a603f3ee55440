package validation_test

import (
	"testing"

	"candidate-tracker-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" validate:"required,min=2"`
	Phone string `json:"phone" validate:"required,digits,len=10"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	validation.RegisterValidators(v)
	return v
}

func TestDigitsValidator(t *testing.T) {
	v := newValidator()

	cases := map[string]bool{
		"0123456789": true,
		"12345abcde": false,
		"+123456789": false,
		"12 3456789": false,
	}
	for input, want := range cases {
		err := v.Struct(sample{Name: "ok", Phone: input})
		if want {
			assert.NoError(t, err, input)
		} else {
			assert.Error(t, err, input)
		}
	}
}

func TestDetailsUsesWireFieldNames(t *testing.T) {
	v := newValidator()

	err := v.Struct(sample{Name: "", Phone: "abc"})
	require.Error(t, err)

	details := validation.Details(err)
	require.NotNil(t, details)
	assert.Equal(t, []string{"Name cannot be empty."}, details["name"])
	assert.Equal(t, []string{"Phone number must contain only digits."}, details["phone"])
	assert.NotContains(t, details, "Name") // Go identifiers must not leak
}

func TestDetailsIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, validation.Details(nil))
	assert.Nil(t, validation.Details(assert.AnError))
}
