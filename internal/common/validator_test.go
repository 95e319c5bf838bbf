package common

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator(t *testing.T) {
	v := NewValidator()
	assert.True(t, v.Valid())

	v.Check(false, "title", "must be provided")
	assert.False(t, v.Valid())
	assert.Equal(t, "must be provided", v.Errors["title"])

	// only the first error per field is kept
	v.Check(false, "title", "must not be blank")
	assert.Equal(t, "must be provided", v.Errors["title"])

	v.Check(true, "body", "must be provided")
	_, ok := v.Errors["body"]
	assert.False(t, ok)
}

func TestValidatorMatches(t *testing.T) {
	v := NewValidator()
	rx := regexp.MustCompile("^[a-z]+$")

	assert.True(t, v.Matches("abc", rx))
	assert.False(t, v.Matches("abc1", rx))
}

func TestValidationError(t *testing.T) {
	v := NewValidator()
	v.AddError("email", "must be a valid email address")

	err := v.ValidationError()

	var validationErr ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, map[string]string{"email": "must be a valid email address"}, validationErr.Errors)
}
