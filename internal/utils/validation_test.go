package utils

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorsPerField(t *testing.T) {
	type form struct {
		Name  string `validate:"required,min=2"`
		Email string `validate:"required,email"`
	}

	v := validator.New()
	err := v.Struct(form{Name: "", Email: "pas-un-email"})
	require.Error(t, err)

	fields := ValidationErrors(err)
	require.Len(t, fields, 2)

	assert.Equal(t, "name", fields[0].Field)
	assert.Contains(t, fields[0].Message, "obligatoire")
	assert.Equal(t, "email", fields[1].Field)
	assert.Equal(t, "Adresse e-mail invalide", fields[1].Message)
}

func TestValidationErrorsNonValidatorError(t *testing.T) {
	fields := ValidationErrors(errors.New("EOF"))

	require.Len(t, fields, 1)
	assert.Equal(t, "body", fields[0].Field)
	assert.Equal(t, "EOF", fields[0].Message)
}
