package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/apperr"
)

type statusForm struct {
	Status string `form:"status" validate:"required,oneof=OPEN CLOSED"`
	Email  string `form:"email,omitempty" validate:"omitempty,email"`
	Note   string `validate:"max=5"`
}

func TestFromBindError(t *testing.T) {
	in := statusForm{Status: "DONE", Email: "nope", Note: "too long"}
	err := validator.New().Struct(&in)

	got := FromBindError(err, &in)
	assert.Equal(t, "Choose one of: OPEN, CLOSED.", got["status"])
	assert.Equal(t, "Enter a valid email address.", got["email"])
	assert.Equal(t, "Must be at most 5 characters.", got["note"])
}

func TestFromBindErrorOther(t *testing.T) {
	got := FromBindError(errors.New("EOF"), &statusForm{})
	assert.Equal(t, map[string]string{"_": "The form could not be read. Please try again."}, got.Map())
}

func TestInvalidCarriesFields(t *testing.T) {
	in := statusForm{Status: "DONE"}
	err := Invalid(validator.New().Struct(&in), &in)

	ae, ok := apperr.As(err)
	assert.True(t, ok)
	assert.Equal(t, apperr.Invalid, ae.Kind)
	assert.Equal(t, "Please correct the highlighted fields.", ae.PublicMsg)
	assert.Equal(t, "Choose one of: OPEN, CLOSED.", ae.Fields["status"])
}
