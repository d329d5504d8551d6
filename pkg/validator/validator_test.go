package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=PATIENT DOCTOR"`
	Date  string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func TestFormatValidationErrors_UsesJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&sample{Email: "nope", Role: "NURSE", Date: "01/02/2024"})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Equal(t, "email must be a valid email address", errs["email"])
	assert.Equal(t, "role must be one of: PATIENT, DOCTOR", errs["role"])
	assert.Equal(t, "date must match the format 2006-01-02", errs["date"])
}

func TestValidate_Passes(t *testing.T) {
	assert.NoError(t, NewValidator().Validate(&sample{Email: "a@b.co", Role: "DOCTOR"}))
}
