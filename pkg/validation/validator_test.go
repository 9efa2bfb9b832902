package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email string      `json:"email" binding:"required,email"`
	Name  null.String `json:"name" binding:"omitnil,max=5"`
	Role  string      `json:"role" binding:"required,oneof=admin user"`
	Count int         `json:"count" binding:"gte=1"`
}

func TestMessages_TranslatesAndOverrides(t *testing.T) {
	require.NoError(t, Setup())

	err := binding.Validator.ValidateStruct(&sample{
		Email: "nope",
		Name:  null.StringFrom("too long name"),
		Role:  "root",
	})
	require.Error(t, err)

	msgs := Messages(err)
	assert.Equal(t, "email must be a valid email address", msgs["email"])
	assert.Equal(t, "role must be either admin or user", msgs["role"])
	assert.Contains(t, msgs["name"], "name")
	assert.Contains(t, msgs["count"], "count")
}

func TestNullableOmitNil(t *testing.T) {
	require.NoError(t, Setup())

	err := binding.Validator.ValidateStruct(&sample{
		Email: "a@example.com",
		Role:  "user",
		Count: 1,
	})
	assert.NoError(t, err)
}

func TestMessages_NonValidationError(t *testing.T) {
	assert.Nil(t, Messages(assert.AnError))
}
