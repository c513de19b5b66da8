package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/users-api/internal/lib/validation"
	"github.com/magabrotheeeer/users-api/internal/models"
)

func TestStatusOKWithData(t *testing.T) {
	resp := StatusOKWithData(map[string]any{"id": 1})
	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.Equal(t, map[string]any{"id": 1}, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("something broke")
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something broke", resp.Error)
}

func TestValidationError_Messages(t *testing.T) {
	v := validation.New()

	err := v.Struct(models.DummyCreateUser{
		Name:      "A",
		Email:     "not-an-email",
		Password:  "123",
		BirthDate: "3000-01-01",
		Phone:     "12345",
	})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t,
		"field Name must be at least 2 characters, "+
			"field Email must be a valid email address, "+
			"field Password must be at least 6 characters, "+
			"field BirthDate must be a date in the past in format 2006-01-02, "+
			"field Phone must contain 10 or 11 digits",
		resp.Error)
}

func TestValidationError_RequiredFields(t *testing.T) {
	v := validation.New()

	err := v.Struct(models.DummyUpdateUser{})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t,
		"field Name is a required field, "+
			"field Email is a required field, "+
			"field BirthDate is a required field, "+
			"field Active is a required field",
		resp.Error)
}
