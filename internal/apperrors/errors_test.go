package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("update project: %w", NotFound("Project"))

	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestHTTPStatusUnknownError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestDuplicateIsBadRequest(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: admins.account")
	err := Duplicate("Admin already exists", cause)

	assert.True(t, IsDuplicate(err))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
	assert.ErrorIs(t, err, cause)
}

func TestFromValidator(t *testing.T) {
	type draft struct {
		Title string `validate:"required"`
		Email string `validate:"required,email"`
	}

	err := validator.New().Struct(draft{Email: "nope"})
	require.Error(t, err)

	appErr := FromValidator(err)
	assert.Equal(t, CodeValidationFailed, appErr.Code)
	assert.Equal(t, "Title is required; Email must be a valid email", appErr.Message)
}
