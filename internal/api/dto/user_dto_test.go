package dto

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigninRequest_Validate(t *testing.T) {
	assert.NoError(t, SigninRequest{ID: "alice", Password: "secret123"}.Validate())

	err := SigninRequest{}.Validate()
	require.Error(t, err)
	details := ValidationDetails(err)
	assert.Contains(t, details, "id")
	assert.Contains(t, details, "password")

	err = SigninRequest{ID: "alice", Password: strings.Repeat("p", maxPasswordLength+1)}.Validate()
	require.Error(t, err)
	details = ValidationDetails(err)
	assert.NotContains(t, details, "id")
	assert.Contains(t, details, "password")
}

func TestGeneratePasswordRequest_Validate(t *testing.T) {
	assert.NoError(t, GeneratePasswordRequest{Password: "pw"}.Validate())
	assert.Error(t, GeneratePasswordRequest{}.Validate())
}

func TestValidationDetails_NonValidationError(t *testing.T) {
	details := ValidationDetails(errors.New("boom"))
	assert.Equal(t, map[string]any{"payload": "boom"}, details)
}
