package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginRequest_Validate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		req := LoginRequest{Email: "erika@mueller.de", Password: "geheim"}
		assert.NoError(t, req.Validate())
	})

	t.Run("Error_BlankEmail", func(t *testing.T) {
		req := LoginRequest{Email: "   ", Password: "geheim"}
		assert.Error(t, req.Validate())
	})

	t.Run("Error_MissingPassword", func(t *testing.T) {
		req := LoginRequest{Email: "erika@mueller.de"}
		assert.Error(t, req.Validate())
	})
}
