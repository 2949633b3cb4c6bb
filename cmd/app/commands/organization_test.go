package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoMocks "github.com/allisson/whistleblower/internal/crypto/usecase/mocks"
	apperrors "github.com/allisson/whistleblower/internal/errors"
	orgDomain "github.com/allisson/whistleblower/internal/organization/domain"
	orgUseCase "github.com/allisson/whistleblower/internal/organization/usecase"
	orgMocks "github.com/allisson/whistleblower/internal/organization/usecase/mocks"
)

func TestRunCreateOrganization(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	orgID := uuid.New()
	input := orgUseCase.CreateOrganizationInput{
		Name:          "Acme GmbH",
		Slug:          "acme",
		ContactEmail:  "compliance@acme.test",
		Plan:          orgDomain.PlanStarter,
		AdminEmail:    "officer@acme.test",
		AdminPassword: "correct horse battery",
	}
	output := &orgUseCase.CreateOrganizationOutput{
		OrganizationID: orgID,
		Slug:           "acme",
		RecoveryKey:    "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff",
	}

	t.Run("Success_Text", func(t *testing.T) {
		useCase := &orgMocks.MockUseCase{}
		useCase.On("Create", ctx, input).Return(output, nil)

		var out bytes.Buffer
		err := RunCreateOrganization(ctx, useCase, logger, &out, input, "text")

		require.NoError(t, err)
		assert.Contains(t, out.String(), orgID.String())
		assert.Contains(t, out.String(), "Recovery Key: "+output.RecoveryKey)
		useCase.AssertExpectations(t)
	})

	t.Run("Success_JSON", func(t *testing.T) {
		useCase := &orgMocks.MockUseCase{}
		useCase.On("Create", ctx, input).Return(output, nil)

		var out bytes.Buffer
		err := RunCreateOrganization(ctx, useCase, logger, &out, input, "json")
		require.NoError(t, err)

		var decoded map[string]string
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		assert.Equal(t, orgID.String(), decoded["organization_id"])
		assert.Equal(t, "acme", decoded["slug"])
		assert.Equal(t, output.RecoveryKey, decoded["recovery_key"])
	})

	t.Run("Error_Conflict", func(t *testing.T) {
		useCase := &orgMocks.MockUseCase{}
		useCase.On("Create", ctx, input).Return(nil, orgDomain.ErrSlugTaken)

		var out bytes.Buffer
		err := RunCreateOrganization(ctx, useCase, logger, &out, input, "text")

		assert.ErrorIs(t, err, orgDomain.ErrSlugTaken)
		assert.Empty(t, out.String())
	})
}

func TestRunVerifyOrganizationKey(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	keyHex := "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"

	t.Run("Success_Match", func(t *testing.T) {
		keys := &cryptoMocks.MockOrganizationKeyUseCase{}
		keys.On("Verify", ctx, orgID, keyHex).Return(true, nil)

		var out bytes.Buffer
		err := RunVerifyOrganizationKey(ctx, keys, &out, orgID.String(), keyHex)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Key matches organization "+orgID.String())
		keys.AssertExpectations(t)
	})

	t.Run("Error_Mismatch", func(t *testing.T) {
		keys := &cryptoMocks.MockOrganizationKeyUseCase{}
		keys.On("Verify", ctx, orgID, keyHex).Return(false, nil)

		err := RunVerifyOrganizationKey(ctx, keys, &bytes.Buffer{}, orgID.String(), keyHex)

		assert.ErrorContains(t, err, "key does not match")
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		keys := &cryptoMocks.MockOrganizationKeyUseCase{}
		keys.On("Verify", ctx, orgID, keyHex).Return(false, apperrors.ErrNotFound)

		err := RunVerifyOrganizationKey(ctx, keys, &bytes.Buffer{}, orgID.String(), keyHex)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Error_MalformedKey", func(t *testing.T) {
		keys := &cryptoMocks.MockOrganizationKeyUseCase{}

		err := RunVerifyOrganizationKey(ctx, keys, &bytes.Buffer{}, orgID.String(), "not-a-key")

		assert.ErrorContains(t, err, "invalid key")
		keys.AssertNotCalled(t, "Verify")
	})

	t.Run("Error_InvalidOrganizationID", func(t *testing.T) {
		err := RunVerifyOrganizationKey(ctx, &cryptoMocks.MockOrganizationKeyUseCase{}, &bytes.Buffer{}, "nope", keyHex)

		assert.ErrorContains(t, err, "invalid organization id")
	})
}
