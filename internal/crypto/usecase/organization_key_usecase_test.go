package usecase

import (
	"bytes"
	"context"
	"encoding/hex"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/whistleblower/internal/crypto/domain"
	cryptoService "github.com/allisson/whistleblower/internal/crypto/service"
	usecaseMocks "github.com/allisson/whistleblower/internal/crypto/usecase/mocks"
	apperrors "github.com/allisson/whistleblower/internal/errors"
)

type keyFixture struct {
	repo       *usecaseMocks.MockOrganizationKeyRepository
	keyManager cryptoService.KeyManager
	masterKey  *cryptoDomain.MasterKey
	useCase    OrganizationKeyUseCase
}

func newKeyFixture(t *testing.T) *keyFixture {
	t.Helper()
	masterKey, err := cryptoDomain.NewMasterKey(bytes.Repeat([]byte{0x42}, cryptoDomain.KeySize))
	require.NoError(t, err)

	repo := &usecaseMocks.MockOrganizationKeyRepository{}
	keyManager := cryptoService.NewKeyManager(cryptoService.NewAESGCMFieldCipher())

	return &keyFixture{
		repo:       repo,
		keyManager: keyManager,
		masterKey:  masterKey,
		useCase:    NewOrganizationKeyUseCase(repo, keyManager, masterKey),
	}
}

func TestOrganizationKeyUseCase_Provision(t *testing.T) {
	f := newKeyFixture(t)

	provisioned, err := f.useCase.Provision(context.Background())
	require.NoError(t, err)

	assert.Len(t, provisioned.Key, cryptoDomain.KeySize)
	assert.Equal(t, f.keyManager.HashKey(provisioned.Key), provisioned.Hash)

	unwrapped, err := f.keyManager.Unwrap(provisioned.Wrapped, f.masterKey)
	require.NoError(t, err)
	assert.Equal(t, provisioned.Key, unwrapped)
}

func TestOrganizationKeyUseCase_Resolve(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())

	t.Run("Success_ReturnsPlaintextKey", func(t *testing.T) {
		f := newKeyFixture(t)
		provisioned, err := f.useCase.Provision(ctx)
		require.NoError(t, err)

		f.repo.On("GetEncryptionKey", ctx, orgID).Return(&cryptoDomain.StoredOrganizationKey{
			OrganizationID: orgID,
			Wrapped:        provisioned.Wrapped,
			Hash:           provisioned.Hash,
		}, nil).Once()

		key, err := f.useCase.Resolve(ctx, orgID)
		require.NoError(t, err)
		assert.Equal(t, provisioned.Key, key)
		f.repo.AssertExpectations(t)
	})

	t.Run("Success_NoCaching", func(t *testing.T) {
		f := newKeyFixture(t)
		provisioned, err := f.useCase.Provision(ctx)
		require.NoError(t, err)

		stored := &cryptoDomain.StoredOrganizationKey{Wrapped: provisioned.Wrapped, Hash: provisioned.Hash}
		f.repo.On("GetEncryptionKey", ctx, orgID).Return(stored, nil).Twice()

		_, err = f.useCase.Resolve(ctx, orgID)
		require.NoError(t, err)
		_, err = f.useCase.Resolve(ctx, orgID)
		require.NoError(t, err)
		f.repo.AssertNumberOfCalls(t, "GetEncryptionKey", 2)
	})

	t.Run("Error_OrganizationMissingIsKeyNotFound", func(t *testing.T) {
		f := newKeyFixture(t)
		f.repo.On("GetEncryptionKey", ctx, orgID).
			Return(nil, apperrors.Wrap(apperrors.ErrNotFound, "organization not found")).Once()

		key, err := f.useCase.Resolve(ctx, orgID)
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyNotFound)
		assert.NotErrorIs(t, err, apperrors.ErrNotFound)
		assert.Nil(t, key)
	})

	t.Run("Error_EmptyWrappedKey", func(t *testing.T) {
		f := newKeyFixture(t)
		f.repo.On("GetEncryptionKey", ctx, orgID).
			Return(&cryptoDomain.StoredOrganizationKey{Hash: "abc"}, nil).Once()

		_, err := f.useCase.Resolve(ctx, orgID)
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyNotFound)
	})

	t.Run("Error_WrongMasterKey", func(t *testing.T) {
		f := newKeyFixture(t)
		other, err := cryptoDomain.NewMasterKey(bytes.Repeat([]byte{0x43}, cryptoDomain.KeySize))
		require.NoError(t, err)
		provisioned, err := NewOrganizationKeyUseCase(f.repo, f.keyManager, other).Provision(ctx)
		require.NoError(t, err)

		f.repo.On("GetEncryptionKey", ctx, orgID).Return(&cryptoDomain.StoredOrganizationKey{
			Wrapped: provisioned.Wrapped,
			Hash:    provisioned.Hash,
		}, nil).Once()

		_, err = f.useCase.Resolve(ctx, orgID)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("Error_HashMismatch", func(t *testing.T) {
		f := newKeyFixture(t)
		provisioned, err := f.useCase.Provision(ctx)
		require.NoError(t, err)

		f.repo.On("GetEncryptionKey", ctx, orgID).Return(&cryptoDomain.StoredOrganizationKey{
			Wrapped: provisioned.Wrapped,
			Hash:    f.keyManager.HashKey(bytes.Repeat([]byte{1}, cryptoDomain.KeySize)),
		}, nil).Once()

		key, err := f.useCase.Resolve(ctx, orgID)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
		assert.Nil(t, key)
	})

	t.Run("Error_CorruptWrappedKey", func(t *testing.T) {
		f := newKeyFixture(t)
		f.repo.On("GetEncryptionKey", ctx, orgID).Return(&cryptoDomain.StoredOrganizationKey{
			Wrapped: "not-json",
			Hash:    "x",
		}, nil).Once()

		_, err := f.useCase.Resolve(ctx, orgID)
		assert.ErrorIs(t, err, cryptoDomain.ErrCorruptCiphertext)
	})

	t.Run("Error_RepositoryFailure", func(t *testing.T) {
		f := newKeyFixture(t)
		f.repo.On("GetEncryptionKey", ctx, orgID).Return(nil, assert.AnError).Once()

		_, err := f.useCase.Resolve(ctx, orgID)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestOrganizationKeyUseCase_Verify(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())

	f := newKeyFixture(t)
	provisioned, err := f.useCase.Provision(ctx)
	require.NoError(t, err)
	stored := &cryptoDomain.StoredOrganizationKey{Wrapped: provisioned.Wrapped, Hash: provisioned.Hash}
	f.repo.On("GetEncryptionKey", ctx, orgID).Return(stored, nil)

	t.Run("Success_Match", func(t *testing.T) {
		ok, err := f.useCase.Verify(ctx, orgID, hex.EncodeToString(provisioned.Key))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Success_NoMatch", func(t *testing.T) {
		ok, err := f.useCase.Verify(ctx, orgID, hex.EncodeToString(bytes.Repeat([]byte{9}, cryptoDomain.KeySize)))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Error_MalformedKey", func(t *testing.T) {
		ok, err := f.useCase.Verify(ctx, orgID, "nope")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.False(t, ok)
	})
}
