package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/whistleblower/internal/crypto/domain"
	cryptoService "github.com/allisson/whistleblower/internal/crypto/service"
	apperrors "github.com/allisson/whistleblower/internal/errors"
)

type organizationKeyUseCase struct {
	repo       OrganizationKeyRepository
	keyManager cryptoService.KeyManager
	masterKey  *cryptoDomain.MasterKey
}

// NewOrganizationKeyUseCase creates an OrganizationKeyUseCase bound to masterKey.
func NewOrganizationKeyUseCase(
	repo OrganizationKeyRepository,
	keyManager cryptoService.KeyManager,
	masterKey *cryptoDomain.MasterKey,
) OrganizationKeyUseCase {
	return &organizationKeyUseCase{
		repo:       repo,
		keyManager: keyManager,
		masterKey:  masterKey,
	}
}

func (o *organizationKeyUseCase) Provision(ctx context.Context) (*cryptoDomain.ProvisionedKey, error) {
	key, err := o.keyManager.GenerateOrganizationKey()
	if err != nil {
		return nil, err
	}

	wrapped, err := o.keyManager.Wrap(key, o.masterKey)
	if err != nil {
		cryptoDomain.Zero(key)
		return nil, err
	}

	return &cryptoDomain.ProvisionedKey{
		Key:     key,
		Wrapped: wrapped,
		Hash:    o.keyManager.HashKey(key),
	}, nil
}

// Resolve performs one point lookup per call. Nothing is cached.
func (o *organizationKeyUseCase) Resolve(ctx context.Context, organizationID uuid.UUID) ([]byte, error) {
	stored, err := o.load(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	key, err := o.keyManager.Unwrap(stored.Wrapped, o.masterKey)
	if err != nil {
		return nil, err
	}

	if !o.hashMatches(key, stored.Hash) {
		cryptoDomain.Zero(key)
		return nil, fmt.Errorf("%w: key hash mismatch", cryptoDomain.ErrDecryptionFailed)
	}

	return key, nil
}

func (o *organizationKeyUseCase) Verify(ctx context.Context, organizationID uuid.UUID, keyHex string) (bool, error) {
	key, err := cryptoService.ParseKeyHex(keyHex)
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
	}
	defer cryptoDomain.Zero(key)

	stored, err := o.load(ctx, organizationID)
	if err != nil {
		return false, err
	}

	return o.hashMatches(key, stored.Hash), nil
}

// load maps a missing organization to ErrKeyNotFound so callers on the data path
// fail with an internal error instead of a 404.
func (o *organizationKeyUseCase) load(
	ctx context.Context,
	organizationID uuid.UUID,
) (*cryptoDomain.StoredOrganizationKey, error) {
	stored, err := o.repo.GetEncryptionKey(ctx, organizationID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: organization %s", cryptoDomain.ErrKeyNotFound, organizationID)
		}
		return nil, err
	}

	if stored.Wrapped == "" {
		return nil, fmt.Errorf("%w: organization %s", cryptoDomain.ErrKeyNotFound, organizationID)
	}

	return stored, nil
}

func (o *organizationKeyUseCase) hashMatches(key []byte, expected string) bool {
	return subtle.ConstantTimeCompare([]byte(o.keyManager.HashKey(key)), []byte(expected)) == 1
}
