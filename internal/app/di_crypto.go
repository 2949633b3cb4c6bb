package app

import (
	"context"
	"fmt"

	cryptoDomain "github.com/allisson/whistleblower/internal/crypto/domain"
	cryptoService "github.com/allisson/whistleblower/internal/crypto/service"
	cryptoUseCase "github.com/allisson/whistleblower/internal/crypto/usecase"
)

type cryptoComponents struct {
	masterKey     lazy[*cryptoDomain.MasterKey]
	kmsService    lazy[cryptoService.KMSService]
	fieldCipher   lazy[cryptoService.FieldCipher]
	keyManager    lazy[cryptoService.KeyManager]
	orgKeyUseCase lazy[cryptoUseCase.OrganizationKeyUseCase]
}

// KMSService returns the service that opens KMS keepers for master key decryption.
func (c *Container) KMSService() cryptoService.KMSService {
	kms, _ := c.kmsService.get(func() (cryptoService.KMSService, error) {
		return cryptoService.NewKMSService(), nil
	})
	return kms
}

// MasterKey returns the master key loaded from MASTER_ENCRYPTION_KEY.
func (c *Container) MasterKey() (*cryptoDomain.MasterKey, error) {
	return c.masterKey.get(func() (*cryptoDomain.MasterKey, error) {
		masterKey, err := cryptoService.LoadMasterKey(
			context.Background(),
			c.KMSService(),
			c.config.MasterEncryptionKey,
			c.config.KMSKeyURI,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load master key: %w", err)
		}
		return masterKey, nil
	})
}

// FieldCipher returns the AES-256-GCM cipher used for every encrypted column.
func (c *Container) FieldCipher() cryptoService.FieldCipher {
	fieldCipher, _ := c.fieldCipher.get(func() (cryptoService.FieldCipher, error) {
		return cryptoService.NewAESGCMFieldCipher(), nil
	})
	return fieldCipher
}

// KeyManager returns the organization key wrapping service.
func (c *Container) KeyManager() cryptoService.KeyManager {
	keyManager, _ := c.keyManager.get(func() (cryptoService.KeyManager, error) {
		return cryptoService.NewKeyManager(c.FieldCipher()), nil
	})
	return keyManager
}

// OrganizationKeyUseCase returns the use case that provisions and resolves organization keys.
func (c *Container) OrganizationKeyUseCase() (cryptoUseCase.OrganizationKeyUseCase, error) {
	return c.orgKeyUseCase.get(func() (cryptoUseCase.OrganizationKeyUseCase, error) {
		masterKey, err := c.MasterKey()
		if err != nil {
			return nil, err
		}

		repo, err := c.OrganizationRepository()
		if err != nil {
			return nil, err
		}

		useCase := cryptoUseCase.NewOrganizationKeyUseCase(repo, c.KeyManager(), masterKey)

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics: %w", err)
		}
		return cryptoUseCase.NewOrganizationKeyUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}
