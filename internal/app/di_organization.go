package app

import (
	"fmt"

	cryptoUseCase "github.com/allisson/whistleblower/internal/crypto/usecase"
	orgHTTP "github.com/allisson/whistleblower/internal/organization/http"
	orgRepository "github.com/allisson/whistleblower/internal/organization/repository"
	orgUseCase "github.com/allisson/whistleblower/internal/organization/usecase"
)

// organizationRepository is the organizations table seen by both the organization and key use cases.
type organizationRepository interface {
	orgUseCase.OrganizationRepository
	cryptoUseCase.OrganizationKeyRepository
}

type organizationComponents struct {
	orgRepository lazy[organizationRepository]
	orgUseCase    lazy[orgUseCase.UseCase]
	orgHandler    lazy[*orgHTTP.OrganizationHandler]
}

// OrganizationRepository returns the organization repository for the configured driver.
func (c *Container) OrganizationRepository() (organizationRepository, error) {
	return c.orgRepository.get(func() (organizationRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for organization repository: %w", err)
		}
		return repositoryFor(c.config.DBDriver,
			func() organizationRepository { return orgRepository.NewPostgreSQLOrganizationRepository(db) },
			func() organizationRepository { return orgRepository.NewMySQLOrganizationRepository(db) },
		)
	})
}

// OrganizationUseCase returns the organization use case.
func (c *Container) OrganizationUseCase() (orgUseCase.UseCase, error) {
	return c.orgUseCase.get(func() (orgUseCase.UseCase, error) {
		txManager, err := c.TxManager()
		if err != nil {
			return nil, err
		}
		repo, err := c.OrganizationRepository()
		if err != nil {
			return nil, err
		}
		users, err := c.UserUseCase()
		if err != nil {
			return nil, err
		}
		keys, err := c.OrganizationKeyUseCase()
		if err != nil {
			return nil, err
		}

		useCase := orgUseCase.NewOrganizationUseCase(txManager, repo, users, keys, c.Logger())

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics: %w", err)
		}
		return orgUseCase.NewOrganizationUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// OrganizationHandler returns the HTTP handler for onboarding and admin organization routes.
func (c *Container) OrganizationHandler() (*orgHTTP.OrganizationHandler, error) {
	return c.orgHandler.get(func() (*orgHTTP.OrganizationHandler, error) {
		useCase, err := c.OrganizationUseCase()
		if err != nil {
			return nil, err
		}
		return orgHTTP.NewOrganizationHandler(useCase, c.Logger()), nil
	})
}
