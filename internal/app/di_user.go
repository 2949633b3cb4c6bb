package app

import (
	"fmt"

	authService "github.com/allisson/whistleblower/internal/auth/service"
	userRepository "github.com/allisson/whistleblower/internal/user/repository"
	userUseCase "github.com/allisson/whistleblower/internal/user/usecase"
)

type userComponents struct {
	passwordHasher lazy[authService.PasswordHasher]
	userRepository lazy[userUseCase.UserRepository]
	userUseCase    lazy[userUseCase.UseCase]
}

// PasswordHasher returns the scrypt password hasher.
func (c *Container) PasswordHasher() authService.PasswordHasher {
	hasher, _ := c.passwordHasher.get(func() (authService.PasswordHasher, error) {
		return authService.NewPasswordHasher(), nil
	})
	return hasher
}

// UserRepository returns the compliance user repository for the configured driver.
func (c *Container) UserRepository() (userUseCase.UserRepository, error) {
	return c.userRepository.get(func() (userUseCase.UserRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for user repository: %w", err)
		}
		return repositoryFor(c.config.DBDriver,
			func() userUseCase.UserRepository { return userRepository.NewPostgreSQLUserRepository(db) },
			func() userUseCase.UserRepository { return userRepository.NewMySQLUserRepository(db) },
		)
	})
}

// UserUseCase returns the compliance user use case.
func (c *Container) UserUseCase() (userUseCase.UseCase, error) {
	return c.userUseCase.get(func() (userUseCase.UseCase, error) {
		repo, err := c.UserRepository()
		if err != nil {
			return nil, err
		}

		useCase, err := userUseCase.NewUserUseCase(repo, c.PasswordHasher(), c.Logger())
		if err != nil {
			return nil, fmt.Errorf("failed to create user use case: %w", err)
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics: %w", err)
		}
		return userUseCase.NewUserUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}
