package app

import (
	"fmt"

	outboxRepository "github.com/allisson/whistleblower/internal/outbox/repository"
	outboxService "github.com/allisson/whistleblower/internal/outbox/service"
	outboxUseCase "github.com/allisson/whistleblower/internal/outbox/usecase"
)

type outboxComponents struct {
	outboxRepository lazy[outboxUseCase.OutboxEventRepository]
	outboxUseCase    lazy[*outboxUseCase.OutboxUseCase]
}

// OutboxEventRepository returns the outbox repository for the configured driver.
func (c *Container) OutboxEventRepository() (outboxUseCase.OutboxEventRepository, error) {
	return c.outboxRepository.get(func() (outboxUseCase.OutboxEventRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for outbox repository: %w", err)
		}
		return repositoryFor(c.config.DBDriver,
			func() outboxUseCase.OutboxEventRepository {
				return outboxRepository.NewPostgreSQLOutboxEventRepository(db)
			},
			func() outboxUseCase.OutboxEventRepository {
				return outboxRepository.NewMySQLOutboxEventRepository(db)
			},
		)
	})
}

// OutboxUseCase returns the notification worker.
func (c *Container) OutboxUseCase() (*outboxUseCase.OutboxUseCase, error) {
	return c.outboxUseCase.get(func() (*outboxUseCase.OutboxUseCase, error) {
		txManager, err := c.TxManager()
		if err != nil {
			return nil, err
		}
		repo, err := c.OutboxEventRepository()
		if err != nil {
			return nil, err
		}
		organizations, err := c.OrganizationRepository()
		if err != nil {
			return nil, err
		}

		processor := outboxUseCase.NewNotificationProcessor(
			organizations,
			outboxService.NewLogNotifier(c.Logger()),
			c.Logger(),
		)

		return outboxUseCase.NewOutboxUseCase(
			outboxUseCase.Config{
				Interval:   c.config.WorkerInterval,
				BatchSize:  c.config.WorkerBatchSize,
				MaxRetries: c.config.WorkerMaxRetries,
			},
			txManager,
			repo,
			processor,
			c.Logger(),
		), nil
	})
}
