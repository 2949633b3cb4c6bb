package app

import (
	"fmt"

	reportHTTP "github.com/allisson/whistleblower/internal/report/http"
	reportRepository "github.com/allisson/whistleblower/internal/report/repository"
	reportService "github.com/allisson/whistleblower/internal/report/service"
	reportUseCase "github.com/allisson/whistleblower/internal/report/usecase"
)

type reportComponents struct {
	reportRepository  lazy[reportUseCase.ReportRepository]
	messageRepository lazy[reportUseCase.MessageRepository]
	reportUseCase     lazy[reportUseCase.UseCase]
	melderHandler     lazy[*reportHTTP.MelderHandler]
	dashboardHandler  lazy[*reportHTTP.DashboardHandler]
}

// ReportRepository returns the report repository for the configured driver.
func (c *Container) ReportRepository() (reportUseCase.ReportRepository, error) {
	return c.reportRepository.get(func() (reportUseCase.ReportRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for report repository: %w", err)
		}
		return repositoryFor(c.config.DBDriver,
			func() reportUseCase.ReportRepository { return reportRepository.NewPostgreSQLReportRepository(db) },
			func() reportUseCase.ReportRepository { return reportRepository.NewMySQLReportRepository(db) },
		)
	})
}

// MessageRepository returns the report message repository for the configured driver.
func (c *Container) MessageRepository() (reportUseCase.MessageRepository, error) {
	return c.messageRepository.get(func() (reportUseCase.MessageRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for message repository: %w", err)
		}
		return repositoryFor(c.config.DBDriver,
			func() reportUseCase.MessageRepository { return reportRepository.NewPostgreSQLMessageRepository(db) },
			func() reportUseCase.MessageRepository { return reportRepository.NewMySQLMessageRepository(db) },
		)
	})
}

// ReportUseCase returns the report use case.
func (c *Container) ReportUseCase() (reportUseCase.UseCase, error) {
	return c.reportUseCase.get(func() (reportUseCase.UseCase, error) {
		txManager, err := c.TxManager()
		if err != nil {
			return nil, err
		}
		reports, err := c.ReportRepository()
		if err != nil {
			return nil, err
		}
		messages, err := c.MessageRepository()
		if err != nil {
			return nil, err
		}
		organizations, err := c.OrganizationRepository()
		if err != nil {
			return nil, err
		}
		outbox, err := c.OutboxEventRepository()
		if err != nil {
			return nil, err
		}
		keys, err := c.OrganizationKeyUseCase()
		if err != nil {
			return nil, err
		}

		useCase := reportUseCase.NewReportUseCase(
			txManager,
			reports,
			messages,
			organizations,
			outbox,
			keys,
			c.FieldCipher(),
			reportService.NewMelderTokenGenerator(),
			c.config.ReminderWindow,
			c.Logger(),
		)

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics: %w", err)
		}
		return reportUseCase.NewReportUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// MelderHandler returns the handler for the anonymous reporter routes.
func (c *Container) MelderHandler() (*reportHTTP.MelderHandler, error) {
	return c.melderHandler.get(func() (*reportHTTP.MelderHandler, error) {
		useCase, err := c.ReportUseCase()
		if err != nil {
			return nil, err
		}
		return reportHTTP.NewMelderHandler(useCase, c.Logger()), nil
	})
}

// DashboardHandler returns the handler for the compliance dashboard routes.
func (c *Container) DashboardHandler() (*reportHTTP.DashboardHandler, error) {
	return c.dashboardHandler.get(func() (*reportHTTP.DashboardHandler, error) {
		useCase, err := c.ReportUseCase()
		if err != nil {
			return nil, err
		}
		return reportHTTP.NewDashboardHandler(useCase, c.Logger()), nil
	})
}
