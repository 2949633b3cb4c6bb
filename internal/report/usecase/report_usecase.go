package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/whistleblower/internal/crypto/domain"
	cryptoService "github.com/allisson/whistleblower/internal/crypto/service"
	cryptoUseCase "github.com/allisson/whistleblower/internal/crypto/usecase"
	"github.com/allisson/whistleblower/internal/database"
	apperrors "github.com/allisson/whistleblower/internal/errors"
	orgDomain "github.com/allisson/whistleblower/internal/organization/domain"
	outboxDomain "github.com/allisson/whistleblower/internal/outbox/domain"
	"github.com/allisson/whistleblower/internal/report/domain"
	reportService "github.com/allisson/whistleblower/internal/report/service"
)

// maxTokenAttempts bounds token generation when the hash collides with an existing report.
const maxTokenAttempts = 5

type reportUseCase struct {
	txManager      database.TxManager
	reports        ReportRepository
	messages       MessageRepository
	organizations  OrganizationLookup
	outbox         OutboxEventRepository
	keys           cryptoUseCase.OrganizationKeyUseCase
	cipher         cryptoService.FieldCipher
	tokens         reportService.MelderTokenGenerator
	reminderWindow time.Duration
	logger         *slog.Logger
	now            func() time.Time
}

// NewReportUseCase creates a report use case. reminderWindow is the look-ahead used by
// EnqueueDeadlineReminders.
func NewReportUseCase(
	txManager database.TxManager,
	reports ReportRepository,
	messages MessageRepository,
	organizations OrganizationLookup,
	outbox OutboxEventRepository,
	keys cryptoUseCase.OrganizationKeyUseCase,
	cipher cryptoService.FieldCipher,
	tokens reportService.MelderTokenGenerator,
	reminderWindow time.Duration,
	logger *slog.Logger,
) UseCase {
	return &reportUseCase{
		txManager:      txManager,
		reports:        reports,
		messages:       messages,
		organizations:  organizations,
		outbox:         outbox,
		keys:           keys,
		cipher:         cipher,
		tokens:         tokens,
		reminderWindow: reminderWindow,
		logger:         logger,
		now:            time.Now,
	}
}

func validateSubmitInput(input SubmitInput) (title, description string, err error) {
	if !input.Category.IsValid() {
		return "", "", domain.ErrInvalidCategory
	}

	title = strings.TrimSpace(input.Title)
	if len([]rune(title)) < domain.MinTitleLength {
		return "", "", domain.ErrTitleTooShort
	}

	description = strings.TrimSpace(input.Description)
	if len([]rune(description)) < domain.MinDescriptionLength {
		return "", "", domain.ErrDescriptionTooShort
	}

	return title, description, nil
}

// Submit encrypts a report under the organization key and stores it with a fresh Melder
// token. The report.created event is written in the same transaction.
func (uc *reportUseCase) Submit(ctx context.Context, slug string, input SubmitInput) (*SubmitOutput, error) {
	org, err := uc.organizations.GetBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if !org.AcceptsReports() {
		return nil, orgDomain.ErrChannelUnavailable
	}

	title, description, err := validateSubmitInput(input)
	if err != nil {
		return nil, err
	}

	key, err := uc.keys.Resolve(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	titleEnc, err := uc.cipher.EncryptToString(title, key)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encrypt title")
	}
	descriptionEnc, err := uc.cipher.EncryptToString(description, key)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encrypt description")
	}

	now := uc.now().UTC()
	confirmation, response := domain.Deadlines(now)
	report := &domain.Report{
		ID:                   uuid.Must(uuid.NewV7()),
		OrganizationID:       org.ID,
		Category:             input.Category,
		TitleEncrypted:       titleEnc,
		DescriptionEncrypted: descriptionEnc,
		Status:               domain.StatusNeu,
		ReceivedAt:           now,
		ConfirmationDeadline: confirmation,
		ResponseDeadline:     response,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	event, err := outboxDomain.NewOutboxEvent(outboxDomain.EventTypeReportCreated, outboxDomain.ReportCreatedPayload{
		OrganizationID: org.ID,
		ReportID:       report.ID,
	}, now)
	if err != nil {
		return nil, err
	}

	var token string
	for attempt := 1; ; attempt++ {
		token, err = uc.tokens.Generate()
		if err != nil {
			return nil, err
		}
		report.MelderTokenHash = uc.tokens.Hash(token)

		err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
			if err := uc.reports.Create(ctx, report); err != nil {
				return err
			}
			return uc.outbox.Create(ctx, event)
		})
		if err == nil {
			break
		}
		if !apperrors.Is(err, domain.ErrTokenConflict) || attempt == maxTokenAttempts {
			return nil, err
		}
		uc.logger.Warn("melder token collision, retrying", slog.Int("attempt", attempt))
	}

	uc.logger.Info("report submitted",
		slog.String("organization_id", org.ID.String()),
		slog.String("report_id", report.ID.String()),
		slog.String("category", string(report.Category)),
	)

	return &SubmitOutput{ReportID: report.ID, MelderToken: token}, nil
}

// findByToken loads the report owning token. Malformed tokens never reach the database.
func (uc *reportUseCase) findByToken(ctx context.Context, token string) (*domain.Report, error) {
	canonical := uc.tokens.Canonicalize(token)
	if err := uc.tokens.Validate(canonical); err != nil {
		return nil, domain.ErrReportNotFound
	}
	return uc.reports.GetByTokenHash(ctx, uc.tokens.Hash(canonical))
}

// GetByToken returns the decrypted report with its conversation, oldest message first.
// Compliance messages are marked read only once the view has been decrypted, and the
// response still flags them as new.
func (uc *reportUseCase) GetByToken(ctx context.Context, token string) (*domain.ReportView, error) {
	report, err := uc.findByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return uc.viewAndMarkRead(ctx, report, domain.SenderCompliance)
}

// AddMelderMessage encrypts and stores a Melder message and announces it to the organization.
func (uc *reportUseCase) AddMelderMessage(ctx context.Context, token, content string) (uuid.UUID, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return uuid.Nil, domain.ErrEmptyMessage
	}

	report, err := uc.findByToken(ctx, token)
	if err != nil {
		return uuid.Nil, err
	}
	if report.Status == domain.StatusAbgeschlossen {
		return uuid.Nil, domain.ErrReportClosed
	}

	message, err := uc.newMessage(ctx, report, domain.SenderMelder, content)
	if err != nil {
		return uuid.Nil, err
	}

	event, err := outboxDomain.NewOutboxEvent(outboxDomain.EventTypeMessageCreated, outboxDomain.MessageCreatedPayload{
		OrganizationID: report.OrganizationID,
		ReportID:       report.ID,
		MessageID:      message.ID,
	}, message.CreatedAt)
	if err != nil {
		return uuid.Nil, err
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.messages.Create(ctx, message); err != nil {
			return err
		}
		return uc.outbox.Create(ctx, event)
	})
	if err != nil {
		return uuid.Nil, err
	}

	uc.logger.Info("melder message added",
		slog.String("organization_id", report.OrganizationID.String()),
		slog.String("report_id", report.ID.String()),
	)
	return message.ID, nil
}

// ListForOrganization decrypts every report of an organization, newest first.
func (uc *reportUseCase) ListForOrganization(ctx context.Context, organizationID uuid.UUID) (*DashboardOutput, error) {
	reports, err := uc.reports.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	out := &DashboardOutput{Reports: make([]*domain.ReportView, 0, len(reports))}
	if len(reports) == 0 {
		return out, nil
	}

	unread, err := uc.messages.CountUnreadByOrganization(ctx, organizationID, domain.SenderMelder)
	if err != nil {
		return nil, err
	}

	key, err := uc.keys.Resolve(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	now := uc.now().UTC()
	for _, report := range reports {
		view, err := uc.projectReport(report, key, now)
		if err != nil {
			return nil, err
		}
		view.UnreadMessages = unread[report.ID]
		out.Stats.Add(view.Status, view.IsOverdue)
		out.Reports = append(out.Reports, view)
	}

	return out, nil
}

// GetForOrganization returns one decrypted report of the organization with its conversation.
func (uc *reportUseCase) GetForOrganization(
	ctx context.Context,
	organizationID, reportID uuid.UUID,
) (*domain.ReportView, error) {
	report, err := uc.reports.GetForOrganization(ctx, organizationID, reportID)
	if err != nil {
		return nil, err
	}
	return uc.viewAndMarkRead(ctx, report, domain.SenderMelder)
}

// viewAndMarkRead decrypts the report with its messages, then marks the messages of
// sender read. A failed decrypt leaves the unread flags untouched.
func (uc *reportUseCase) viewAndMarkRead(
	ctx context.Context,
	report *domain.Report,
	sender domain.Sender,
) (*domain.ReportView, error) {
	messages, err := uc.messages.ListByReport(ctx, report.ID)
	if err != nil {
		return nil, err
	}

	view, err := uc.projectWithMessages(ctx, report, messages)
	if err != nil {
		return nil, err
	}

	if err := uc.messages.MarkRead(ctx, report.ID, sender); err != nil {
		return nil, err
	}
	return view, nil
}

// UpdateStatus applies a status transition and/or the receipt confirmation date.
// Moving to bestaetigt stamps the confirmation date when none is set.
func (uc *reportUseCase) UpdateStatus(
	ctx context.Context,
	organizationID, reportID uuid.UUID,
	input UpdateInput,
) (*domain.Report, error) {
	if input.Status == nil && input.ConfirmedAt == nil {
		return nil, domain.ErrNoChanges
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	var report *domain.Report
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		report, err = uc.reports.GetForOrganizationForUpdate(ctx, organizationID, reportID)
		if err != nil {
			return err
		}

		now := uc.now().UTC()
		if input.Status != nil {
			if !report.Status.CanTransitionTo(*input.Status) {
				return domain.ErrInvalidTransition
			}
			report.Status = *input.Status
		}

		if input.ConfirmedAt != nil {
			if report.ConfirmedAt != nil {
				return domain.ErrAlreadyConfirmed
			}
			confirmedAt := input.ConfirmedAt.UTC()
			report.ConfirmedAt = &confirmedAt
		} else if report.Status == domain.StatusBestaetigt && report.ConfirmedAt == nil {
			report.ConfirmedAt = &now
		}

		report.UpdatedAt = now
		return uc.reports.UpdateStatus(ctx, report)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("report status updated",
		slog.String("organization_id", organizationID.String()),
		slog.String("report_id", reportID.String()),
		slog.String("status", string(report.Status)),
	)
	return report, nil
}

// AddComplianceMessage encrypts and stores a compliance reply on a report of the organization.
func (uc *reportUseCase) AddComplianceMessage(
	ctx context.Context,
	organizationID, reportID uuid.UUID,
	content string,
) (uuid.UUID, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return uuid.Nil, domain.ErrEmptyMessage
	}

	report, err := uc.reports.GetForOrganization(ctx, organizationID, reportID)
	if err != nil {
		return uuid.Nil, err
	}

	message, err := uc.newMessage(ctx, report, domain.SenderCompliance, content)
	if err != nil {
		return uuid.Nil, err
	}

	if err := uc.messages.Create(ctx, message); err != nil {
		return uuid.Nil, err
	}

	uc.logger.Info("compliance message added",
		slog.String("organization_id", organizationID.String()),
		slog.String("report_id", reportID.String()),
	)
	return message.ID, nil
}

// CollectDeadlineReminders counts, per organization, the open reports whose response
// deadline has passed and those due within window.
func (uc *reportUseCase) CollectDeadlineReminders(
	ctx context.Context,
	now time.Time,
	window time.Duration,
) ([]domain.DeadlineReminder, error) {
	deadlines, err := uc.reports.ListOpenDeadlines(ctx, now.Add(window))
	if err != nil {
		return nil, err
	}

	reminders := make([]domain.DeadlineReminder, 0)
	index := make(map[uuid.UUID]int)
	for _, d := range deadlines {
		i, ok := index[d.OrganizationID]
		if !ok {
			i = len(reminders)
			index[d.OrganizationID] = i
			reminders = append(reminders, domain.DeadlineReminder{OrganizationID: d.OrganizationID})
		}
		if d.ResponseDeadline.Before(now) {
			reminders[i].Overdue++
		} else {
			reminders[i].Upcoming++
		}
	}

	return reminders, nil
}

// EnqueueDeadlineReminders writes one deadline.reminder event per affected organization.
func (uc *reportUseCase) EnqueueDeadlineReminders(ctx context.Context, now time.Time) (int, error) {
	reminders, err := uc.CollectDeadlineReminders(ctx, now, uc.reminderWindow)
	if err != nil {
		return 0, err
	}
	if len(reminders) == 0 {
		return 0, nil
	}

	windowDays := int(uc.reminderWindow / (24 * time.Hour))
	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		for _, reminder := range reminders {
			event, err := outboxDomain.NewOutboxEvent(
				outboxDomain.EventTypeDeadlineReminder,
				outboxDomain.DeadlineReminderPayload{
					OrganizationID: reminder.OrganizationID,
					Overdue:        reminder.Overdue,
					Upcoming:       reminder.Upcoming,
					WindowDays:     windowDays,
				},
				now,
			)
			if err != nil {
				return err
			}
			if err := uc.outbox.Create(ctx, event); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	uc.logger.Info("deadline reminders enqueued", slog.Int("organizations", len(reminders)))
	return len(reminders), nil
}

func (uc *reportUseCase) newMessage(
	ctx context.Context,
	report *domain.Report,
	sender domain.Sender,
	content string,
) (*domain.Message, error) {
	key, err := uc.keys.Resolve(ctx, report.OrganizationID)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	contentEnc, err := uc.cipher.EncryptToString(content, key)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encrypt message")
	}

	return &domain.Message{
		ID:               uuid.Must(uuid.NewV7()),
		ReportID:         report.ID,
		Sender:           sender,
		ContentEncrypted: contentEnc,
		CreatedAt:        uc.now().UTC(),
	}, nil
}

func (uc *reportUseCase) projectWithMessages(
	ctx context.Context,
	report *domain.Report,
	messages []*domain.Message,
) (*domain.ReportView, error) {
	key, err := uc.keys.Resolve(ctx, report.OrganizationID)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	view, err := uc.projectReport(report, key, uc.now().UTC())
	if err != nil {
		return nil, err
	}

	view.Messages = make([]domain.MessageView, 0, len(messages))
	for _, message := range messages {
		mv, err := uc.projectMessage(message, key)
		if err != nil {
			return nil, err
		}
		view.Messages = append(view.Messages, mv)
	}
	return view, nil
}

// projectReport decrypts a stored report into its view. Together with projectMessage it is
// the only conversion from ciphertext to plaintext.
func (uc *reportUseCase) projectReport(report *domain.Report, key []byte, now time.Time) (*domain.ReportView, error) {
	title, err := uc.cipher.DecryptFromString(report.TitleEncrypted, key)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decrypt report title")
	}
	description, err := uc.cipher.DecryptFromString(report.DescriptionEncrypted, key)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decrypt report description")
	}

	return &domain.ReportView{
		ID:                   report.ID,
		OrganizationID:       report.OrganizationID,
		Category:             report.Category,
		Title:                title,
		Description:          description,
		Status:               report.Status,
		ReceivedAt:           report.ReceivedAt,
		ConfirmationDeadline: report.ConfirmationDeadline,
		ResponseDeadline:     report.ResponseDeadline,
		ConfirmedAt:          report.ConfirmedAt,
		CreatedAt:            report.CreatedAt,
		UpdatedAt:            report.UpdatedAt,
		IsOverdue:            report.IsOverdue(now),
	}, nil
}

func (uc *reportUseCase) projectMessage(message *domain.Message, key []byte) (domain.MessageView, error) {
	content, err := uc.cipher.DecryptFromString(message.ContentEncrypted, key)
	if err != nil {
		return domain.MessageView{}, apperrors.Wrap(err, "failed to decrypt message")
	}

	return domain.MessageView{
		ID:        message.ID,
		ReportID:  message.ReportID,
		Sender:    message.Sender,
		Content:   content,
		IsRead:    message.IsRead,
		CreatedAt: message.CreatedAt,
	}, nil
}
