package usecase

import (
	"context"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	cryptoUseCase "github.com/allisson/whistleblower/internal/crypto/usecase"
	"github.com/allisson/whistleblower/internal/database"
	"github.com/allisson/whistleblower/internal/organization/domain"
	userDomain "github.com/allisson/whistleblower/internal/user/domain"
	userUseCase "github.com/allisson/whistleblower/internal/user/usecase"
	appValidation "github.com/allisson/whistleblower/internal/validation"
)

type organizationUseCase struct {
	txManager  database.TxManager
	orgRepo    OrganizationRepository
	users      userUseCase.UseCase
	keyUseCase cryptoUseCase.OrganizationKeyUseCase
	logger     *slog.Logger
	now        func() time.Time
}

// NewOrganizationUseCase creates an organization use case.
func NewOrganizationUseCase(
	txManager database.TxManager,
	orgRepo OrganizationRepository,
	users userUseCase.UseCase,
	keyUseCase cryptoUseCase.OrganizationKeyUseCase,
	logger *slog.Logger,
) UseCase {
	return &organizationUseCase{
		txManager:  txManager,
		orgRepo:    orgRepo,
		users:      users,
		keyUseCase: keyUseCase,
		logger:     logger,
		now:        time.Now,
	}
}

func validateCreateOrganizationInput(input CreateOrganizationInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Slug,
			validation.Required.Error("slug is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("slug must be between 1 and 255 characters"),
		),
		validation.Field(&input.ContactEmail,
			validation.Required.Error("contact email is required"),
			appValidation.Email,
		),
		validation.Field(&input.Plan,
			validation.Required.Error("plan is required"),
			validation.In(domain.PlanStarter, domain.PlanProfessional, domain.PlanEnterprise).
				Error("plan must be starter, professional or enterprise"),
		),
		validation.Field(&input.AdminEmail,
			validation.Required.Error("admin email is required"),
			appValidation.Email,
		),
		validation.Field(&input.AdminPassword,
			validation.Required.Error("admin password is required"),
			appValidation.PasswordStrength{MinLength: userUseCase.MinPasswordLength},
		),
	)
	return appValidation.WrapValidationError(err)
}

// Create onboards an organization: it provisions the organization key, inserts the
// organization in trial status and its first compliance admin in one transaction.
func (uc *organizationUseCase) Create(
	ctx context.Context,
	input CreateOrganizationInput,
) (*CreateOrganizationOutput, error) {
	if err := validateCreateOrganizationInput(input); err != nil {
		return nil, err
	}

	slug := domain.Slugify(input.Slug)
	if slug == "" {
		return nil, domain.ErrInvalidSlug
	}

	key, err := uc.keyUseCase.Provision(ctx)
	if err != nil {
		return nil, err
	}
	defer key.Close()

	now := uc.now().UTC()
	org := &domain.Organization{
		ID:                 uuid.Must(uuid.NewV7()),
		Name:               strings.TrimSpace(input.Name),
		Slug:               slug,
		ContactEmail:       userDomain.NormalizeEmail(input.ContactEmail),
		SubscriptionStatus: domain.StatusTrial,
		SubscriptionPlan:   input.Plan,
		EncryptionKeyHash:  key.Hash,
		EncryptionKeyEnc:   key.Wrapped,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		taken, err := uc.orgRepo.ExistsBySlug(ctx, slug)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrSlugTaken
		}

		taken, err = uc.users.EmailTaken(ctx, input.AdminEmail)
		if err != nil {
			return err
		}
		if taken {
			return userDomain.ErrEmailTaken
		}

		if err := uc.orgRepo.Create(ctx, org); err != nil {
			return err
		}

		_, err = uc.users.Create(ctx, userUseCase.CreateUserInput{
			OrganizationID: org.ID,
			Email:          input.AdminEmail,
			Password:       input.AdminPassword,
			Name:           input.AdminName,
			Role:           userDomain.RoleAdmin,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("organization created",
		slog.String("organization_id", org.ID.String()),
		slog.String("slug", org.Slug),
		slog.String("plan", string(org.SubscriptionPlan)),
	)

	return &CreateOrganizationOutput{
		OrganizationID: org.ID,
		Slug:           org.Slug,
		RecoveryKey:    hex.EncodeToString(key.Key),
	}, nil
}

// List returns organization summaries newest first.
func (uc *organizationUseCase) List(ctx context.Context, offset, limit int) ([]*domain.Summary, error) {
	return uc.orgRepo.List(ctx, offset, limit)
}

func (uc *organizationUseCase) GetBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	return uc.orgRepo.GetBySlug(ctx, strings.TrimSpace(slug))
}

func (uc *organizationUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	return uc.orgRepo.GetByID(ctx, id)
}

// UpdateSubscriptionStatus activates, pauses or cancels the channel of an organization.
func (uc *organizationUseCase) UpdateSubscriptionStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.SubscriptionStatus,
) error {
	if !status.IsValid() {
		return domain.ErrInvalidStatus
	}

	if err := uc.orgRepo.UpdateSubscriptionStatus(ctx, id, status, uc.now().UTC()); err != nil {
		return err
	}

	uc.logger.Info("organization subscription updated",
		slog.String("organization_id", id.String()),
		slog.String("status", string(status)),
	)
	return nil
}
