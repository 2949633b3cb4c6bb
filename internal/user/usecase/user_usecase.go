package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/whistleblower/internal/auth/domain"
	authService "github.com/allisson/whistleblower/internal/auth/service"
	apperrors "github.com/allisson/whistleblower/internal/errors"
	"github.com/allisson/whistleblower/internal/user/domain"
	appValidation "github.com/allisson/whistleblower/internal/validation"
)

// MinPasswordLength is the minimum compliance user password length.
const MinPasswordLength = 12

// userUseCase implements UseCase.
type userUseCase struct {
	userRepo       UserRepository
	passwordHasher authService.PasswordHasher
	logger         *slog.Logger
	now            func() time.Time

	// dummyHash is verified against when the e-mail is unknown so both failure paths
	// cost one scrypt derivation.
	dummyHash string
}

// NewUserUseCase creates a compliance user use case.
func NewUserUseCase(
	userRepo UserRepository,
	passwordHasher authService.PasswordHasher,
	logger *slog.Logger,
) (UseCase, error) {
	dummyHash, err := passwordHasher.Hash(uuid.NewString())
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to prepare password hasher")
	}

	return &userUseCase{
		userRepo:       userRepo,
		passwordHasher: passwordHasher,
		logger:         logger,
		now:            time.Now,
		dummyHash:      dummyHash,
	}, nil
}

func validateCreateUserInput(input CreateUserInput) error {
	if input.OrganizationID == uuid.Nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "organization id is required")
	}

	err := validation.ValidateStruct(&input,
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			appValidation.PasswordStrength{MinLength: MinPasswordLength},
		),
		validation.Field(&input.Role,
			validation.Required.Error("role is required"),
			validation.In(domain.RoleAdmin, domain.RoleOfficer).Error("role must be admin or officer"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Create inserts a new compliance user.
func (uc *userUseCase) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if err := validateCreateUserInput(input); err != nil {
		return nil, err
	}

	passwordHash, err := uc.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	var name *string
	if input.Name != nil {
		if trimmed := strings.TrimSpace(*input.Name); trimmed != "" {
			name = &trimmed
		}
	}

	now := uc.now().UTC()
	user := &domain.User{
		ID:             uuid.Must(uuid.NewV7()),
		OrganizationID: input.OrganizationID,
		Email:          domain.NormalizeEmail(input.Email),
		PasswordHash:   passwordHash,
		Name:           name,
		Role:           input.Role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// EmailTaken reports whether the e-mail already belongs to a compliance user.
func (uc *userUseCase) EmailTaken(ctx context.Context, email string) (bool, error) {
	return uc.userRepo.ExistsByEmail(ctx, domain.NormalizeEmail(email))
}

// Authenticate checks the credentials and stamps last_login_at on success.
func (uc *userUseCase) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			uc.passwordHasher.Verify(password, uc.dummyHash)
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !uc.passwordHasher.Verify(password, user.PasswordHash) {
		return nil, authDomain.ErrInvalidCredentials
	}

	now := uc.now().UTC()
	if err := uc.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		uc.logger.Warn("failed to update last login",
			slog.String("user_id", user.ID.String()),
			slog.Any("error", err),
		)
	} else {
		user.LastLoginAt = &now
	}

	return user, nil
}

// GetByID retrieves a compliance user.
func (uc *userUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}
