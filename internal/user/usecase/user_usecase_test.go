package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/whistleblower/internal/auth/domain"
	apperrors "github.com/allisson/whistleblower/internal/errors"
	"github.com/allisson/whistleblower/internal/testutil"
	"github.com/allisson/whistleblower/internal/user/domain"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// plainHasher stands in for scrypt and counts Verify calls.
type plainHasher struct {
	verifyCalls int
}

func (h *plainHasher) Hash(password string) (string, error) {
	return "plain:" + password, nil
}

func (h *plainHasher) Verify(password, stored string) bool {
	h.verifyCalls++
	return stored == "plain:"+password
}

func newTestUseCase(t *testing.T) (*userUseCase, *MockUserRepository, *plainHasher) {
	t.Helper()
	repo := &MockUserRepository{}
	hasher := &plainHasher{}
	uc, err := NewUserUseCase(repo, hasher, testutil.DiscardLogger())
	require.NoError(t, err)

	impl := uc.(*userUseCase)
	impl.now = func() time.Time { return time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC) }
	return impl, repo, hasher
}

func TestUserUseCase_Create(t *testing.T) {
	orgID := uuid.Must(uuid.NewV7())

	t.Run("Success_NormalizesEmailAndHashes", func(t *testing.T) {
		uc, repo, _ := newTestUseCase(t)
		name := "  Erika  "

		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "erika@acme.de" &&
				u.PasswordHash == "plain:correct horse battery" &&
				u.OrganizationID == orgID &&
				u.Role == domain.RoleAdmin &&
				u.Name != nil && *u.Name == "Erika"
		})).Return(nil)

		user, err := uc.Create(context.Background(), CreateUserInput{
			OrganizationID: orgID,
			Email:          " Erika@ACME.de ",
			Password:       "correct horse battery",
			Name:           &name,
			Role:           domain.RoleAdmin,
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, uc.now().UTC(), user.CreatedAt)
		repo.AssertExpectations(t)
	})

	t.Run("Success_BlankNameIsNil", func(t *testing.T) {
		uc, repo, _ := newTestUseCase(t)
		blank := "   "
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Name == nil
		})).Return(nil)

		_, err := uc.Create(context.Background(), CreateUserInput{
			OrganizationID: orgID,
			Email:          "officer@acme.de",
			Password:       "123456789012",
			Name:           &blank,
			Role:           domain.RoleOfficer,
		})
		require.NoError(t, err)
	})

	tests := []struct {
		name  string
		input CreateUserInput
	}{
		{"Error_MissingOrganization", CreateUserInput{Email: "a@acme.de", Password: "123456789012", Role: domain.RoleAdmin}},
		{"Error_InvalidEmail", CreateUserInput{OrganizationID: orgID, Email: "not-an-email", Password: "123456789012", Role: domain.RoleAdmin}},
		{"Error_ShortPassword", CreateUserInput{OrganizationID: orgID, Email: "a@acme.de", Password: "12345678901", Role: domain.RoleAdmin}},
		{"Error_UnknownRole", CreateUserInput{OrganizationID: orgID, Email: "a@acme.de", Password: "123456789012", Role: "owner"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo, _ := newTestUseCase(t)

			_, err := uc.Create(context.Background(), tt.input)

			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("Error_EmailTaken", func(t *testing.T) {
		uc, repo, _ := newTestUseCase(t)
		repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrEmailTaken)

		_, err := uc.Create(context.Background(), CreateUserInput{
			OrganizationID: orgID,
			Email:          "a@acme.de",
			Password:       "123456789012",
			Role:           domain.RoleAdmin,
		})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})
}

func TestUserUseCase_EmailTaken(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	repo.On("ExistsByEmail", mock.Anything, "a@acme.de").Return(true, nil)

	taken, err := uc.EmailTaken(context.Background(), "A@acme.de ")

	require.NoError(t, err)
	assert.True(t, taken)
}

func TestUserUseCase_Authenticate(t *testing.T) {
	stored := &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Email:        "a@acme.de",
		PasswordHash: "plain:123456789012",
		Role:         domain.RoleOfficer,
	}

	t.Run("Success", func(t *testing.T) {
		uc, repo, _ := newTestUseCase(t)
		user := *stored
		repo.On("GetByEmail", mock.Anything, "a@acme.de").Return(&user, nil)
		repo.On("UpdateLastLogin", mock.Anything, stored.ID, uc.now().UTC()).Return(nil)

		got, err := uc.Authenticate(context.Background(), "  A@ACME.DE", "123456789012")

		require.NoError(t, err)
		require.NotNil(t, got.LastLoginAt)
		assert.Equal(t, uc.now().UTC(), *got.LastLoginAt)
		repo.AssertExpectations(t)
	})

	t.Run("Success_LastLoginFailureIgnored", func(t *testing.T) {
		uc, repo, _ := newTestUseCase(t)
		user := *stored
		repo.On("GetByEmail", mock.Anything, "a@acme.de").Return(&user, nil)
		repo.On("UpdateLastLogin", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

		got, err := uc.Authenticate(context.Background(), "a@acme.de", "123456789012")

		require.NoError(t, err)
		assert.Nil(t, got.LastLoginAt)
	})

	t.Run("Error_WrongPassword", func(t *testing.T) {
		uc, repo, _ := newTestUseCase(t)
		user := *stored
		repo.On("GetByEmail", mock.Anything, "a@acme.de").Return(&user, nil)

		_, err := uc.Authenticate(context.Background(), "a@acme.de", "wrong-password!")

		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		repo.AssertNotCalled(t, "UpdateLastLogin", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_UnknownUserStillVerifies", func(t *testing.T) {
		uc, repo, hasher := newTestUseCase(t)
		repo.On("GetByEmail", mock.Anything, "ghost@acme.de").Return(nil, domain.ErrUserNotFound)

		_, err := uc.Authenticate(context.Background(), "ghost@acme.de", "whatever")

		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		assert.Equal(t, 1, hasher.verifyCalls)
	})

	t.Run("Error_RepositoryFailure", func(t *testing.T) {
		uc, repo, _ := newTestUseCase(t)
		repo.On("GetByEmail", mock.Anything, "a@acme.de").Return(nil, assert.AnError)

		_, err := uc.Authenticate(context.Background(), "a@acme.de", "123456789012")

		assert.ErrorIs(t, err, assert.AnError)
		assert.NotErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})
}
