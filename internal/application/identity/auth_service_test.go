package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	domain "github.com/medistore/backend/internal/domain/identity"
	"github.com/medistore/backend/internal/domain/shared"
	"github.com/medistore/backend/internal/infrastructure/auth"
	"github.com/medistore/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
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

func (m *MockUserRepository) Save(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockPublisher is a mock implementation of shared.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func newTestService() (*AuthService, *MockUserRepository, *MockPublisher) {
	repo := new(MockUserRepository)
	publisher := new(MockPublisher)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		Issuer:                 "medistore-test",
		MaxRefreshCount:        10,
	})
	svc := NewAuthService(repo, jwtService, auth.NewInMemoryTokenBlacklist(), publisher, zap.NewNop())
	return svc, repo, publisher
}

func TestRegister(t *testing.T) {
	svc, repo, publisher := newTestService()

	repo.On("ExistsByEmail", mock.Anything, "jane@example.com").Return(false, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Register(context.Background(), RegisterInput{
		Email:    "Jane@Example.com",
		Password: "passw0rd",
		FullName: "Jane Doe",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "jane@example.com", result.User.Email)
	assert.Equal(t, domain.RoleUser, result.User.Role)
	publisher.AssertNumberOfCalls(t, "Publish", 1)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, repo, _ := newTestService()

	repo.On("ExistsByEmail", mock.Anything, "jane@example.com").Return(true, nil)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "jane@example.com",
		Password: "passw0rd",
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)

	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	svc, repo, _ := newTestService()

	user, err := domain.NewUser("jane@example.com", "passw0rd", "Jane")
	require.NoError(t, err)
	user.ClearDomainEvents()

	repo.On("FindByEmail", mock.Anything, "jane@example.com").Return(user, nil)
	repo.On("Update", mock.Anything, user).Return(nil)

	result, err := svc.Login(context.Background(), LoginInput{
		Email:    "jane@example.com",
		Password: "passw0rd",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, user.ID, result.User.ID)
	assert.NotNil(t, user.LastLoginAt)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, repo, _ := newTestService()

	user, err := domain.NewUser("jane@example.com", "passw0rd", "")
	require.NoError(t, err)

	repo.On("FindByEmail", mock.Anything, "jane@example.com").Return(user, nil)

	_, err = svc.Login(context.Background(), LoginInput{
		Email:    "jane@example.com",
		Password: "wrong1pass",
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, repo, _ := newTestService()

	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, errors.New("record not found"))

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "ghost@example.com",
		Password: "passw0rd",
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	// same error as wrong password so the response does not leak account existence
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	svc, repo, _ := newTestService()

	user, err := domain.NewUser("jane@example.com", "passw0rd", "")
	require.NoError(t, err)
	user.ClearDomainEvents()

	repo.On("FindByEmail", mock.Anything, "jane@example.com").Return(user, nil)
	repo.On("Update", mock.Anything, user).Return(nil)

	result, err := svc.Login(context.Background(), LoginInput{Email: "jane@example.com", Password: "passw0rd"})
	require.NoError(t, err)

	claims, err := svc.jwtService.ValidateAccessToken(result.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), claims))

	blacklisted, err := svc.blacklist.IsBlacklisted(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.True(t, blacklisted)
}

func TestRefreshToken(t *testing.T) {
	svc, repo, _ := newTestService()

	user, err := domain.NewUser("jane@example.com", "passw0rd", "")
	require.NoError(t, err)
	user.ClearDomainEvents()

	repo.On("FindByEmail", mock.Anything, "jane@example.com").Return(user, nil)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Update", mock.Anything, user).Return(nil)

	login, err := svc.Login(context.Background(), LoginInput{Email: "jane@example.com", Password: "passw0rd"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, user.ID, refreshed.User.ID)
}

func TestUpdateProfile(t *testing.T) {
	svc, repo, _ := newTestService()

	user, err := domain.NewUser("jane@example.com", "passw0rd", "Jane")
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Update", mock.Anything, user).Return(nil)

	info, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID:   user.ID,
		FullName: "Jane D.",
		Phone:    "+1 555 0100",
		Address:  "42 Elm St",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane D.", info.FullName)
	assert.Equal(t, "42 Elm St", info.Address)
}

func TestChangePasswordWrongOld(t *testing.T) {
	svc, repo, _ := newTestService()

	user, err := domain.NewUser("jane@example.com", "passw0rd", "")
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	err = svc.ChangePassword(context.Background(), ChangePasswordInput{
		UserID:      user.ID,
		OldPassword: "wrong1pass",
		NewPassword: "newpass99",
	})
	require.Error(t, err)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
