package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"useraccounts/internal/auth"
	apperrors "useraccounts/internal/errors"
	"useraccounts/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID == "" {
		user.ID = model.NewID()
	}
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) SetStatus(ctx context.Context, id string, status bool) (*model.User, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func newTestAuthService(repo *MockUserRepository) (AuthService, *auth.TokenService, *logtest.Hook) {
	log, hook := logtest.NewNullLogger()
	tokens := auth.NewTokenService("test-secret", time.Hour)
	return NewAuthService(repo, auth.NewBcryptHasher(bcrypt.MinCost), tokens, log), tokens, hook
}

func mustDigest(t *testing.T, password string) string {
	t.Helper()
	digest, err := auth.NewBcryptHasher(bcrypt.MinCost).Hash(password)
	require.NoError(t, err)
	return digest
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "successful registration",
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name: "username already exists",
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(apperrors.ErrConflict)
			},
			expectedError: apperrors.ErrConflict,
		},
		{
			name: "store failure",
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(errors.New("connection reset"))
			},
			expectedError: errors.New("create user: connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)
			svc, _, _ := newTestAuthService(mockRepo)

			user, err := svc.Register(context.Background(), "alice1234", "password1", "a@x.com")

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.True(t, model.ValidID(user.ID))
				assert.Equal(t, "alice1234", user.Username)
				assert.Equal(t, "a@x.com", user.Email)
				assert.True(t, user.Status)
				assert.NotEqual(t, "password1", user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password1")))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	active := &model.User{
		ID:           "6690ddb69350359e504b915f",
		Username:     "alice1234",
		Email:        "a@x.com",
		PasswordHash: mustDigest(t, "password1"),
		Status:       true,
	}
	blocked := *active
	blocked.Status = false

	tests := []struct {
		name          string
		identifier    string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:       "successful login by email",
			identifier: "a@x.com",
			password:   "password1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByIdentifier", mock.Anything, "a@x.com").Return(active, nil)
			},
		},
		{
			name:       "successful login by username",
			identifier: "alice1234",
			password:   "password1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByIdentifier", mock.Anything, "alice1234").Return(active, nil)
			},
		},
		{
			name:       "unknown identifier",
			identifier: "nobody@x.com",
			password:   "password1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByIdentifier", mock.Anything, "nobody@x.com").Return(nil, apperrors.ErrNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:       "wrong password",
			identifier: "a@x.com",
			password:   "password2",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByIdentifier", mock.Anything, "a@x.com").Return(active, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:       "blocked account",
			identifier: "a@x.com",
			password:   "password1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByIdentifier", mock.Anything, "a@x.com").Return(&blocked, nil)
			},
			expectedError: apperrors.ErrAccountBlocked,
		},
		{
			name:       "blocked account with wrong password",
			identifier: "a@x.com",
			password:   "password2",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByIdentifier", mock.Anything, "a@x.com").Return(&blocked, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)
			svc, tokens, _ := newTestAuthService(mockRepo)

			user, token, err := svc.Login(context.Background(), tt.identifier, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.NotEmpty(t, token)

				claims, err := tokens.Verify(token)
				require.NoError(t, err)
				assert.Equal(t, user.ID, claims.UserID())
				assert.Equal(t, user.Username, claims.Username)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_MalformedDigest(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByIdentifier", mock.Anything, "a@x.com").Return(&model.User{
		ID:           "6690ddb69350359e504b915f",
		PasswordHash: "plaintext-leftover",
		Status:       true,
	}, nil)
	svc, _, hook := newTestAuthService(mockRepo)

	_, _, err := svc.Login(context.Background(), "a@x.com", "password1")

	assert.ErrorIs(t, err, auth.ErrMalformedDigest)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestAuthService_Login_NeverLogsSecrets(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByIdentifier", mock.Anything, "a@x.com").Return(&model.User{
		ID:           "6690ddb69350359e504b915f",
		Username:     "alice1234",
		PasswordHash: mustDigest(t, "password1"),
		Status:       true,
	}, nil)
	svc, _, hook := newTestAuthService(mockRepo)

	_, token, err := svc.Login(context.Background(), "a@x.com", "password1")
	require.NoError(t, err)

	for _, entry := range hook.AllEntries() {
		line, _ := entry.String()
		assert.NotContains(t, line, "password1")
		assert.NotContains(t, line, token)
	}
}
