package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"useraccounts/internal/auth"
	apperrors "useraccounts/internal/errors"
	"useraccounts/internal/model"
	"useraccounts/internal/repository"
)

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, username, password, email string) (*model.User, error)
	Login(ctx context.Context, identifier, password string) (user *model.User, accessToken string, err error)
}

type authService struct {
	userRepo     repository.UserRepository
	hasher       auth.PasswordHasher
	tokenService *auth.TokenService
	log          logrus.FieldLogger
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, hasher auth.PasswordHasher, tokenService *auth.TokenService, log logrus.FieldLogger) AuthService {
	return &authService{
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
		log:          log.WithField("component", "auth_service"),
	}
}

// Register creates an active user with a hashed password. The store's unique
// indexes decide conflicts, so two racing registrations cannot both succeed.
func (s *authService) Register(ctx context.Context, username, password, email string) (*model.User, error) {
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: digest,
		Status:       true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.log.WithField("username", username).Info("registration rejected: username or email taken")
			return nil, apperrors.ErrConflict
		}
		s.log.WithError(err).Error("create user failed")
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user registered")
	return user, nil
}

// Login authenticates by username or email and issues an access token.
func (s *authService) Login(ctx context.Context, identifier, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.log.Warn("login rejected: unknown identifier")
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.log.WithError(err).WithField("user_id", user.ID).Error("stored digest unreadable")
		return nil, "", fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.log.WithField("user_id", user.ID).Warn("login rejected: wrong password")
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if !user.Status {
		s.log.WithField("user_id", user.ID).Warn("login rejected: account blocked")
		return nil, "", apperrors.ErrAccountBlocked
	}

	token, err := s.tokenService.Issue(user.ID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.log.WithField("user_id", user.ID).Info("user logged in")
	return user, token, nil
}
