package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"useraccounts/internal/auth"
	"useraccounts/internal/cache"
	"useraccounts/internal/model"
	"useraccounts/internal/repository"
)

const defaultUserCacheTTL = 5 * time.Minute

// UserService exposes user record operations.
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error)
	Delete(ctx context.Context, id string) (*model.User, error)
}

type userService struct {
	repo     repository.UserRepository
	hasher   auth.PasswordHasher
	cache    *cache.Client
	cacheTTL time.Duration
	log      logrus.FieldLogger
}

// NewUserService builds a UserService with repository and cache. A nil cache disables caching.
func NewUserService(repo repository.UserRepository, hasher auth.PasswordHasher, cache *cache.Client, cacheTTL time.Duration, log logrus.FieldLogger) UserService {
	if cacheTTL <= 0 {
		cacheTTL = defaultUserCacheTTL
	}
	return &userService{
		repo:     repo,
		hasher:   hasher,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log.WithField("component", "user_service"),
	}
}

func (s *userService) cacheKey(id string) string {
	return fmt.Sprintf("user:%s", id)
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	var user *model.User
	err := s.cache.FillJSON(ctx, s.cacheKey(id), s.cacheTTL, func() (interface{}, error) {
		found, err := s.repo.FindByID(ctx, id)
		user = found
		return found, err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Update changes the provided fields. A new password is hashed before it is stored.
func (s *userService) Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error) {
	if patch.Password != nil {
		digest, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		patch.Password = &digest
	}

	user, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	_ = s.cache.Invalidate(ctx, s.cacheKey(id))
	s.log.WithField("user_id", id).Info("user updated")
	return user, nil
}

// Delete marks the user inactive. The record is kept.
func (s *userService) Delete(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.SetStatus(ctx, id, false)
	if err != nil {
		return nil, err
	}

	_ = s.cache.Invalidate(ctx, s.cacheKey(id))
	s.log.WithField("user_id", id).Info("user deactivated")
	return user, nil
}
