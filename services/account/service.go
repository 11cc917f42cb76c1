// Package account handles registration and login. New accounts start as
// fans; the talent role is granted by application approval, never at signup.
package account

import (
	"context"
	"regexp"
	"strings"
	"time"

	accountRepo "talentshout/database/repository/account"
	"talentshout/models"
	"talentshout/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AccountService authenticates platform users.
type AccountService interface {
	Register(ctx context.Context, input models.RegisterInput) (*models.AuthResponse, error)
	Login(ctx context.Context, input models.LoginInput) (*models.AuthResponse, error)
	Logout(ctx context.Context, principal models.Principal) error
	Get(ctx context.Context, principal models.Principal) (*models.Account, error)
}

// DefaultAccountService implements AccountService.
type DefaultAccountService struct {
	Repo   accountRepo.Repository
	Cache  *redis.Client // auth token hashes; nil disables session caching
	Logger *zap.Logger
}

var _ AccountService = (*DefaultAccountService)(nil)

// Register creates a fan account and returns a fresh session token.
func (s *DefaultAccountService) Register(ctx context.Context, input models.RegisterInput) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !emailRe.MatchString(email) {
		return nil, utils.NewValidationError("email", "invalid email address")
	}
	if len(input.Password) < 8 {
		return nil, utils.NewValidationError("password", "password must be at least 8 characters")
	}
	if strings.TrimSpace(input.DisplayName) == "" {
		return nil, utils.NewValidationError("display_name", "display name is required")
	}

	if existing, err := s.Repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, utils.NewValidationError("email", "an account with this email already exists")
	} else if err != nil && err != accountRepo.ErrNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	acc := &models.Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(input.DisplayName),
		Role:         models.RoleFan,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, acc); err != nil {
		return nil, err
	}

	s.Logger.Info("account registered", zap.String("accountId", acc.ID))
	return s.issueSession(ctx, acc)
}

// Login verifies credentials and returns a fresh session token.
func (s *DefaultAccountService) Login(ctx context.Context, input models.LoginInput) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	acc, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if err == accountRepo.ErrNotFound {
			return nil, &utils.PermissionError{Message: "invalid email or password"}
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(input.Password)); err != nil {
		return nil, &utils.PermissionError{Message: "invalid email or password"}
	}

	s.Logger.Info("account logged in", zap.String("accountId", acc.ID))
	return s.issueSession(ctx, acc)
}

// Logout revokes the caller's session by deleting the cached token hash;
// subsequent requests with the old token fail the auth middleware's cache
// check.
func (s *DefaultAccountService) Logout(ctx context.Context, principal models.Principal) error {
	if s.Cache == nil {
		return nil
	}
	if err := s.Cache.Del(ctx, utils.AuthCachePrefix+principal.ID).Err(); err != nil {
		return err
	}
	s.Logger.Info("session revoked", zap.String("accountId", principal.ID))
	return nil
}

// Get returns the caller's own account.
func (s *DefaultAccountService) Get(ctx context.Context, principal models.Principal) (*models.Account, error) {
	acc, err := s.Repo.GetByID(ctx, principal.ID)
	if err != nil {
		if err == accountRepo.ErrNotFound {
			return nil, &utils.NotFoundError{Entity: "account", ID: principal.ID}
		}
		return nil, err
	}
	return acc, nil
}

// issueSession signs a JWT and caches its hash so the auth middleware can
// verify the token in one redis lookup.
func (s *DefaultAccountService) issueSession(ctx context.Context, acc *models.Account) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(acc.ID, string(acc.Role), acc.Email, tokenTTL)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		cacheKey := utils.AuthCachePrefix + acc.ID
		if err := s.Cache.Set(ctx, cacheKey, utils.HashToken(token), tokenTTL).Err(); err != nil {
			s.Logger.Warn("failed to cache session token", zap.String("accountId", acc.ID), zap.Error(err))
		}
	}

	return &models.AuthResponse{Token: token, Account: *acc}, nil
}
