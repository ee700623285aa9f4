package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/internal/config"
	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/repository"
	apperrors "github.com/spec-kit/todo-service/pkg/util/errorutil"
)

const minPasswordLength = 8

// AuthService coordinates registration and login flows. Both are single-pass
// and hold no shared mutable state; concurrent requests only contend inside
// the store, whose unique index arbitrates duplicate registrations.
type AuthService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:  users,
		hasher: auth.NewPasswordHasher(cfg.BcryptCost),
		tokens: auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
	}
}

// Register creates a new account and mints a token for it.
//
// Input validation happens before any store interaction. The existence
// pre-check gives the friendly error on the common path, but a concurrent
// insert can still win between check and create; the store reports that as
// domain.ErrDuplicateEmail and both paths collapse into the same EMAIL_TAKEN
// outcome.
func (s *AuthService) Register(ctx context.Context, email, password string, name *string) (*domain.User, string, time.Time, error) {
	if len(password) < minPasswordLength {
		return nil, "", time.Time{}, apperrors.NewInvalidPassword("password must be at least 8 characters")
	}
	if !auth.IsValidEmail(email) {
		return nil, "", time.Time{}, apperrors.NewInvalidEmail()
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewEmailTaken()
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, "", time.Time{}, apperrors.NewEmailTaken()
		}
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Login authenticates an account and mints a token.
//
// Unknown email and wrong password return the identical error so the response
// never reveals whether an account exists. Store failures propagate as-is:
// they mean the credentials were never evaluated, not that they were rejected.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, exp, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}
