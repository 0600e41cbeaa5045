package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/toolthread/transaction-tracker/internal/domain/entity"
	"github.com/toolthread/transaction-tracker/internal/domain/repository"
	"github.com/toolthread/transaction-tracker/internal/infrastructure/auth"
	"github.com/toolthread/transaction-tracker/internal/infrastructure/logger"
	"github.com/toolthread/transaction-tracker/internal/infrastructure/middleware"
)

// ErrInvalidCredentials is returned on login with a wrong email or
// password. The two cases are indistinguishable on purpose.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrWeakPassword is returned when a registration password is too short.
var ErrWeakPassword = errors.New("password must be at least 8 characters")

// AuthService handles account registration and login
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenIssuer
	logger logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users repository.UserRepository, tokens *auth.TokenIssuer, log logger.Logger) *AuthService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: log,
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*entity.User, error) {
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.users.Store(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", map[string]interface{}{
		"request_id": middleware.GetRequestID(ctx),
		"user_id":    user.ID,
	})

	return user, nil
}

// Login verifies credentials and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		s.logger.Warn("Failed login attempt", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"user_id":    user.ID,
		})
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Name)
	if err != nil {
		return "", err
	}

	return token, nil
}
