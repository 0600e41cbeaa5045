package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/toolthread/transaction-tracker/internal/domain/entity"
	"github.com/toolthread/transaction-tracker/internal/domain/repository"
	"github.com/toolthread/transaction-tracker/internal/infrastructure/auth"
	"github.com/toolthread/transaction-tracker/internal/mocks"
)

func testTokenIssuer(t *testing.T) *auth.TokenIssuer {
	t.Helper()
	tokens, err := auth.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	return tokens
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful registration", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("Store", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

		svc := NewAuthService(users, testTokenIssuer(t), nil)
		user, err := svc.Register(ctx, "jane@example.com", "Jane Doe", "hunter2hunter2")
		require.NoError(t, err)

		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)
		assert.NoError(t, auth.VerifyPassword(user.PasswordHash, "hunter2hunter2"))
		users.AssertExpectations(t)
	})

	t.Run("Short password", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		svc := NewAuthService(users, testTokenIssuer(t), nil)

		_, err := svc.Register(ctx, "jane@example.com", "Jane Doe", "short")
		assert.ErrorIs(t, err, ErrWeakPassword)
		users.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("Store", ctx, mock.Anything).Return(repository.ErrEmailTaken)

		svc := NewAuthService(users, testTokenIssuer(t), nil)
		_, err := svc.Register(ctx, "jane@example.com", "Jane Doe", "hunter2hunter2")
		assert.ErrorIs(t, err, repository.ErrEmailTaken)
	})

	t.Run("Invalid email", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		svc := NewAuthService(users, testTokenIssuer(t), nil)

		_, err := svc.Register(ctx, "", "Jane Doe", "hunter2hunter2")
		assert.Error(t, err)
		users.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	registeredUser := func(t *testing.T) *entity.User {
		t.Helper()
		hash, err := auth.HashPassword("hunter2hunter2")
		require.NoError(t, err)
		return &entity.User{
			ID:           "user-1",
			Email:        "jane@example.com",
			Name:         "Jane Doe",
			PasswordHash: hash,
			CreatedAt:    time.Now(),
		}
	}

	t.Run("Successful login returns a verifiable token", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("FindByEmail", ctx, "jane@example.com").Return(registeredUser(t), nil)
		tokens := testTokenIssuer(t)

		svc := NewAuthService(users, tokens, nil)
		token, err := svc.Login(ctx, "jane@example.com", "hunter2hunter2")
		require.NoError(t, err)

		claims, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.Subject)
		assert.Equal(t, "Jane Doe", claims.Name)
	})

	t.Run("Unknown email", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("FindByEmail", ctx, "nobody@example.com").Return(nil, repository.ErrUserNotFound)

		svc := NewAuthService(users, testTokenIssuer(t), nil)
		_, err := svc.Login(ctx, "nobody@example.com", "hunter2hunter2")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Wrong password", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("FindByEmail", ctx, "jane@example.com").Return(registeredUser(t), nil)

		svc := NewAuthService(users, testTokenIssuer(t), nil)
		_, err := svc.Login(ctx, "jane@example.com", "wrong password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
