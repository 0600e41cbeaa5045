package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolthread/transaction-tracker/internal/domain/entity"
	"github.com/toolthread/transaction-tracker/internal/domain/repository"
)

func testUser(email string) *entity.User {
	return &entity.User{
		ID:           "c0ffee00-0000-0000-0000-000000000001",
		Email:        email,
		Name:         "Jane Doe",
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhash",
		CreatedAt:    time.Now(),
	}
}

func TestBadgerUserRepository(t *testing.T) {
	repo := NewBadgerUserRepository(setupTestDB(t))
	ctx := context.Background()

	t.Run("Store and find", func(t *testing.T) {
		user := testUser("jane@example.com")
		require.NoError(t, repo.Store(ctx, user))

		got, err := repo.FindByEmail(ctx, "jane@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", got.Name)
		assert.Equal(t, "jane@example.com", got.Email)
	})

	t.Run("Password hash survives persistence", func(t *testing.T) {
		got, err := repo.FindByEmail(ctx, "jane@example.com")
		require.NoError(t, err)
		assert.Equal(t, testUser("").PasswordHash, got.PasswordHash,
			"login verifies against the stored hash, so it must round-trip")
	})

	t.Run("Email lookup is case-insensitive", func(t *testing.T) {
		got, err := repo.FindByEmail(ctx, "Jane@Example.COM")
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", got.Email)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		err := repo.Store(ctx, testUser("JANE@example.com"))
		assert.ErrorIs(t, err, repository.ErrEmailTaken)
	})

	t.Run("Unknown email", func(t *testing.T) {
		_, err := repo.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})
}
