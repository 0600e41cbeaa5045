package repository

import (
	"context"
	"errors"

	"github.com/toolthread/transaction-tracker/internal/domain/entity"
)

// ErrUserNotFound is returned when no user exists for the given email.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailTaken is returned when registering an email that already has
// an account.
var ErrEmailTaken = errors.New("email is already registered")

// UserRepository defines the interface for user account storage
type UserRepository interface {
	// Store saves a new user; fails with ErrEmailTaken on duplicates
	Store(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a user by email address
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
