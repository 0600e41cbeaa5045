package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v3"

	"github.com/toolthread/transaction-tracker/internal/domain/entity"
	"github.com/toolthread/transaction-tracker/internal/domain/repository"
)

func userKey(email string) []byte {
	return []byte("user:" + strings.ToLower(email))
}

// BadgerUserRepository implements the user repository interface using
// BadgerDB, keyed by lower-cased email
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerDB user repository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Store saves a new user; fails with ErrEmailTaken on duplicates
func (r *BadgerUserRepository) Store(ctx context.Context, user *entity.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		key := userKey(user.Email)
		_, err := txn.Get(key)
		if err == nil {
			return repository.ErrEmailTaken
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		return txn.Set(key, data)
	})

	if errors.Is(err, repository.ErrEmailTaken) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}

	return nil
}

// FindByEmail retrieves a user by email address
func (r *BadgerUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(email))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
	})

	if err == badger.ErrKeyNotFound {
		return nil, fmt.Errorf("%w: %s", repository.ErrUserNotFound, email)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	return &user, nil
}
