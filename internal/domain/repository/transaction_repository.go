package repository

import (
	"context"
	"errors"

	"github.com/toolthread/transaction-tracker/internal/domain/entity"
)

// ErrTransactionNotFound is returned when no transaction exists for the
// requested id.
var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionRepository defines the interface for transaction storage
type TransactionRepository interface {
	// Store saves a transaction, assigning its ID when unset, and
	// returns the ID
	Store(ctx context.Context, tx *entity.Transaction) (int64, error)

	// FindByID retrieves a transaction by its unique identifier
	FindByID(ctx context.Context, id int64) (*entity.Transaction, error)

	// FindAll retrieves every stored transaction, newest first
	FindAll(ctx context.Context) ([]*entity.Transaction, error)

	// Delete removes a transaction by its unique identifier
	Delete(ctx context.Context, id int64) error
}
