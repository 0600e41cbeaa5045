package db

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v3"

	"github.com/toolthread/transaction-tracker/internal/domain/entity"
	"github.com/toolthread/transaction-tracker/internal/domain/repository"
)

const txKeyPrefix = "tx:"

func txKey(id int64) []byte {
	// Zero-padded so lexicographic key order matches id order.
	return []byte(fmt.Sprintf("%s%020d", txKeyPrefix, id))
}

// BadgerTransactionRepository implements the transaction repository
// interface using BadgerDB
type BadgerTransactionRepository struct {
	db  *badger.DB
	seq *badger.Sequence
}

// NewBadgerTransactionRepository creates a new BadgerDB transaction
// repository. Close must be called to release the id sequence.
func NewBadgerTransactionRepository(db *badger.DB) (*BadgerTransactionRepository, error) {
	seq, err := db.GetSequence([]byte("seq:tx"), 100)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire transaction id sequence: %w", err)
	}
	return &BadgerTransactionRepository{db: db, seq: seq}, nil
}

// Close releases the id sequence
func (r *BadgerTransactionRepository) Close() error {
	return r.seq.Release()
}

// Store saves a transaction, assigning the next id when unset, and
// returns the id
func (r *BadgerTransactionRepository) Store(ctx context.Context, tx *entity.Transaction) (int64, error) {
	if tx.ID == 0 {
		next, err := r.seq.Next()
		if err != nil {
			return 0, fmt.Errorf("failed to assign transaction id: %w", err)
		}
		tx.ID = int64(next) + 1
	}

	data, err := json.Marshal(tx)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal transaction: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(txKey(tx.ID), data)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to store transaction: %w", err)
	}

	return tx.ID, nil
}

// FindByID retrieves a transaction by its unique identifier
func (r *BadgerTransactionRepository) FindByID(ctx context.Context, id int64) (*entity.Transaction, error) {
	var tx entity.Transaction

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(txKey(id))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &tx)
		})
	})

	if err == badger.ErrKeyNotFound {
		return nil, fmt.Errorf("%w: %d", repository.ErrTransactionNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve transaction: %w", err)
	}

	return &tx, nil
}

// FindAll retrieves every stored transaction, newest first
func (r *BadgerTransactionRepository) FindAll(ctx context.Context) ([]*entity.Transaction, error) {
	var txs []*entity.Transaction

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(txKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var tx entity.Transaction
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &tx)
			})
			if err != nil {
				return err
			}
			txs = append(txs, &tx)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	sort.Slice(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})

	return txs, nil
}

// Delete removes a transaction by its unique identifier
func (r *BadgerTransactionRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		key := txKey(id)
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})

	if err == badger.ErrKeyNotFound {
		return fmt.Errorf("%w: %d", repository.ErrTransactionNotFound, id)
	}

	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return nil
}
