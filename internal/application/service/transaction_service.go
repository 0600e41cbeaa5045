package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/toolthread/transaction-tracker/internal/domain/entity"
	"github.com/toolthread/transaction-tracker/internal/domain/repository"
	"github.com/toolthread/transaction-tracker/internal/infrastructure/logger"
	"github.com/toolthread/transaction-tracker/internal/infrastructure/middleware"
)

// ItemInput describes one line item of a new transaction.
type ItemInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
}

// TransactionService handles business logic for transactions
type TransactionService struct {
	repo   repository.TransactionRepository
	logger logger.Logger
	now    func() time.Time
}

// NewTransactionService creates a new transaction service
func NewTransactionService(repo repository.TransactionRepository, log logger.Logger) *TransactionService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &TransactionService{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
}

// newReceiptNumber builds the collision-resistant receipt identifier:
// a UTC timestamp plus a random suffix. It is assigned exactly once, at
// creation time.
func (s *TransactionService) newReceiptNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return s.now().UTC().Format("20060102150405") + "-" + suffix
}

// Create validates and stores a new transaction. The total is computed
// from the items; the currency defaults to the shop default when empty.
func (s *TransactionService) Create(ctx context.Context, buyer string, currency entity.CurrencyCode, date time.Time, items []ItemInput) (*entity.Transaction, error) {
	if currency == "" {
		currency = entity.DefaultCurrency
	}
	if date.IsZero() {
		date = s.now()
	}

	tx := &entity.Transaction{
		ReceiptNumber: s.newReceiptNumber(),
		BuyerName:     buyer,
		Date:          date,
		Currency:      currency,
		Items:         make([]entity.Item, 0, len(items)),
	}

	for i, in := range items {
		tx.Items = append(tx.Items, entity.Item{
			ID:          i + 1,
			Name:        in.Name,
			Description: in.Description,
			Price:       in.Price,
			Quantity:    in.Quantity,
		})
	}
	tx.Total = tx.ItemsTotal()

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	id, err := s.repo.Store(ctx, tx)
	if err != nil {
		return nil, err
	}
	tx.ID = id

	s.logger.Info("Transaction created", map[string]interface{}{
		"request_id":     middleware.GetRequestID(ctx),
		"id":             id,
		"receipt_number": tx.ReceiptNumber,
		"currency":       tx.Currency,
		"items":          len(tx.Items),
		"total":          tx.Total.StringFixed(2),
	})

	return tx, nil
}

// Get retrieves a transaction by ID
func (s *TransactionService) Get(ctx context.Context, id int64) (*entity.Transaction, error) {
	return s.repo.FindByID(ctx, id)
}

// List retrieves every transaction, newest first
func (s *TransactionService) List(ctx context.Context) ([]*entity.Transaction, error) {
	return s.repo.FindAll(ctx)
}

// Delete removes a transaction
func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.logger.Info("Transaction deleted", map[string]interface{}{
		"request_id": middleware.GetRequestID(ctx),
		"id":         id,
	})
	return nil
}
