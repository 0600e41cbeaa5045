package service

import (
	"context"
	"fmt"

	"github.com/toolthread/transaction-tracker/internal/domain/entity"
	"github.com/toolthread/transaction-tracker/internal/domain/money"
	"github.com/toolthread/transaction-tracker/internal/domain/receipt"
	"github.com/toolthread/transaction-tracker/internal/domain/repository"
	"github.com/toolthread/transaction-tracker/internal/infrastructure/cache"
	"github.com/toolthread/transaction-tracker/internal/infrastructure/logger"
	"github.com/toolthread/transaction-tracker/internal/infrastructure/middleware"
)

// DocumentRenderer turns a laid-out receipt into PDF bytes.
type DocumentRenderer interface {
	Render(doc *receipt.Document) ([]byte, error)
}

// ReceiptService produces receipt artifacts for stored transactions:
// the downloadable PDF and the formatted strings for screen display.
type ReceiptService struct {
	repo      repository.TransactionRepository
	engine    *receipt.Engine
	renderer  DocumentRenderer
	formatter *money.Formatter
	cache     *cache.ReceiptCache
	logger    logger.Logger
}

// NewReceiptService creates a new receipt service. The cache is
// optional; pass nil to render every request.
func NewReceiptService(
	repo repository.TransactionRepository,
	engine *receipt.Engine,
	renderer DocumentRenderer,
	formatter *money.Formatter,
	pdfCache *cache.ReceiptCache,
	log logger.Logger,
) *ReceiptService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ReceiptService{
		repo:      repo,
		engine:    engine,
		renderer:  renderer,
		formatter: formatter,
		cache:     pdfCache,
		logger:    log,
	}
}

// FileName builds the download filename for a transaction's receipt,
// preferring the receipt number and falling back to the numeric id.
func FileName(tx *entity.Transaction) string {
	if tx.ReceiptNumber != "" {
		return fmt.Sprintf("Receipt_%s.pdf", tx.ReceiptNumber)
	}
	return fmt.Sprintf("Receipt_%d.pdf", tx.ID)
}

// GeneratePDF renders the receipt for a transaction and returns the PDF
// bytes together with the download filename.
func (s *ReceiptService) GeneratePDF(ctx context.Context, id int64) ([]byte, string, error) {
	requestID := middleware.GetRequestID(ctx)

	tx, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("Failed to load transaction for receipt", map[string]interface{}{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		})
		return nil, "", err
	}

	filename := FileName(tx)

	if s.cache != nil {
		if pdf := s.cache.Get(id); pdf != nil {
			s.logger.Debug("Receipt served from cache", map[string]interface{}{
				"request_id": requestID,
				"id":         id,
			})
			return pdf, filename, nil
		}
	}

	doc, err := s.engine.Layout(tx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to lay out receipt: %w", err)
	}

	pdf, err := s.renderer.Render(doc)
	if err != nil {
		s.logger.Error("Receipt rendering failed", map[string]interface{}{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		})
		return nil, "", err
	}

	if s.cache != nil {
		s.cache.Put(id, pdf)
	}

	s.logger.Info("Receipt generated", map[string]interface{}{
		"request_id":     requestID,
		"id":             id,
		"receipt_number": tx.ReceiptNumber,
		"bytes":          len(pdf),
	})

	return pdf, filename, nil
}

// Evict drops any cached receipt for the transaction.
func (s *ReceiptService) Evict(id int64) {
	if s.cache != nil {
		s.cache.Invalidate(id)
	}
}

// DisplayTotal returns the screen representation of a transaction's
// grand total: the formatted amount and its spelling in words. The
// total is recomputed from the items.
func (s *ReceiptService) DisplayTotal(tx *entity.Transaction) (formatted, words string, err error) {
	total := tx.ItemsTotal()
	formatted = s.formatter.Format(total, tx.Currency)
	words, err = money.AmountInWords(total, tx.Currency)
	if err != nil {
		return "", "", fmt.Errorf("failed to spell out total: %w", err)
	}
	return formatted, words, nil
}
