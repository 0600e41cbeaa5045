package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Item is a single line on a transaction. Items are owned by their
// transaction and never exist on their own.
type Item struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// LineTotal returns price multiplied by quantity.
func (i *Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Validate ensures the item meets all requirements
func (i *Item) Validate() error {
	if i.Name == "" {
		return errors.New("item name must not be empty")
	}

	if i.Price.IsNegative() {
		return errors.New("item price must not be negative")
	}

	if i.Quantity < 1 {
		return errors.New("item quantity must be at least 1")
	}

	return nil
}

// Transaction represents a recorded sale: who bought, what they bought,
// and in which currency. It is treated as read-only once stored.
type Transaction struct {
	ID            int64           `json:"id"`
	ReceiptNumber string          `json:"receipt_number"`
	BuyerName     string          `json:"buyer_name"`
	Date          time.Time       `json:"date"`
	Currency      CurrencyCode    `json:"currency"`
	Items         []Item          `json:"items"`
	Total         decimal.Decimal `json:"total"`
}

// Validate ensures the transaction meets all requirements
func (t *Transaction) Validate() error {
	if t.BuyerName == "" {
		return errors.New("buyer name must not be empty")
	}

	if !t.Currency.Valid() {
		return fmt.Errorf("unsupported currency: %s", t.Currency)
	}

	if len(t.Items) == 0 {
		return errors.New("transaction must have at least one item")
	}

	for idx := range t.Items {
		if err := t.Items[idx].Validate(); err != nil {
			return fmt.Errorf("item %d: %w", idx+1, err)
		}
	}

	return nil
}

// ItemsTotal recomputes the grand total from the line items. Receipt
// rendering always uses this rather than the stored Total so the printed
// total can never drift from the printed items.
func (t *Transaction) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for idx := range t.Items {
		total = total.Add(t.Items[idx].LineTotal())
	}
	return total
}
