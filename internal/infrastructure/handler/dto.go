package handler

import (
	"github.com/shopspring/decimal"

	"github.com/toolthread/transaction-tracker/internal/domain/entity"
)

// ItemRequest represents one line item in a create request
type ItemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// CreateTransactionRequest represents the request body for creating a
// transaction
type CreateTransactionRequest struct {
	BuyerName string        `json:"buyer_name"`
	Currency  string        `json:"currency,omitempty"`
	Date      string        `json:"date,omitempty"`
	Items     []ItemRequest `json:"items"`
}

// ItemResponse represents one line item in a transaction response
type ItemResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
	LineTotal   string `json:"line_total"`
}

// TransactionResponse represents the response for transaction endpoints.
// FormattedTotal and TotalInWords carry the screen representation of the
// grand total, recomputed from the items.
type TransactionResponse struct {
	ID             int64          `json:"id"`
	ReceiptNumber  string         `json:"receipt_number"`
	BuyerName      string         `json:"buyer_name"`
	Date           string         `json:"date"`
	Currency       string         `json:"currency"`
	Items          []ItemResponse `json:"items"`
	Total          string         `json:"total"`
	FormattedTotal string         `json:"formatted_total"`
	TotalInWords   string         `json:"total_in_words"`
}

// RegisterRequest represents the request body for account registration
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// RegisterResponse represents the response for account registration
type RegisterResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents the response for login
type LoginResponse struct {
	Token string `json:"token"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error       string `json:"error"`
	Status      int    `json:"status"`
	Description string `json:"description,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
}

func toItemResponses(items []entity.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for i := range items {
		item := &items[i]
		out = append(out, ItemResponse{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price.StringFixed(2),
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal().StringFixed(2),
		})
	}
	return out
}
