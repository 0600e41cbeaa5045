package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/toolthread/transaction-tracker/internal/application/service"
	"github.com/toolthread/transaction-tracker/internal/domain/entity"
	"github.com/toolthread/transaction-tracker/internal/domain/repository"
	"github.com/toolthread/transaction-tracker/internal/infrastructure/logger"
	"github.com/toolthread/transaction-tracker/internal/infrastructure/middleware"
)

// TransactionHandler handles HTTP requests for transactions
type TransactionHandler struct {
	service  *service.TransactionService
	receipts *service.ReceiptService
	logger   logger.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(svc *service.TransactionService, receipts *service.ReceiptService, log logger.Logger) *TransactionHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &TransactionHandler{
		service:  svc,
		receipts: receipts,
		logger:   log,
	}
}

// CreateTransaction handles the creation of a new transaction
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid request body",
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return
	}

	date := time.Time{}
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			sendErrorResponse(w, h.logger, "Invalid date format",
				"Date must be an RFC 3339 timestamp", http.StatusBadRequest, requestID)
			return
		}
		date = parsed
	}

	items := make([]service.ItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.ItemInput{
			Name:        it.Name,
			Description: it.Description,
			Price:       it.Price,
			Quantity:    it.Quantity,
		})
	}

	tx, err := h.service.Create(r.Context(), req.BuyerName, entity.CurrencyCode(req.Currency), date, items)
	if err != nil {
		h.logger.Warn("Transaction validation failed", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid transaction", err.Error(), http.StatusBadRequest, requestID)
		return
	}

	h.writeTransaction(w, requestID, tx, http.StatusCreated)
}

// GetTransaction handles retrieving a transaction by ID
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := parseID(w, r, h.logger, requestID)
	if !ok {
		return
	}

	tx, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.handleLookupError(w, requestID, id, err)
		return
	}

	h.writeTransaction(w, requestID, tx, http.StatusOK)
}

// ListTransactions handles retrieving all transactions, newest first
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	txs, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list transactions", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Internal server error",
			"An unexpected error occurred while listing transactions",
			http.StatusInternalServerError, requestID)
		return
	}

	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp, err := h.toResponse(tx)
		if err != nil {
			sendErrorResponse(w, h.logger, "Internal server error",
				"An unexpected error occurred while formatting transactions",
				http.StatusInternalServerError, requestID)
			return
		}
		out = append(out, resp)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// DeleteTransaction handles removing a transaction
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := parseID(w, r, h.logger, requestID)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleLookupError(w, requestID, id, err)
		return
	}

	h.receipts.Evict(id)
	w.WriteHeader(http.StatusNoContent)
}

// RegisterRoutes registers the transaction handler routes
func (h *TransactionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	router.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	router.HandleFunc("/transactions/{id}", h.GetTransaction).Methods("GET")
	router.HandleFunc("/transactions/{id}", h.DeleteTransaction).Methods("DELETE")

	h.logger.Info("Transaction routes registered", map[string]interface{}{
		"routes": []string{
			"POST /transactions",
			"GET /transactions",
			"GET /transactions/{id}",
			"DELETE /transactions/{id}",
		},
	})
}

func (h *TransactionHandler) toResponse(tx *entity.Transaction) (TransactionResponse, error) {
	formatted, words, err := h.receipts.DisplayTotal(tx)
	if err != nil {
		return TransactionResponse{}, err
	}

	return TransactionResponse{
		ID:             tx.ID,
		ReceiptNumber:  tx.ReceiptNumber,
		BuyerName:      tx.BuyerName,
		Date:           tx.Date.Format(time.RFC3339),
		Currency:       string(tx.Currency),
		Items:          toItemResponses(tx.Items),
		Total:          tx.ItemsTotal().StringFixed(2),
		FormattedTotal: formatted,
		TotalInWords:   words,
	}, nil
}

func (h *TransactionHandler) writeTransaction(w http.ResponseWriter, requestID string, tx *entity.Transaction, status int) {
	resp, err := h.toResponse(tx)
	if err != nil {
		h.logger.Error("Failed to format transaction", map[string]interface{}{
			"request_id": requestID,
			"id":         tx.ID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Internal server error",
			"An unexpected error occurred while formatting the transaction",
			http.StatusInternalServerError, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func (h *TransactionHandler) handleLookupError(w http.ResponseWriter, requestID string, id int64, err error) {
	if errors.Is(err, repository.ErrTransactionNotFound) {
		h.logger.Warn("Transaction not found", map[string]interface{}{
			"request_id": requestID,
			"id":         id,
		})
		sendErrorResponse(w, h.logger, "Transaction not found",
			"The requested transaction could not be found", http.StatusNotFound, requestID)
		return
	}

	h.logger.Error("Unexpected transaction error", map[string]interface{}{
		"request_id": requestID,
		"id":         id,
		"error":      err.Error(),
	})
	sendErrorResponse(w, h.logger, "Internal server error",
		"An unexpected error occurred", http.StatusInternalServerError, requestID)
}

// parseID extracts and validates the numeric id path variable.
func parseID(w http.ResponseWriter, r *http.Request, log logger.Logger, requestID string) (int64, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil || id <= 0 {
		sendErrorResponse(w, log, "Invalid transaction ID",
			"The transaction id must be a positive integer", http.StatusBadRequest, requestID)
		return 0, false
	}
	return id, true
}

// sendErrorResponse sends a standardized error response
func sendErrorResponse(w http.ResponseWriter, log logger.Logger, message, description string, statusCode int, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := ErrorResponse{
		Error:       message,
		Status:      statusCode,
		Description: description,
		RequestID:   requestID,
	}

	log.Debug("Sending error response", map[string]interface{}{
		"request_id":  requestID,
		"status_code": statusCode,
		"message":     message,
	})

	json.NewEncoder(w).Encode(resp)
}
