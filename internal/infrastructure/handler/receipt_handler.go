package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/toolthread/transaction-tracker/internal/application/service"
	"github.com/toolthread/transaction-tracker/internal/domain/receipt"
	"github.com/toolthread/transaction-tracker/internal/domain/repository"
	"github.com/toolthread/transaction-tracker/internal/infrastructure/logger"
	"github.com/toolthread/transaction-tracker/internal/infrastructure/metrics"
	"github.com/toolthread/transaction-tracker/internal/infrastructure/middleware"
	"github.com/toolthread/transaction-tracker/internal/infrastructure/pdf"
)

// ReceiptHandler handles HTTP requests for receipt downloads
type ReceiptHandler struct {
	service *service.ReceiptService
	logger  logger.Logger
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(svc *service.ReceiptService, log logger.Logger) *ReceiptHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ReceiptHandler{
		service: svc,
		logger:  log,
	}
}

// DownloadReceipt handles generating and serving a transaction's receipt
// PDF. Bad input (missing transaction, no items) maps to 4xx; rendering
// engine failures map to 5xx.
func (h *ReceiptHandler) DownloadReceipt(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil || id <= 0 {
		sendErrorResponse(w, h.logger, "Invalid transaction ID",
			"The transaction id must be a positive integer", http.StatusBadRequest, requestID)
		return
	}

	pdfBytes, filename, err := h.service.GeneratePDF(r.Context(), id)
	if err != nil {
		var renderErr *pdf.RenderError
		switch {
		case errors.Is(err, repository.ErrTransactionNotFound):
			sendErrorResponse(w, h.logger, "Transaction not found",
				"The requested transaction could not be found", http.StatusNotFound, requestID)
		case errors.Is(err, receipt.ErrNoItems):
			h.logger.Warn("Receipt requested for empty transaction", map[string]interface{}{
				"request_id": requestID,
				"id":         id,
			})
			sendErrorResponse(w, h.logger, "No items available to generate receipt",
				"The transaction has no items, so no receipt can be produced",
				http.StatusUnprocessableEntity, requestID)
		case errors.As(err, &renderErr):
			metrics.ReceiptRenderFailures.Inc()
			h.logger.Error("Receipt rendering failed", map[string]interface{}{
				"request_id": requestID,
				"id":         id,
				"stage":      renderErr.Stage,
				"error":      err.Error(),
			})
			sendErrorResponse(w, h.logger, "Failed to generate PDF",
				"The rendering engine failed to produce the receipt. Please try again later.",
				http.StatusInternalServerError, requestID)
		default:
			h.logger.Error("Unexpected error generating receipt", map[string]interface{}{
				"request_id": requestID,
				"id":         id,
				"error":      err.Error(),
			})
			sendErrorResponse(w, h.logger, "Internal server error",
				"An unexpected error occurred while generating the receipt",
				http.StatusInternalServerError, requestID)
		}
		return
	}

	metrics.ReceiptsGenerated.Inc()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdfBytes); err != nil {
		h.logger.Error("Failed to write receipt response", map[string]interface{}{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		})
	}
}

// RegisterRoutes registers the receipt handler routes
func (h *ReceiptHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/transactions/{id}/receipt", h.DownloadReceipt).Methods("GET")

	h.logger.Info("Receipt routes registered", map[string]interface{}{
		"routes": []string{
			"GET /transactions/{id}/receipt",
		},
	})
}
