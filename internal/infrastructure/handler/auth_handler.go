package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/toolthread/transaction-tracker/internal/application/service"
	"github.com/toolthread/transaction-tracker/internal/domain/repository"
	"github.com/toolthread/transaction-tracker/internal/infrastructure/logger"
	"github.com/toolthread/transaction-tracker/internal/infrastructure/middleware"
)

// AuthHandler handles HTTP requests for registration and login
type AuthHandler struct {
	service *service.AuthService
	logger  logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(svc *service.AuthService, log logger.Logger) *AuthHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &AuthHandler{
		service: svc,
		logger:  log,
	}
}

// Register handles account creation
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, h.logger, "Invalid request body",
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return
	}

	user, err := h.service.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			sendErrorResponse(w, h.logger, "Email already registered",
				"An account with this email address already exists", http.StatusConflict, requestID)
			return
		}
		h.logger.Warn("Registration rejected", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid registration", err.Error(), http.StatusBadRequest, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(RegisterResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	})
}

// Login handles credential verification and token issuance
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, h.logger, "Invalid request body",
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			sendErrorResponse(w, h.logger, "Invalid credentials",
				"The email or password is incorrect", http.StatusUnauthorized, requestID)
			return
		}
		h.logger.Error("Unexpected error during login", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Internal server error",
			"An unexpected error occurred during login", http.StatusInternalServerError, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoginResponse{Token: token})
}

// RegisterRoutes registers the auth handler routes
func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/register", h.Register).Methods("POST")
	router.HandleFunc("/auth/login", h.Login).Methods("POST")

	h.logger.Info("Auth routes registered", map[string]interface{}{
		"routes": []string{
			"POST /auth/register",
			"POST /auth/login",
		},
	})
}
