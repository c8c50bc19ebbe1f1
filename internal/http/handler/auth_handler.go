package handler

import (
	"net/http"

	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/axo-networks/marketplace-api/internal/service"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Creates an active account with a temporary password that must be reset on first login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.RegisterRequest true "Account details"
// @Success 201 {object} domain.RegisterResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Registration failed")
		return
	}

	respondJSON(w, http.StatusCreated, resp)
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and issues a bearer token. The temporary password keeps working until it is reset.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.LoginRequest true "Credentials"
// @Success 200 {object} domain.TokenResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Login failed. Please try again.")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// ForceResetPassword godoc
// @Summary Replace the temporary password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.ForceResetPasswordRequest true "Email and new password"
// @Success 200 {object} domain.TokenResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /auth/force-reset-password [post]
func (h *AuthHandler) ForceResetPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ForceResetPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.authService.ForceResetPassword(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Password reset failed")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// Check godoc
// @Summary Check whether an account exists
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.CheckUserRequest true "Email"
// @Success 200 {object} domain.CheckUserResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /auth/check [post]
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req domain.CheckUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.authService.Check(r.Context(), req.Email)
	if err != nil {
		respondServiceError(w, h.logger, err, "Check failed")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// Me godoc
// @Summary Get current authenticated user
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.UserResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := caller(w, r)
	if !ok {
		return
	}

	user, err := h.authService.Me(r.Context(), userCtx.UserID)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get user profile")
		return
	}

	respondJSON(w, http.StatusOK, domain.UserResponse{Success: true, User: *user})
}
