package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/axo-networks/marketplace-api/internal/auth"
	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/axo-networks/marketplace-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report json names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondWithError sends the flat {"error": message} body
func respondWithError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, domain.ErrorResponse{Error: message})
}

// respondValidationError reports the first failing field
func respondValidationError(w http.ResponseWriter, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		respondWithError(w, http.StatusBadRequest, formatValidationError(ve[0]))
		return
	}
	respondWithError(w, http.StatusBadRequest, "Invalid request")
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s %s", field, domain.GetValidationMessage(fe.Tag()))
	}
}

// decodeAndValidate reads a JSON body into dst and runs the struct validator
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		respondValidationError(w, err)
		return false
	}
	return true
}

// parseIDParam reads a UUID path parameter
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// caller returns the authenticated identity; the route is always behind Authenticate
func caller(w http.ResponseWriter, r *http.Request) (*auth.UserContext, bool) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}
	return userCtx, true
}

// respondServiceError maps service errors to HTTP statuses. Unexpected errors
// are logged and answered with fallback.
func respondServiceError(w http.ResponseWriter, logger *zap.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrDuplicateAccount):
		respondWithError(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrAccountInactive):
		respondWithError(w, http.StatusUnauthorized, "Account is not active. Please contact admin.")
	case errors.Is(err, service.ErrUserNotFound):
		respondWithError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrNotFoundOrUnauthorized):
		respondWithError(w, http.StatusNotFound, "Not found or not authorized")
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "Not authorized")
	case errors.Is(err, service.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), service.ErrInvalidInput.Error()+": "))
	case errors.Is(err, service.ErrStorageUnavailable):
		respondWithError(w, http.StatusServiceUnavailable, "File storage is not configured")
	default:
		logger.Error(fallback, zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, fallback)
	}
}
