package handler

import (
	"errors"
	"net/http"

	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/axo-networks/marketplace-api/internal/service"
	"go.uber.org/zap"
)

// SupplierHandler serves the /supplier routes
type SupplierHandler struct {
	programService *service.ProgramService
	demandService  *service.DemandService
	profileService *service.ProfileService
	logger         *zap.Logger
}

func NewSupplierHandler(
	programService *service.ProgramService,
	demandService *service.DemandService,
	profileService *service.ProfileService,
	logger *zap.Logger,
) *SupplierHandler {
	return &SupplierHandler{
		programService: programService,
		demandService:  demandService,
		profileService: profileService,
		logger:         logger,
	}
}

// ListPrograms godoc
// @Summary List programs assigned to the caller
// @Tags Supplier
// @Produce json
// @Success 200 {object} domain.ProgramListResponse
// @Failure 403 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /supplier/programs [get]
func (h *SupplierHandler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := caller(w, r)
	if !ok {
		return
	}

	programs, err := h.programService.ListBySupplier(r.Context(), userCtx.UserID)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list programs")
		return
	}

	respondJSON(w, http.StatusOK, domain.ProgramListResponse{Success: true, Programs: programs})
}

// AvailableDemand godoc
// @Summary List open demand the caller may quote on
// @Description Public listings plus invite-only listings that name the caller
// @Tags Supplier
// @Produce json
// @Success 200 {object} domain.AvailableDemandResponse
// @Security BearerAuth
// @Router /supplier/available-demand [get]
func (h *SupplierHandler) AvailableDemand(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := caller(w, r)
	if !ok {
		return
	}

	demands, err := h.demandService.ListAvailable(r.Context(), userCtx.UserID)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list available demand")
		return
	}

	respondJSON(w, http.StatusOK, domain.AvailableDemandResponse{Success: true, Demands: demands})
}

// GetDemand godoc
// @Summary Get one demand listing
// @Tags Supplier
// @Produce json
// @Param id path string true "Demand listing ID"
// @Success 200 {object} domain.SupplierDemandResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /supplier/demand/{id} [get]
func (h *SupplierHandler) GetDemand(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	demand, err := h.demandService.GetForSupplier(r.Context(), userCtx.UserID, id)
	if err != nil {
		h.respondDemandError(w, err, "Failed to get demand")
		return
	}

	respondJSON(w, http.StatusOK, domain.SupplierDemandResponse{Success: true, Demand: *demand})
}

// SubmitQuote godoc
// @Summary Submit a quote on a demand listing
// @Tags Supplier
// @Accept json
// @Produce json
// @Param id path string true "Demand listing ID"
// @Param request body domain.SubmitQuoteRequest true "Quote"
// @Success 201 {object} domain.QuoteResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /supplier/demand/{id}/quote [post]
func (h *SupplierHandler) SubmitQuote(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.SubmitQuoteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	quote, err := h.demandService.SubmitQuote(r.Context(), userCtx.UserID, id, &req)
	if err != nil {
		h.respondDemandError(w, err, "Failed to submit quote")
		return
	}

	respondJSON(w, http.StatusCreated, domain.QuoteResponse{
		Success: true,
		Message: "Quote submitted successfully",
		Quote:   *quote,
	})
}

// UpdateProfile godoc
// @Summary Update the caller's supplier profile
// @Tags Supplier
// @Accept json
// @Produce json
// @Param request body domain.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} domain.UserResponse
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /supplier/profile [put]
func (h *SupplierHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := caller(w, r)
	if !ok {
		return
	}

	var req domain.UpdateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.profileService.UpdateProfile(r.Context(), userCtx.UserID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update profile")
		return
	}

	respondJSON(w, http.StatusOK, domain.UserResponse{
		Success: true,
		Message: "Profile updated successfully",
		User:    *user,
	})
}

func (h *SupplierHandler) respondDemandError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Demand not found")
	case errors.Is(err, service.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "Not invited to this demand")
	default:
		respondServiceError(w, h.logger, err, fallback)
	}
}
