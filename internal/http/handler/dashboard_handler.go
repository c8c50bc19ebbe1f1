package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/axo-networks/marketplace-api/internal/service"
	"go.uber.org/zap"
)

// DashboardHandler serves the /dashboard routes shared by every role
type DashboardHandler struct {
	dashboardService *service.DashboardService
	profileService   *service.ProfileService
	sourcingService  *service.SourcingService
	demandService    *service.DemandService
	logger           *zap.Logger
}

func NewDashboardHandler(
	dashboardService *service.DashboardService,
	profileService *service.ProfileService,
	sourcingService *service.SourcingService,
	demandService *service.DemandService,
	logger *zap.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		profileService:   profileService,
		sourcingService:  sourcingService,
		demandService:    demandService,
		logger:           logger,
	}
}

// GetData godoc
// @Summary Get the dashboard for the caller's role
// @Description Manufacturers and OEMs get programs and metrics, suppliers get assigned programs and open demand, buyers get their listings, admins get system stats
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.DashboardResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /dashboard/data [get]
func (h *DashboardHandler) GetData(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := caller(w, r)
	if !ok {
		return
	}

	payload, err := h.dashboardService.Compose(r.Context(), userCtx)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to load dashboard")
		return
	}

	respondJSON(w, http.StatusOK, domain.DashboardResponse{Success: true, Data: payload})
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.UserResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /dashboard/profile [get]
func (h *DashboardHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := caller(w, r)
	if !ok {
		return
	}

	user, err := h.profileService.GetProfile(r.Context(), userCtx.UserID)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get profile")
		return
	}

	respondJSON(w, http.StatusOK, domain.UserResponse{Success: true, User: *user})
}

// UpdateProfile godoc
// @Summary Update the caller's profile
// @Description Absent fields are left unchanged. Profile completion is recomputed.
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param request body domain.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} domain.UserResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /dashboard/profile [put]
func (h *DashboardHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
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

// CreateSourcingRequest godoc
// @Summary Submit a sourcing request
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param request body domain.CreateSourcingRequestRequest true "Sourcing request"
// @Success 201 {object} domain.SourcingRequestResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /dashboard/sourcing-request [post]
func (h *DashboardHandler) CreateSourcingRequest(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := caller(w, r)
	if !ok {
		return
	}

	var req domain.CreateSourcingRequestRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	request, err := h.sourcingService.Create(r.Context(), userCtx.UserID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to submit sourcing request")
		return
	}

	respondJSON(w, http.StatusCreated, domain.SourcingRequestResponse{
		Success:         true,
		Message:         "Sourcing request submitted successfully",
		SourcingRequest: *request,
	})
}

// CreateDemandListing godoc
// @Summary Create a demand listing
// @Description Visibility defaults to public. Invite-only listings are shown only to invited suppliers.
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param request body domain.CreateDemandListingRequest true "Demand listing"
// @Success 201 {object} domain.DemandListingResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /dashboard/demand-listing [post]
func (h *DashboardHandler) CreateDemandListing(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := caller(w, r)
	if !ok {
		return
	}

	var req domain.CreateDemandListingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	listing, err := h.demandService.Create(r.Context(), userCtx.UserID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create demand listing")
		return
	}

	respondJSON(w, http.StatusCreated, domain.DemandListingResponse{
		Success:       true,
		Message:       "Demand listing created successfully",
		DemandListing: *listing,
	})
}

// ListDemandListings godoc
// @Summary List the caller's demand listings
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.DemandListingListResponse
// @Security BearerAuth
// @Router /dashboard/demand-listings [get]
func (h *DashboardHandler) ListDemandListings(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := caller(w, r)
	if !ok {
		return
	}

	listings, err := h.demandService.ListByBuyer(r.Context(), userCtx.UserID)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list demand listings")
		return
	}

	respondJSON(w, http.StatusOK, domain.DemandListingListResponse{Success: true, DemandListings: listings})
}

// UpdateDemandListing godoc
// @Summary Update one of the caller's demand listings
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param id path string true "Demand listing ID"
// @Param request body domain.UpdateDemandListingRequest true "Fields to change"
// @Success 200 {object} domain.DemandListingResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /dashboard/demand-listing/{id} [put]
func (h *DashboardHandler) UpdateDemandListing(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateDemandListingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	listing, err := h.demandService.Update(r.Context(), userCtx.UserID, id, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFoundOrUnauthorized) {
			respondWithError(w, http.StatusNotFound, "Demand listing not found or not authorized")
			return
		}
		respondServiceError(w, h.logger, err, "Failed to update demand listing")
		return
	}

	respondJSON(w, http.StatusOK, domain.DemandListingResponse{
		Success:       true,
		Message:       "Demand listing updated successfully",
		DemandListing: *listing,
	})
}

// DemandAction godoc
// @Summary Accept, decline or expire a demand listing
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param id path string true "Demand listing ID"
// @Param request body domain.DemandActionRequest true "Action"
// @Success 200 {object} domain.DemandActionResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /dashboard/demand/{id}/action [post]
func (h *DashboardHandler) DemandAction(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.DemandActionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	listing, action, err := h.demandService.Action(r.Context(), userCtx, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Demand not found")
		case errors.Is(err, service.ErrForbidden):
			respondWithError(w, http.StatusForbidden, "Not authorized to act on this demand")
		default:
			respondServiceError(w, h.logger, err, "Failed to process demand action")
		}
		return
	}

	respondJSON(w, http.StatusOK, domain.DemandActionResponse{
		Success: true,
		Message: fmt.Sprintf("Demand %s successfully", strings.ToLower(string(action))),
		Demand:  *listing,
	})
}
