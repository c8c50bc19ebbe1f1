package handler

import (
	"errors"
	"net/http"

	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/axo-networks/marketplace-api/internal/service"
	"go.uber.org/zap"
)

// ManufacturerHandler serves the /manufacturer routes for manufacturers and OEMs
type ManufacturerHandler struct {
	programService  *service.ProgramService
	sourcingService *service.SourcingService
	demandService   *service.DemandService
	metricsService  *service.MetricsService
	logger          *zap.Logger
}

func NewManufacturerHandler(
	programService *service.ProgramService,
	sourcingService *service.SourcingService,
	demandService *service.DemandService,
	metricsService *service.MetricsService,
	logger *zap.Logger,
) *ManufacturerHandler {
	return &ManufacturerHandler{
		programService:  programService,
		sourcingService: sourcingService,
		demandService:   demandService,
		metricsService:  metricsService,
		logger:          logger,
	}
}

// ListPrograms godoc
// @Summary List the caller's programs
// @Tags Manufacturer
// @Produce json
// @Success 200 {object} domain.ProgramListResponse
// @Failure 403 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /manufacturer/programs [get]
func (h *ManufacturerHandler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := caller(w, r)
	if !ok {
		return
	}

	programs, err := h.programService.ListByManufacturer(r.Context(), userCtx.UserID)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list programs")
		return
	}

	respondJSON(w, http.StatusOK, domain.ProgramListResponse{Success: true, Programs: programs})
}

// CreateProgram godoc
// @Summary Create a program
// @Description Status starts as planned. Manufacturer metrics are recomputed in the background.
// @Tags Manufacturer
// @Accept json
// @Produce json
// @Param request body domain.CreateProgramRequest true "Program"
// @Success 201 {object} domain.ProgramResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /manufacturer/programs [post]
func (h *ManufacturerHandler) CreateProgram(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := caller(w, r)
	if !ok {
		return
	}

	var req domain.CreateProgramRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	program, err := h.programService.Create(r.Context(), userCtx.UserID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create program")
		return
	}

	respondJSON(w, http.StatusCreated, domain.ProgramResponse{
		Success: true,
		Message: "Program created successfully",
		Program: *program,
	})
}

// UpdateProgram godoc
// @Summary Update one of the caller's programs
// @Tags Manufacturer
// @Accept json
// @Produce json
// @Param id path string true "Program ID"
// @Param request body domain.UpdateProgramRequest true "Fields to change"
// @Success 200 {object} domain.ProgramResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /manufacturer/programs/{id} [put]
func (h *ManufacturerHandler) UpdateProgram(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateProgramRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	program, err := h.programService.Update(r.Context(), userCtx.UserID, id, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFoundOrUnauthorized) {
			respondWithError(w, http.StatusNotFound, "Program not found or not authorized")
			return
		}
		respondServiceError(w, h.logger, err, "Failed to update program")
		return
	}

	respondJSON(w, http.StatusOK, domain.ProgramResponse{
		Success: true,
		Message: "Program updated successfully",
		Program: *program,
	})
}

// ListSourcingRequests godoc
// @Summary List the caller's sourcing requests
// @Tags Manufacturer
// @Produce json
// @Success 200 {object} domain.SourcingRequestListResponse
// @Security BearerAuth
// @Router /manufacturer/sourcing-requests [get]
func (h *ManufacturerHandler) ListSourcingRequests(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := caller(w, r)
	if !ok {
		return
	}

	requests, err := h.sourcingService.ListByManufacturer(r.Context(), userCtx.UserID)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list sourcing requests")
		return
	}

	respondJSON(w, http.StatusOK, domain.SourcingRequestListResponse{Success: true, Requests: requests})
}

// UpdateSourcingRequest godoc
// @Summary Update one of the caller's sourcing requests
// @Tags Manufacturer
// @Accept json
// @Produce json
// @Param id path string true "Sourcing request ID"
// @Param request body domain.UpdateSourcingRequestRequest true "Fields to change"
// @Success 200 {object} domain.SourcingRequestResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /manufacturer/sourcing-requests/{id} [put]
func (h *ManufacturerHandler) UpdateSourcingRequest(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateSourcingRequestRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	request, err := h.sourcingService.Update(r.Context(), userCtx.UserID, id, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFoundOrUnauthorized) {
			respondWithError(w, http.StatusNotFound, "Sourcing request not found or not authorized")
			return
		}
		respondServiceError(w, h.logger, err, "Failed to update sourcing request")
		return
	}

	respondJSON(w, http.StatusOK, domain.SourcingRequestResponse{
		Success:         true,
		Message:         "Sourcing request updated successfully",
		SourcingRequest: *request,
	})
}

// AvailableDemand godoc
// @Summary List open demand visible to the caller
// @Tags Manufacturer
// @Produce json
// @Success 200 {object} domain.AvailableDemandResponse
// @Security BearerAuth
// @Router /manufacturer/available-demand [get]
func (h *ManufacturerHandler) AvailableDemand(w http.ResponseWriter, r *http.Request) {
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

// GetMetrics godoc
// @Summary Get the latest metrics snapshot
// @Description Returns fallback values when no snapshot has been computed yet
// @Tags Manufacturer
// @Produce json
// @Success 200 {object} domain.MetricsResponse
// @Security BearerAuth
// @Router /manufacturer/metrics [get]
func (h *ManufacturerHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := caller(w, r)
	if !ok {
		return
	}

	metrics, err := h.metricsService.GetLatest(r.Context(), userCtx.UserID)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get metrics")
		return
	}

	respondJSON(w, http.StatusOK, domain.MetricsResponse{Success: true, Metrics: metrics})
}
