package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/axo-networks/marketplace-api/internal/mapper"
	"github.com/axo-networks/marketplace-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SourcingService handles manufacturer sourcing requests
type SourcingService struct {
	sourcingRepo *repository.SourcingRequestRepository
	userRepo     *repository.UserRepository
	logger       *zap.Logger
}

func NewSourcingService(
	sourcingRepo *repository.SourcingRequestRepository,
	userRepo *repository.UserRepository,
	logger *zap.Logger,
) *SourcingService {
	return &SourcingService{
		sourcingRepo: sourcingRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// Create publishes a sourcing request owned by the manufacturer
func (s *SourcingService) Create(ctx context.Context, manufacturerID uuid.UUID, req *domain.CreateSourcingRequestRequest) (*domain.SourcingRequestDTO, error) {
	var specs domain.SourcingSpecifications
	if req.Specifications != nil {
		specs = *req.Specifications
	}

	sr := &domain.SourcingRequest{
		ComponentName:   strings.TrimSpace(req.ComponentName),
		ManufacturerID:  manufacturerID,
		Quantity:        req.Quantity,
		RequiredByDate:  req.RequiredByDate,
		QualityTier:     req.QualityTier,
		DesignFileURL:   req.DesignFileURL,
		AdditionalNotes: req.AdditionalNotes,
		Specifications:  datatypes.NewJSONType(specs),
		MatchingStatus:  domain.MatchingPending,
		Status:          domain.SourcingStatusPublished,
	}

	if err := s.sourcingRepo.Create(ctx, sr); err != nil {
		return nil, fmt.Errorf("failed to create sourcing request: %w", err)
	}

	s.logger.Info("sourcing request created",
		zap.String("sourcing_request_id", sr.ID.String()),
		zap.String("manufacturer_id", manufacturerID.String()),
	)

	dto := mapper.ToSourcingRequestDTO(sr)
	return &dto, nil
}

func (s *SourcingService) ListByManufacturer(ctx context.Context, manufacturerID uuid.UUID) ([]domain.SourcingRequestDTO, error) {
	reqs, err := s.sourcingRepo.ListByManufacturer(ctx, manufacturerID, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list sourcing requests: %w", err)
	}
	return mapper.ToSourcingRequestDTOs(reqs), nil
}

// Update applies a partial update to a request the manufacturer owns
func (s *SourcingService) Update(ctx context.Context, manufacturerID, id uuid.UUID, req *domain.UpdateSourcingRequestRequest) (*domain.SourcingRequestDTO, error) {
	sr, err := s.sourcingRepo.GetByIDForManufacturer(ctx, id, manufacturerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFoundOrUnauthorized
		}
		return nil, fmt.Errorf("failed to get sourcing request: %w", err)
	}

	if req.AssignedSupplierID != nil {
		if _, err := s.userRepo.GetByID(ctx, *req.AssignedSupplierID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: supplier not found", ErrInvalidInput)
			}
			return nil, fmt.Errorf("failed to verify supplier: %w", err)
		}
		sr.AssignedSupplierID = req.AssignedSupplierID
	}
	if req.ComponentName != nil {
		sr.ComponentName = strings.TrimSpace(*req.ComponentName)
	}
	if req.Quantity != nil {
		sr.Quantity = *req.Quantity
	}
	if req.RequiredByDate != nil {
		sr.RequiredByDate = req.RequiredByDate
	}
	if req.QualityTier != nil {
		sr.QualityTier = *req.QualityTier
	}
	if req.DesignFileURL != nil {
		sr.DesignFileURL = *req.DesignFileURL
	}
	if req.AdditionalNotes != nil {
		sr.AdditionalNotes = *req.AdditionalNotes
	}
	if req.Specifications != nil {
		sr.Specifications = datatypes.NewJSONType(*req.Specifications)
	}
	if req.MatchingStatus != nil {
		sr.MatchingStatus = *req.MatchingStatus
	}
	if req.Status != nil {
		sr.Status = *req.Status
	}

	if err := s.sourcingRepo.Update(ctx, sr); err != nil {
		return nil, fmt.Errorf("failed to update sourcing request: %w", err)
	}

	dto := mapper.ToSourcingRequestDTO(sr)
	return &dto, nil
}
