package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/axo-networks/marketplace-api/internal/auth"
	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/axo-networks/marketplace-api/internal/mapper"
	"github.com/axo-networks/marketplace-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DemandService handles buyer demand listings, supplier discovery and quotes
type DemandService struct {
	demandRepo *repository.DemandListingRepository
	logger     *zap.Logger
	now        func() time.Time
}

func NewDemandService(demandRepo *repository.DemandListingRepository, logger *zap.Logger) *DemandService {
	return &DemandService{
		demandRepo: demandRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// Create opens a new listing owned by the buyer
func (s *DemandService) Create(ctx context.Context, buyerID uuid.UUID, req *domain.CreateDemandListingRequest) (*domain.DemandListingDTO, error) {
	var specs domain.DemandSpecifications
	if req.Specifications != nil {
		specs = *req.Specifications
	}
	visibility := req.Visibility
	if visibility == "" {
		visibility = domain.VisibilityPublic
	}

	listing := &domain.DemandListing{
		ComponentName:  strings.TrimSpace(req.ComponentName),
		ComponentType:  req.ComponentType,
		Description:    req.Description,
		BuyerID:        buyerID,
		Quantity:       req.Quantity,
		Timeline:       req.Timeline,
		RequiredByDate: req.RequiredByDate,
		QualityTier:    req.QualityTier,
		Specifications: datatypes.NewJSONType(specs),
		DesignFileURL:  req.DesignFileURL,
		Budget:         budgetFrom(req.BudgetRange),
		Status:         domain.DemandStatusOpen,
		ActionStatus:   domain.ActionPending,
		Visibility:     visibility,
	}
	for _, id := range req.InvitedSuppliers {
		listing.Invitations = append(listing.Invitations, domain.DemandInvitation{SupplierID: id})
	}

	if err := s.demandRepo.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to create demand listing: %w", err)
	}

	s.logger.Info("demand listing created",
		zap.String("demand_listing_id", listing.ID.String()),
		zap.String("buyer_id", buyerID.String()),
		zap.String("visibility", string(listing.Visibility)),
	)

	dto := mapper.ToDemandListingDTO(listing, true)
	return &dto, nil
}

// ListByBuyer returns the buyer's own listings with invitations and quotes
func (s *DemandService) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]domain.DemandListingDTO, error) {
	listings, err := s.demandRepo.ListByBuyer(ctx, buyerID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list demand listings: %w", err)
	}
	return mapper.ToDemandListingDTOs(listings, true), nil
}

// Update applies a partial update to a listing the buyer owns.
// A non-nil InvitedSuppliers replaces the whole invited set.
func (s *DemandService) Update(ctx context.Context, buyerID, id uuid.UUID, req *domain.UpdateDemandListingRequest) (*domain.DemandListingDTO, error) {
	listing, err := s.demandRepo.GetByIDForBuyer(ctx, id, buyerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFoundOrUnauthorized
		}
		return nil, fmt.Errorf("failed to get demand listing: %w", err)
	}

	if req.ComponentName != nil {
		listing.ComponentName = strings.TrimSpace(*req.ComponentName)
	}
	if req.ComponentType != nil {
		listing.ComponentType = *req.ComponentType
	}
	if req.Description != nil {
		listing.Description = *req.Description
	}
	if req.Quantity != nil {
		listing.Quantity = *req.Quantity
	}
	if req.Timeline != nil {
		listing.Timeline = *req.Timeline
	}
	if req.RequiredByDate != nil {
		listing.RequiredByDate = req.RequiredByDate
	}
	if req.QualityTier != nil {
		listing.QualityTier = *req.QualityTier
	}
	if req.Specifications != nil {
		listing.Specifications = datatypes.NewJSONType(*req.Specifications)
	}
	if req.DesignFileURL != nil {
		listing.DesignFileURL = *req.DesignFileURL
	}
	if req.BudgetRange != nil {
		listing.Budget = budgetFrom(req.BudgetRange)
	}
	if req.Status != nil {
		listing.Status = *req.Status
	}
	if req.Visibility != nil {
		listing.Visibility = *req.Visibility
	}

	if err := s.demandRepo.Update(ctx, listing, req.InvitedSuppliers); err != nil {
		return nil, fmt.Errorf("failed to update demand listing: %w", err)
	}

	s.logger.Info("demand listing updated",
		zap.String("demand_listing_id", listing.ID.String()),
		zap.String("visibility", string(listing.Visibility)),
		zap.Int("invited", len(listing.Invitations)),
	)

	dto := mapper.ToDemandListingDTO(listing, true)
	return &dto, nil
}

// ParseAction maps accept/decline/expire (any case, optionally past tense) to an ActionStatus
func ParseAction(action string) (domain.ActionStatus, error) {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case "accept", "accepted":
		return domain.ActionAccepted, nil
	case "decline", "declined":
		return domain.ActionDeclined, nil
	case "expire", "expired":
		return domain.ActionExpired, nil
	}
	return "", fmt.Errorf("%w: action must be accept, decline or expire", ErrInvalidInput)
}

// Action records the buyer's decision. Only the owning buyer or an admin may act.
func (s *DemandService) Action(ctx context.Context, caller *auth.UserContext, id uuid.UUID, req *domain.DemandActionRequest) (*domain.DemandListingDTO, domain.ActionStatus, error) {
	action, err := ParseAction(req.Action)
	if err != nil {
		return nil, "", err
	}

	listing, err := s.demandRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to get demand listing: %w", err)
	}

	if listing.BuyerID != caller.UserID && !caller.IsAdmin() {
		return nil, "", ErrForbidden
	}

	listing.ActionStatus = action
	switch action {
	case domain.ActionAccepted:
		listing.Status = domain.DemandStatusInProgress
		if req.SupplierID != nil {
			listing.AwardedToID = req.SupplierID
		}
	case domain.ActionDeclined:
		listing.Status = domain.DemandStatusCancelled
	}

	if err := s.demandRepo.Update(ctx, listing, nil); err != nil {
		return nil, "", fmt.Errorf("failed to update demand listing: %w", err)
	}

	s.logger.Info("demand listing action",
		zap.String("demand_listing_id", listing.ID.String()),
		zap.String("action", string(action)),
		zap.String("status", string(listing.Status)),
	)

	dto := mapper.ToDemandListingDTO(listing, listing.BuyerID == caller.UserID)
	return &dto, action, nil
}

// SubmitQuote appends a quote from the supplier. Suppliers outside the
// invited set of an invite-only listing are rejected with ErrForbidden.
func (s *DemandService) SubmitQuote(ctx context.Context, supplierID, id uuid.UUID, req *domain.SubmitQuoteRequest) (*domain.QuoteDTO, error) {
	listing, err := s.demandRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get demand listing: %w", err)
	}

	switch listing.Visibility {
	case domain.VisibilityInviteOnly:
		if !listing.IsInvited(supplierID) {
			return nil, ErrForbidden
		}
	case domain.VisibilityPrivate:
		return nil, ErrForbidden
	}

	quote := &domain.DemandQuote{
		DemandListingID:  listing.ID,
		SupplierID:       supplierID,
		QuoteAmount:      req.QuoteAmount,
		ProposedTimeline: req.ProposedTimeline,
		Notes:            req.Notes,
		Status:           domain.QuoteStatusSubmitted,
		SubmittedAt:      s.now().UTC(),
	}
	if err := s.demandRepo.AddQuote(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to submit quote: %w", err)
	}

	s.logger.Info("quote submitted",
		zap.String("demand_listing_id", listing.ID.String()),
		zap.String("supplier_id", supplierID.String()),
		zap.Float64("amount", req.QuoteAmount),
	)

	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

// ListAvailable returns the open listings the caller may discover
func (s *DemandService) ListAvailable(ctx context.Context, supplierID uuid.UUID) ([]domain.DemandListingDTO, error) {
	listings, err := s.demandRepo.ListVisibleToSupplier(ctx, supplierID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list available demand: %w", err)
	}
	return mapper.ToDemandListingDTOs(listings, false), nil
}

// GetForSupplier fetches one listing under the discovery rule
func (s *DemandService) GetForSupplier(ctx context.Context, supplierID, id uuid.UUID) (*domain.DemandListingDTO, error) {
	listing, err := s.demandRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get demand listing: %w", err)
	}
	if !listing.VisibleTo(supplierID) {
		return nil, ErrForbidden
	}
	dto := mapper.ToDemandListingDTO(listing, false)
	return &dto, nil
}

func budgetFrom(in *domain.BudgetRange) domain.BudgetRange {
	if in == nil {
		return domain.BudgetRange{Currency: "USD"}
	}
	out := *in
	out.Currency = strings.ToUpper(strings.TrimSpace(out.Currency))
	if out.Currency == "" {
		out.Currency = "USD"
	}
	return out
}
