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
	"gorm.io/gorm"
)

// RecomputeQueue accepts manufacturer ids whose metrics need a refresh
type RecomputeQueue interface {
	Enqueue(manufacturerID uuid.UUID) bool
}

// ProgramService handles business logic for manufacturing programs
type ProgramService struct {
	programRepo *repository.ProgramRepository
	userRepo    *repository.UserRepository
	recompute   RecomputeQueue
	logger      *zap.Logger
}

func NewProgramService(
	programRepo *repository.ProgramRepository,
	userRepo *repository.UserRepository,
	recompute RecomputeQueue,
	logger *zap.Logger,
) *ProgramService {
	return &ProgramService{
		programRepo: programRepo,
		userRepo:    userRepo,
		recompute:   recompute,
		logger:      logger,
	}
}

// Create stores a new planned program owned by the manufacturer
func (s *ProgramService) Create(ctx context.Context, manufacturerID uuid.UUID, req *domain.CreateProgramRequest) (*domain.ProgramDTO, error) {
	if req.SupplierID != nil {
		if err := s.verifySupplier(ctx, *req.SupplierID); err != nil {
			return nil, err
		}
	}

	health := req.MilestoneHealthStatus
	if health == "" {
		health = domain.HealthOnTrack
	}
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	milestones := req.Milestones
	if milestones == nil {
		milestones = []domain.Milestone{}
	}

	program := &domain.Program{
		ProgramName:            strings.TrimSpace(req.ProgramName),
		ManufacturerID:         manufacturerID,
		SupplierID:             req.SupplierID,
		CurrentMilestone:       req.CurrentMilestone,
		MilestoneHealthStatus:  health,
		StartDate:              req.StartDate,
		ExpectedCompletionDate: req.ExpectedCompletionDate,
		Status:                 domain.ProgramStatusPlanned,
		Priority:               priority,
		ComponentType:          req.ComponentType,
		Quantity:               req.Quantity,
		QualityTier:            req.QualityTier,
		Milestones:             milestones,
		Notes:                  req.Notes,
	}

	if err := s.programRepo.Create(ctx, program); err != nil {
		return nil, fmt.Errorf("failed to create program: %w", err)
	}

	s.logger.Info("program created",
		zap.String("program_id", program.ID.String()),
		zap.String("manufacturer_id", manufacturerID.String()),
	)
	s.recompute.Enqueue(manufacturerID)

	return s.load(ctx, program.ID)
}

// ListByManufacturer returns every program the manufacturer owns, newest first
func (s *ProgramService) ListByManufacturer(ctx context.Context, manufacturerID uuid.UUID) ([]domain.ProgramDTO, error) {
	programs, err := s.programRepo.ListByManufacturer(ctx, manufacturerID, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	return mapper.ToProgramDTOs(programs), nil
}

// ListBySupplier returns every program the supplier is assigned to, newest first
func (s *ProgramService) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]domain.ProgramDTO, error) {
	programs, err := s.programRepo.ListBySupplier(ctx, supplierID, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	return mapper.ToProgramDTOs(programs), nil
}

// Update applies a partial update to a program the manufacturer owns.
// Missing and foreign programs both return ErrNotFoundOrUnauthorized.
func (s *ProgramService) Update(ctx context.Context, manufacturerID, programID uuid.UUID, req *domain.UpdateProgramRequest) (*domain.ProgramDTO, error) {
	program, err := s.programRepo.GetByIDForManufacturer(ctx, programID, manufacturerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFoundOrUnauthorized
		}
		return nil, fmt.Errorf("failed to get program: %w", err)
	}

	if req.SupplierID != nil {
		if err := s.verifySupplier(ctx, *req.SupplierID); err != nil {
			return nil, err
		}
		program.SupplierID = req.SupplierID
	}
	if req.ProgramName != nil {
		program.ProgramName = strings.TrimSpace(*req.ProgramName)
	}
	if req.CurrentMilestone != nil {
		program.CurrentMilestone = *req.CurrentMilestone
	}
	if req.MilestoneHealthStatus != nil {
		program.MilestoneHealthStatus = *req.MilestoneHealthStatus
	}
	if req.StartDate != nil {
		program.StartDate = req.StartDate
	}
	if req.ExpectedCompletionDate != nil {
		program.ExpectedCompletionDate = req.ExpectedCompletionDate
	}
	if req.ActualCompletionDate != nil {
		program.ActualCompletionDate = req.ActualCompletionDate
	}
	if req.Status != nil {
		program.Status = *req.Status
	}
	if req.Priority != nil {
		program.Priority = *req.Priority
	}
	if req.ComponentType != nil {
		program.ComponentType = *req.ComponentType
	}
	if req.Quantity != nil {
		program.Quantity = *req.Quantity
	}
	if req.QualityTier != nil {
		program.QualityTier = *req.QualityTier
	}
	if req.Milestones != nil {
		program.Milestones = *req.Milestones
		if program.Milestones == nil {
			program.Milestones = []domain.Milestone{}
		}
	}
	if req.Notes != nil {
		program.Notes = *req.Notes
	}

	if err := s.programRepo.Update(ctx, program); err != nil {
		return nil, fmt.Errorf("failed to update program: %w", err)
	}

	s.logger.Info("program updated",
		zap.String("program_id", program.ID.String()),
		zap.String("status", string(program.Status)),
		zap.String("milestone_health", string(program.MilestoneHealthStatus)),
	)
	s.recompute.Enqueue(manufacturerID)

	return s.load(ctx, program.ID)
}

func (s *ProgramService) load(ctx context.Context, id uuid.UUID) (*domain.ProgramDTO, error) {
	program, err := s.programRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload program: %w", err)
	}
	dto := mapper.ToProgramDTO(program)
	return &dto, nil
}

func (s *ProgramService) verifySupplier(ctx context.Context, supplierID uuid.UUID) error {
	if _, err := s.userRepo.GetByID(ctx, supplierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: supplier not found", ErrInvalidInput)
		}
		return fmt.Errorf("failed to verify supplier: %w", err)
	}
	return nil
}
