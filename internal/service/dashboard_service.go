package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/axo-networks/marketplace-api/internal/auth"
	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/axo-networks/marketplace-api/internal/mapper"
	"github.com/axo-networks/marketplace-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dashboardListLimit = 5

var (
	activeProgramStatuses = []domain.ProgramStatus{domain.ProgramStatusPlanned, domain.ProgramStatusInProgress}
	openSourcingStatuses  = []domain.SourcingStatus{domain.SourcingStatusDraft, domain.SourcingStatusPublished}
	manufacturerDemand    = []domain.Visibility{domain.VisibilityPublic, domain.VisibilityInviteOnly}
)

// DashboardService composes the role-shaped dashboard payload
type DashboardService struct {
	userRepo     *repository.UserRepository
	programRepo  *repository.ProgramRepository
	sourcingRepo *repository.SourcingRequestRepository
	demandRepo   *repository.DemandListingRepository
	metrics      *MetricsService
	logger       *zap.Logger
	now          func() time.Time
}

func NewDashboardService(
	userRepo *repository.UserRepository,
	programRepo *repository.ProgramRepository,
	sourcingRepo *repository.SourcingRequestRepository,
	demandRepo *repository.DemandListingRepository,
	metrics *MetricsService,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		userRepo:     userRepo,
		programRepo:  programRepo,
		sourcingRepo: sourcingRepo,
		demandRepo:   demandRepo,
		metrics:      metrics,
		logger:       logger,
		now:          time.Now,
	}
}

// Compose builds the dashboard for the caller. User types without a
// dedicated view get the base payload.
func (s *DashboardService) Compose(ctx context.Context, caller *auth.UserContext) (domain.DashboardPayload, error) {
	user, err := s.userRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	base := s.base(user)

	switch caller.UserType {
	case domain.UserTypeManufacturer, domain.UserTypeOEM:
		return s.manufacturer(ctx, user, base)
	case domain.UserTypeSupplier:
		return s.supplier(ctx, user, base)
	case domain.UserTypeBuyer:
		return s.buyer(ctx, user, base)
	case domain.UserTypeAdmin:
		return s.admin(ctx, base)
	default:
		return &base, nil
	}
}

func (s *DashboardService) base(user *domain.User) domain.DashboardBase {
	return domain.DashboardBase{
		User:             mapper.ToDashboardUserDTO(user),
		QuickStats:       map[string]int64{},
		RecentActivities: []domain.ActivityDTO{},
		Notifications:    []domain.NotificationDTO{domain.WelcomeNotification(s.now().UTC())},
	}
}

func (s *DashboardService) manufacturer(ctx context.Context, user *domain.User, base domain.DashboardBase) (*domain.ManufacturerDashboard, error) {
	metrics, err := s.metrics.GetLatest(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	programs, err := s.programRepo.ListByManufacturer(ctx, user.ID, activeProgramStatuses, dashboardListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	requests, err := s.sourcingRepo.ListByManufacturer(ctx, user.ID, openSourcingStatuses, dashboardListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sourcing requests: %w", err)
	}
	demand, err := s.demandRepo.ListOpenByVisibility(ctx, manufacturerDemand, dashboardListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list demand: %w", err)
	}

	activePrograms, err := s.programRepo.CountByManufacturer(ctx, user.ID, activeProgramStatuses...)
	if err != nil {
		return nil, fmt.Errorf("failed to count programs: %w", err)
	}
	openRequests, err := s.sourcingRepo.CountByManufacturer(ctx, user.ID, openSourcingStatuses...)
	if err != nil {
		return nil, fmt.Errorf("failed to count sourcing requests: %w", err)
	}

	return &domain.ManufacturerDashboard{
		DashboardBase: base,
		QuickStats: domain.ManufacturerQuickStats{
			ActivePrograms:   activePrograms,
			OpenRequests:     openRequests,
			AvailableDemand:  int64(len(demand)),
			TotalCapacity:    user.ManufacturingCapacity,
			UtilizedCapacity: metrics.TotalCapacityUtilization,
		},
		Metrics:          metrics,
		Programs:         mapper.ToProgramDTOs(programs),
		SourcingRequests: mapper.ToSourcingRequestDTOs(requests),
		AvailableDemand:  mapper.ToDemandListingDTOs(demand, false),
	}, nil
}

func (s *DashboardService) supplier(ctx context.Context, user *domain.User, base domain.DashboardBase) (*domain.SupplierDashboard, error) {
	programs, err := s.programRepo.ListBySupplier(ctx, user.ID, activeProgramStatuses, dashboardListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	demand, err := s.demandRepo.ListVisibleToSupplier(ctx, user.ID, dashboardListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list demand: %w", err)
	}
	pendingQuotes, err := s.demandRepo.CountSubmittedQuotesBySupplier(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count quotes: %w", err)
	}

	capacity := user.ManufacturingCapacity
	if capacity == "" {
		capacity = "Not specified"
	}

	return &domain.SupplierDashboard{
		DashboardBase: base,
		QuickStats: domain.SupplierQuickStats{
			ActiveOrders:     user.PendingOrders,
			CompletedOrders:  user.CompletedOrders,
			ReliabilityScore: user.ReliabilityScore,
			ResponseRate:     user.ResponseRate,
			PendingQuotes:    pendingQuotes,
		},
		Programs:            mapper.ToProgramDTOs(programs),
		AvailableDemand:     mapper.ToDemandListingDTOs(demand, false),
		CapacityUtilization: domain.CapacityUtilizationDTO{Total: capacity},
	}, nil
}

func (s *DashboardService) buyer(ctx context.Context, user *domain.User, base domain.DashboardBase) (*domain.BuyerDashboard, error) {
	demands, err := s.demandRepo.ListByBuyer(ctx, user.ID, dashboardListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list demand listings: %w", err)
	}
	sourcing, err := s.sourcingRepo.ListByStatus(ctx, domain.SourcingStatusPublished, dashboardListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sourcing requests: %w", err)
	}

	var stats domain.BuyerQuickStats
	if stats.OpenRFQs, err = s.demandRepo.CountByBuyer(ctx, user.ID, domain.DemandStatusOpen); err != nil {
		return nil, fmt.Errorf("failed to count demand listings: %w", err)
	}
	if stats.ActiveOrders, err = s.demandRepo.CountByBuyer(ctx, user.ID, domain.DemandStatusInProgress); err != nil {
		return nil, fmt.Errorf("failed to count demand listings: %w", err)
	}
	if stats.CompletedOrders, err = s.demandRepo.CountByBuyer(ctx, user.ID, domain.DemandStatusClosed); err != nil {
		return nil, fmt.Errorf("failed to count demand listings: %w", err)
	}
	if stats.PendingQuotes, err = s.demandRepo.CountSubmittedQuotesForBuyer(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to count quotes: %w", err)
	}

	return &domain.BuyerDashboard{
		DashboardBase:        base,
		QuickStats:           stats,
		MyDemands:            mapper.ToDemandListingDTOs(demands, true),
		AvailableSourcing:    mapper.ToSourcingRequestDTOs(sourcing),
		RecommendedSuppliers: []domain.PartySummaryDTO{},
	}, nil
}

func (s *DashboardService) admin(ctx context.Context, base domain.DashboardBase) (*domain.AdminDashboard, error) {
	var stats domain.SystemStatsDTO
	var err error

	if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.ActiveUsers, err = s.userRepo.CountByStatus(ctx, domain.UserStatusActive); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.TotalSuppliers, err = s.userRepo.Count(ctx, domain.UserTypeSupplier); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.TotalManufacturers, err = s.userRepo.Count(ctx, domain.UserTypeManufacturer, domain.UserTypeOEM); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.TotalPrograms, err = s.programRepo.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to count programs: %w", err)
	}
	if stats.TotalDemands, err = s.demandRepo.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to count demand listings: %w", err)
	}

	recent, err := s.userRepo.ListRecent(ctx, dashboardListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	recentUsers := make([]domain.RecentUserDTO, len(recent))
	for i := range recent {
		recentUsers[i] = mapper.ToRecentUserDTO(&recent[i])
	}

	return &domain.AdminDashboard{
		DashboardBase: base,
		SystemStats:   stats,
		RecentUsers:   recentUsers,
		SystemAlerts:  []domain.SystemAlertDTO{},
	}, nil
}
