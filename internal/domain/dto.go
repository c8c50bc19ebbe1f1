package domain

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// Auth
// ============================================================================

type RegisterRequest struct {
	UserType UserType `json:"userType" validate:"required,oneof=manufacturer supplier buyer oem admin both"`
	Company  string   `json:"company" validate:"required,max=200"`
	Name     string   `json:"name" validate:"required,max=200"`
	Email    string   `json:"email" validate:"required,email,max=255"`
	Phone    string   `json:"phone" validate:"max=50"`
	Industry string   `json:"industry" validate:"max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForceResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

type CheckUserRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UserSummaryDTO is returned alongside tokens
type UserSummaryDTO struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Company            string    `json:"company"`
	UserType           UserType  `json:"userType"`
	ForcePasswordReset bool      `json:"forcePasswordReset"`
}

type RegisterResponse struct {
	Success           bool           `json:"success"`
	Message           string         `json:"message"`
	User              UserSummaryDTO `json:"user"`
	TemporaryPassword string         `json:"temporaryPassword,omitempty"`
}

type TokenResponse struct {
	Success            bool           `json:"success"`
	Token              string         `json:"token"`
	User               UserSummaryDTO `json:"user"`
	ForcePasswordReset bool           `json:"forcePasswordReset"`
	Message            string         `json:"message,omitempty"`
}

type CheckUserResponse struct {
	Exists             bool     `json:"exists"`
	UserType           UserType `json:"userType,omitempty"`
	ForcePasswordReset *bool    `json:"forcePasswordReset,omitempty"`
}

// UserDTO is the full profile without secret fields
type UserDTO struct {
	ID                    uuid.UUID  `json:"id"`
	Email                 string     `json:"email"`
	Name                  string     `json:"name"`
	Company               string     `json:"company"`
	CompanyType           string     `json:"companyType,omitempty"`
	Phone                 string     `json:"phone,omitempty"`
	Industry              []string   `json:"industry"`
	Certifications        []string   `json:"certifications"`
	ManufacturingCapacity string     `json:"manufacturingCapacity,omitempty"`
	Location              string     `json:"location,omitempty"`
	Website               string     `json:"website,omitempty"`
	UserType              UserType   `json:"userType"`
	Roles                 []UserType `json:"roles"`
	ReliabilityScore      float64    `json:"reliabilityScore"`
	CompletedOrders       int        `json:"completedOrders"`
	PendingOrders         int        `json:"pendingOrders"`
	ResponseRate          float64    `json:"responseRate"`
	Status                UserStatus `json:"status"`
	ProfileCompletion     int        `json:"profileCompletion"`
	ForcePasswordReset    bool       `json:"forcePasswordReset"`
	LastLogin             *time.Time `json:"lastLogin,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

type UserResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message,omitempty"`
	User    UserDTO `json:"user"`
}

// UpdateProfileRequest is a partial update; nil fields are left unchanged
type UpdateProfileRequest struct {
	Name                  *string   `json:"name" validate:"omitempty,min=1,max=200"`
	Company               *string   `json:"company" validate:"omitempty,min=1,max=200"`
	Phone                 *string   `json:"phone" validate:"omitempty,max=50"`
	Industry              *[]string `json:"industry"`
	Certifications        *[]string `json:"certifications"`
	ManufacturingCapacity *string   `json:"manufacturingCapacity" validate:"omitempty,max=255"`
	Location              *string   `json:"location" validate:"omitempty,max=255"`
	Website               *string   `json:"website" validate:"omitempty,max=500"`
}

// PartySummaryDTO identifies the other side of a record
type PartySummaryDTO struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Company string    `json:"company"`
}

// ============================================================================
// Programs
// ============================================================================

type CreateProgramRequest struct {
	ProgramName            string       `json:"programName" validate:"required,max=255"`
	SupplierID             *uuid.UUID   `json:"supplierId"`
	CurrentMilestone       string       `json:"currentMilestone" validate:"max=255"`
	MilestoneHealthStatus  HealthStatus `json:"milestoneHealthStatus" validate:"omitempty,oneof='On Track' 'Attention' 'At Risk'"`
	StartDate              *time.Time   `json:"startDate"`
	ExpectedCompletionDate *time.Time   `json:"expectedCompletionDate"`
	Priority               Priority     `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	ComponentType          string       `json:"componentType" validate:"max=255"`
	Quantity               int          `json:"quantity" validate:"gte=0"`
	QualityTier            QualityTier  `json:"qualityTier" validate:"omitempty,oneof=Standard Premium Critical"`
	Milestones             []Milestone  `json:"milestones" validate:"omitempty,dive"`
	Notes                  string       `json:"notes"`
}

// UpdateProgramRequest is a partial update; the owner can never be changed
type UpdateProgramRequest struct {
	ProgramName            *string        `json:"programName" validate:"omitempty,min=1,max=255"`
	SupplierID             *uuid.UUID     `json:"supplierId"`
	CurrentMilestone       *string        `json:"currentMilestone" validate:"omitempty,max=255"`
	MilestoneHealthStatus  *HealthStatus  `json:"milestoneHealthStatus" validate:"omitempty,oneof='On Track' 'Attention' 'At Risk'"`
	StartDate              *time.Time     `json:"startDate"`
	ExpectedCompletionDate *time.Time     `json:"expectedCompletionDate"`
	ActualCompletionDate   *time.Time     `json:"actualCompletionDate"`
	Status                 *ProgramStatus `json:"status" validate:"omitempty,oneof=planned in-progress completed delayed cancelled"`
	Priority               *Priority      `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	ComponentType          *string        `json:"componentType" validate:"omitempty,max=255"`
	Quantity               *int           `json:"quantity" validate:"omitempty,gte=0"`
	QualityTier            *QualityTier   `json:"qualityTier" validate:"omitempty,oneof=Standard Premium Critical"`
	Milestones             *[]Milestone   `json:"milestones" validate:"omitempty,dive"`
	Notes                  *string        `json:"notes"`
}

type ProgramDTO struct {
	ID                     uuid.UUID        `json:"id"`
	ProgramName            string           `json:"programName"`
	ManufacturerID         uuid.UUID        `json:"manufacturerId"`
	Manufacturer           *PartySummaryDTO `json:"manufacturer,omitempty"`
	SupplierID             *uuid.UUID       `json:"supplierId,omitempty"`
	Supplier               *PartySummaryDTO `json:"supplier,omitempty"`
	CurrentMilestone       string           `json:"currentMilestone,omitempty"`
	MilestoneHealthStatus  HealthStatus     `json:"milestoneHealthStatus"`
	StartDate              *time.Time       `json:"startDate,omitempty"`
	ExpectedCompletionDate *time.Time       `json:"expectedCompletionDate,omitempty"`
	ActualCompletionDate   *time.Time       `json:"actualCompletionDate,omitempty"`
	Status                 ProgramStatus    `json:"status"`
	Priority               Priority         `json:"priority"`
	ComponentType          string           `json:"componentType,omitempty"`
	Quantity               int              `json:"quantity"`
	QualityTier            QualityTier      `json:"qualityTier,omitempty"`
	Milestones             []Milestone      `json:"milestones"`
	Notes                  string           `json:"notes,omitempty"`
	CreatedAt              time.Time        `json:"createdAt"`
	UpdatedAt              time.Time        `json:"updatedAt"`
}

// ============================================================================
// Sourcing requests
// ============================================================================

type CreateSourcingRequestRequest struct {
	ComponentName   string                  `json:"componentName" validate:"required,max=255"`
	Quantity        int                     `json:"quantity" validate:"required,gt=0"`
	RequiredByDate  *time.Time              `json:"requiredByDate"`
	QualityTier     QualityTier             `json:"qualityTier" validate:"omitempty,oneof=Standard Premium Critical"`
	DesignFileURL   string                  `json:"designFileUrl" validate:"max=1000"`
	AdditionalNotes string                  `json:"additionalNotes"`
	Specifications  *SourcingSpecifications `json:"specifications"`
}

type UpdateSourcingRequestRequest struct {
	ComponentName      *string                 `json:"componentName" validate:"omitempty,min=1,max=255"`
	Quantity           *int                    `json:"quantity" validate:"omitempty,gt=0"`
	RequiredByDate     *time.Time              `json:"requiredByDate"`
	QualityTier        *QualityTier            `json:"qualityTier" validate:"omitempty,oneof=Standard Premium Critical"`
	DesignFileURL      *string                 `json:"designFileUrl" validate:"omitempty,max=1000"`
	AdditionalNotes    *string                 `json:"additionalNotes"`
	Specifications     *SourcingSpecifications `json:"specifications"`
	MatchingStatus     *MatchingStatus         `json:"matchingStatus" validate:"omitempty,oneof=Pending Matched 'In Progress' Completed"`
	AssignedSupplierID *uuid.UUID              `json:"assignedSupplier"`
	Status             *SourcingStatus         `json:"status" validate:"omitempty,oneof=draft published closed"`
}

type SourcingRequestDTO struct {
	ID               uuid.UUID              `json:"id"`
	ComponentName    string                 `json:"componentName"`
	ManufacturerID   uuid.UUID              `json:"manufacturerId"`
	Manufacturer     *PartySummaryDTO       `json:"manufacturer,omitempty"`
	Quantity         int                    `json:"quantity"`
	RequiredByDate   *time.Time             `json:"requiredByDate,omitempty"`
	QualityTier      QualityTier            `json:"qualityTier,omitempty"`
	DesignFileURL    string                 `json:"designFileUrl,omitempty"`
	AdditionalNotes  string                 `json:"additionalNotes,omitempty"`
	Specifications   SourcingSpecifications `json:"specifications"`
	MatchingStatus   MatchingStatus         `json:"matchingStatus"`
	AssignedSupplier *uuid.UUID             `json:"assignedSupplier,omitempty"`
	Status           SourcingStatus         `json:"status"`
	CreatedAt        time.Time              `json:"createdAt"`
	UpdatedAt        time.Time              `json:"updatedAt"`
}

// ============================================================================
// Demand listings
// ============================================================================

type CreateDemandListingRequest struct {
	ComponentName    string                `json:"componentName" validate:"required,max=255"`
	ComponentType    string                `json:"componentType" validate:"max=255"`
	Description      string                `json:"description"`
	Quantity         int                   `json:"quantity" validate:"required,gt=0"`
	Timeline         string                `json:"timeline" validate:"max=255"`
	RequiredByDate   *time.Time            `json:"requiredByDate"`
	QualityTier      QualityTier           `json:"qualityTier" validate:"omitempty,oneof=Standard Premium Critical"`
	Specifications   *DemandSpecifications `json:"specifications"`
	DesignFileURL    string                `json:"designFileUrl" validate:"max=1000"`
	BudgetRange      *BudgetRange          `json:"budgetRange"`
	Visibility       Visibility            `json:"visibility" validate:"omitempty,oneof=public private invite-only"`
	InvitedSuppliers []uuid.UUID           `json:"invitedSuppliers"`
}

type UpdateDemandListingRequest struct {
	ComponentName    *string               `json:"componentName" validate:"omitempty,min=1,max=255"`
	ComponentType    *string               `json:"componentType" validate:"omitempty,max=255"`
	Description      *string               `json:"description"`
	Quantity         *int                  `json:"quantity" validate:"omitempty,gt=0"`
	Timeline         *string               `json:"timeline" validate:"omitempty,max=255"`
	RequiredByDate   *time.Time            `json:"requiredByDate"`
	QualityTier      *QualityTier          `json:"qualityTier" validate:"omitempty,oneof=Standard Premium Critical"`
	Specifications   *DemandSpecifications `json:"specifications"`
	DesignFileURL    *string               `json:"designFileUrl" validate:"omitempty,max=1000"`
	BudgetRange      *BudgetRange          `json:"budgetRange"`
	Status           *DemandStatus         `json:"status" validate:"omitempty,oneof=open in-progress closed cancelled"`
	Visibility       *Visibility           `json:"visibility" validate:"omitempty,oneof=public private invite-only"`
	InvitedSuppliers *[]uuid.UUID          `json:"invitedSuppliers"`
}

// DemandActionRequest carries the buyer's decision on a listing
type DemandActionRequest struct {
	Action     string     `json:"action" validate:"required"`
	SupplierID *uuid.UUID `json:"supplierId"`
}

type SubmitQuoteRequest struct {
	QuoteAmount      float64 `json:"quoteAmount" validate:"required,gt=0"`
	ProposedTimeline string  `json:"proposedTimeline" validate:"max=255"`
	Notes            string  `json:"notes"`
}

type QuoteDTO struct {
	ID               uuid.UUID        `json:"id"`
	SupplierID       uuid.UUID        `json:"supplierId"`
	Supplier         *PartySummaryDTO `json:"supplier,omitempty"`
	QuoteAmount      float64          `json:"quoteAmount"`
	ProposedTimeline string           `json:"proposedTimeline,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	Status           QuoteStatus      `json:"status"`
	SubmittedAt      time.Time        `json:"submittedAt"`
}

// DemandListingDTO is the listing as shown to its owner or to a discovering supplier.
// InvitedSuppliers and Quotes are only filled for the owner.
type DemandListingDTO struct {
	ID               uuid.UUID            `json:"id"`
	ComponentName    string               `json:"componentName"`
	ComponentType    string               `json:"componentType,omitempty"`
	Description      string               `json:"description,omitempty"`
	BuyerID          uuid.UUID            `json:"buyerId"`
	Buyer            *PartySummaryDTO     `json:"buyer,omitempty"`
	Quantity         int                  `json:"quantity"`
	Timeline         string               `json:"timeline,omitempty"`
	RequiredByDate   *time.Time           `json:"requiredByDate,omitempty"`
	QualityTier      QualityTier          `json:"qualityTier,omitempty"`
	Specifications   DemandSpecifications `json:"specifications"`
	DesignFileURL    string               `json:"designFileUrl,omitempty"`
	BudgetRange      BudgetRange          `json:"budgetRange"`
	Status           DemandStatus         `json:"status"`
	ActionStatus     ActionStatus         `json:"actionStatus"`
	AwardedTo        *PartySummaryDTO     `json:"awardedTo,omitempty"`
	Visibility       Visibility           `json:"visibility"`
	InvitedSuppliers []uuid.UUID          `json:"invitedSuppliers,omitempty"`
	Quotes           []QuoteDTO           `json:"quotes,omitempty"`
	QuoteCount       int                  `json:"quoteCount"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}

// ============================================================================
// Dashboard
// ============================================================================

// DashboardPayload is implemented by every role-shaped dashboard
type DashboardPayload interface {
	Base() *DashboardBase
}

type DashboardUserDTO struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Company           string     `json:"company"`
	UserType          UserType   `json:"userType"`
	ProfileCompletion int        `json:"profileCompletion"`
	Status            UserStatus `json:"status"`
	LastLogin         *time.Time `json:"lastLogin,omitempty"`
}

type ActivityDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

type NotificationDTO struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// WelcomeNotification is attached to every dashboard
func WelcomeNotification(now time.Time) NotificationDTO {
	return NotificationDTO{
		ID:        1,
		Title:     "Welcome to AXO Networks",
		Message:   "Complete your profile to get started",
		Type:      "info",
		Read:      false,
		CreatedAt: now,
	}
}

// DashboardBase is the shape every role receives
type DashboardBase struct {
	User             DashboardUserDTO  `json:"user"`
	QuickStats       map[string]int64  `json:"quickStats"`
	RecentActivities []ActivityDTO     `json:"recentActivities"`
	Notifications    []NotificationDTO `json:"notifications"`
}

// Base returns the shared part of the dashboard
func (b *DashboardBase) Base() *DashboardBase {
	return b
}

type ManufacturerQuickStats struct {
	ActivePrograms   int64   `json:"activePrograms"`
	OpenRequests     int64   `json:"openRequests"`
	AvailableDemand  int64   `json:"availableDemand"`
	TotalCapacity    string  `json:"totalCapacity"`
	UtilizedCapacity float64 `json:"utilizedCapacity"`
}

type ManufacturerDashboard struct {
	DashboardBase
	QuickStats       ManufacturerQuickStats `json:"quickStats"`
	Metrics          *ManufacturerMetrics   `json:"metrics"`
	Programs         []ProgramDTO           `json:"programs"`
	SourcingRequests []SourcingRequestDTO   `json:"sourcingRequests"`
	AvailableDemand  []DemandListingDTO     `json:"availableDemand"`
}

type SupplierQuickStats struct {
	ActiveOrders     int     `json:"activeOrders"`
	CompletedOrders  int     `json:"completedOrders"`
	ReliabilityScore float64 `json:"reliabilityScore"`
	ResponseRate     float64 `json:"responseRate"`
	PendingQuotes    int64   `json:"pendingQuotes"`
}

type CapacityUtilizationDTO struct {
	Total string `json:"total"`
}

type SupplierDashboard struct {
	DashboardBase
	QuickStats          SupplierQuickStats     `json:"quickStats"`
	Programs            []ProgramDTO           `json:"programs"`
	AvailableDemand     []DemandListingDTO     `json:"availableDemand"`
	CapacityUtilization CapacityUtilizationDTO `json:"capacityUtilization"`
}

type BuyerQuickStats struct {
	OpenRFQs        int64 `json:"openRFQs"`
	ActiveOrders    int64 `json:"activeOrders"`
	CompletedOrders int64 `json:"completedOrders"`
	PendingQuotes   int64 `json:"pendingQuotes"`
}

type BuyerDashboard struct {
	DashboardBase
	QuickStats           BuyerQuickStats      `json:"quickStats"`
	MyDemands            []DemandListingDTO   `json:"myDemands"`
	AvailableSourcing    []SourcingRequestDTO `json:"availableSourcing"`
	RecommendedSuppliers []PartySummaryDTO    `json:"recommendedSuppliers"`
}

type SystemStatsDTO struct {
	TotalUsers         int64 `json:"totalUsers"`
	ActiveUsers        int64 `json:"activeUsers"`
	TotalPrograms      int64 `json:"totalPrograms"`
	TotalDemands       int64 `json:"totalDemands"`
	TotalSuppliers     int64 `json:"totalSuppliers"`
	TotalManufacturers int64 `json:"totalManufacturers"`
}

type RecentUserDTO struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	UserType  UserType   `json:"userType"`
	Status    UserStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
}

type SystemAlertDTO struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type AdminDashboard struct {
	DashboardBase
	SystemStats  SystemStatsDTO   `json:"systemStats"`
	RecentUsers  []RecentUserDTO  `json:"recentUsers"`
	SystemAlerts []SystemAlertDTO `json:"systemAlerts"`
}

type DashboardResponse struct {
	Success bool             `json:"success"`
	Data    DashboardPayload `json:"data"`
}

// ============================================================================
// Files
// ============================================================================

type DesignFileDTO struct {
	StoragePath   string `json:"storagePath"`
	DesignFileURL string `json:"designFileUrl"`
	Filename      string `json:"filename"`
	ContentType   string `json:"contentType"`
	Size          int64  `json:"size"`
}

// ============================================================================
// Health
// ============================================================================

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
}

// ============================================================================
// Response envelopes
// ============================================================================

type ProgramResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	Program ProgramDTO `json:"program"`
}

type ProgramListResponse struct {
	Success  bool         `json:"success"`
	Programs []ProgramDTO `json:"programs"`
}

type SourcingRequestResponse struct {
	Success         bool               `json:"success"`
	Message         string             `json:"message,omitempty"`
	SourcingRequest SourcingRequestDTO `json:"sourcingRequest"`
}

type SourcingRequestListResponse struct {
	Success  bool                 `json:"success"`
	Requests []SourcingRequestDTO `json:"requests"`
}

type DemandListingResponse struct {
	Success       bool             `json:"success"`
	Message       string           `json:"message,omitempty"`
	DemandListing DemandListingDTO `json:"demandListing"`
}

type DemandListingListResponse struct {
	Success        bool               `json:"success"`
	DemandListings []DemandListingDTO `json:"demandListings"`
}

// AvailableDemandResponse lists listings under the discovery rule
type AvailableDemandResponse struct {
	Success bool               `json:"success"`
	Demands []DemandListingDTO `json:"demands"`
}

type DemandActionResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Demand  DemandListingDTO `json:"demand"`
}

type SupplierDemandResponse struct {
	Success bool             `json:"success"`
	Demand  DemandListingDTO `json:"demand"`
}

type QuoteResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Quote   QuoteDTO `json:"quote"`
}

type MetricsResponse struct {
	Success bool                 `json:"success"`
	Metrics *ManufacturerMetrics `json:"metrics"`
}

type DesignFileResponse struct {
	Success bool `json:"success"`
	DesignFileDTO
}

// DatabaseHealthResponse reports connection pool statistics for readiness probes
type DatabaseHealthResponse struct {
	Status             string `json:"status"`
	Error              string `json:"error,omitempty"`
	MaxOpenConnections int    `json:"maxOpenConnections"`
	OpenConnections    int    `json:"openConnections"`
	InUse              int    `json:"inUse"`
	Idle               int    `json:"idle"`
	WaitCount          int64  `json:"waitCount"`
	WaitDurationMs     int64  `json:"waitDurationMs"`
}
