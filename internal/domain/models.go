package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BaseModel holds the id and timestamps shared by every table.
// Ids are generated in Go so the schema works the same on PostgreSQL and SQLite.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// BeforeCreate assigns a new id when none is set
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// UserType is the single stored role of an account
type UserType string

const (
	UserTypeManufacturer UserType = "manufacturer"
	UserTypeSupplier     UserType = "supplier"
	UserTypeBuyer        UserType = "buyer"
	UserTypeOEM          UserType = "oem"
	UserTypeAdmin        UserType = "admin"
	// UserTypeBoth is a buyer that also sells as a supplier
	UserTypeBoth UserType = "both"
)

// IsValid reports whether t is one of the known user types
func (t UserType) IsValid() bool {
	switch t {
	case UserTypeManufacturer, UserTypeSupplier, UserTypeBuyer, UserTypeOEM, UserTypeAdmin, UserTypeBoth:
		return true
	}
	return false
}

// Roles returns the set of marketplace roles the user type stands for.
// It is derived on read and never stored.
func (t UserType) Roles() []UserType {
	switch t {
	case UserTypeBoth:
		return []UserType{UserTypeBuyer, UserTypeSupplier}
	case "":
		return []UserType{}
	default:
		return []UserType{t}
	}
}

// UserStatus represents the lifecycle state of an account
type UserStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

// User is a marketplace account. Password and TempPasswordHash only ever hold bcrypt hashes.
type User struct {
	BaseModel
	Email                 string                      `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Password              string                      `gorm:"type:varchar(255);not null" json:"-"`
	TempPasswordHash      *string                     `gorm:"type:varchar(255)" json:"-"`
	ForcePasswordReset    bool                        `gorm:"not null;default:false" json:"forcePasswordReset"`
	Name                  string                      `gorm:"type:varchar(200);not null" json:"name"`
	Company               string                      `gorm:"type:varchar(200);not null" json:"company"`
	CompanyType           string                      `gorm:"type:varchar(50)" json:"companyType,omitempty"`
	Phone                 string                      `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Industry              datatypes.JSONSlice[string] `json:"industry"`
	Certifications        datatypes.JSONSlice[string] `json:"certifications"`
	ManufacturingCapacity string                      `gorm:"type:varchar(255)" json:"manufacturingCapacity,omitempty"`
	Location              string                      `gorm:"type:varchar(255)" json:"location,omitempty"`
	Website               string                      `gorm:"type:varchar(500)" json:"website,omitempty"`
	UserType              UserType                    `gorm:"type:varchar(20);not null;index" json:"userType"`
	ReliabilityScore      float64                     `gorm:"not null" json:"reliabilityScore"`
	CompletedOrders       int                         `gorm:"not null;default:0" json:"completedOrders"`
	PendingOrders         int                         `gorm:"not null;default:0" json:"pendingOrders"`
	ResponseRate          float64                     `gorm:"not null;default:0" json:"responseRate"`
	Status                UserStatus                  `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ProfileCompletion     int                         `gorm:"not null" json:"profileCompletion"`
	LastLogin             *time.Time                  `json:"lastLogin,omitempty"`
}

// ProgramStatus is the lifecycle of a manufacturing engagement
type ProgramStatus string

const (
	ProgramStatusPlanned    ProgramStatus = "planned"
	ProgramStatusInProgress ProgramStatus = "in-progress"
	ProgramStatusCompleted  ProgramStatus = "completed"
	ProgramStatusDelayed    ProgramStatus = "delayed"
	ProgramStatusCancelled  ProgramStatus = "cancelled"
)

// HealthStatus is the three-tier qualitative health tag
type HealthStatus string

const (
	HealthOnTrack   HealthStatus = "On Track"
	HealthAttention HealthStatus = "Attention"
	HealthAtRisk    HealthStatus = "At Risk"
)

// Priority of a program
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// QualityTier is shared by programs, sourcing requests and demand listings
type QualityTier string

const (
	QualityTierStandard QualityTier = "Standard"
	QualityTierPremium  QualityTier = "Premium"
	QualityTierCritical QualityTier = "Critical"
)

// MilestoneStatus is the state of a single program milestone
type MilestoneStatus string

const (
	MilestoneNotStarted MilestoneStatus = "not-started"
	MilestoneInProgress MilestoneStatus = "in-progress"
	MilestoneCompleted  MilestoneStatus = "completed"
	MilestoneDelayed    MilestoneStatus = "delayed"
)

// Milestone is one entry of a program's ordered milestone plan
type Milestone struct {
	Name          string          `json:"name" validate:"required,max=255"`
	DueDate       *time.Time      `json:"dueDate,omitempty"`
	CompletedDate *time.Time      `json:"completedDate,omitempty"`
	Status        MilestoneStatus `json:"status" validate:"omitempty,oneof=not-started in-progress completed delayed"`
	Description   string          `json:"description,omitempty"`
}

// Program is a manufacturing engagement owned by a manufacturer
type Program struct {
	BaseModel
	ProgramName            string                         `gorm:"type:varchar(255);not null" json:"programName"`
	ManufacturerID         uuid.UUID                      `gorm:"type:uuid;not null;index" json:"manufacturerId"`
	Manufacturer           *User                          `gorm:"foreignKey:ManufacturerID" json:"-"`
	SupplierID             *uuid.UUID                     `gorm:"type:uuid;index" json:"supplierId,omitempty"`
	Supplier               *User                          `gorm:"foreignKey:SupplierID" json:"-"`
	CurrentMilestone       string                         `gorm:"type:varchar(255)" json:"currentMilestone,omitempty"`
	MilestoneHealthStatus  HealthStatus                   `gorm:"type:varchar(20);not null;default:'On Track'" json:"milestoneHealthStatus"`
	StartDate              *time.Time                     `json:"startDate,omitempty"`
	ExpectedCompletionDate *time.Time                     `json:"expectedCompletionDate,omitempty"`
	ActualCompletionDate   *time.Time                     `json:"actualCompletionDate,omitempty"`
	Status                 ProgramStatus                  `gorm:"type:varchar(20);not null;default:'planned';index" json:"status"`
	Priority               Priority                       `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	ComponentType          string                         `gorm:"type:varchar(255)" json:"componentType,omitempty"`
	Quantity               int                            `gorm:"not null;default:0" json:"quantity"`
	QualityTier            QualityTier                    `gorm:"type:varchar(20)" json:"qualityTier,omitempty"`
	Milestones             datatypes.JSONSlice[Milestone] `json:"milestones"`
	Notes                  string                         `gorm:"type:text" json:"notes,omitempty"`
}

// SourcingStatus is the publication state of a sourcing request
type SourcingStatus string

const (
	SourcingStatusDraft     SourcingStatus = "draft"
	SourcingStatusPublished SourcingStatus = "published"
	SourcingStatusClosed    SourcingStatus = "closed"
)

// MatchingStatus tracks supplier assignment for a sourcing request
type MatchingStatus string

const (
	MatchingPending    MatchingStatus = "Pending"
	MatchingMatched    MatchingStatus = "Matched"
	MatchingInProgress MatchingStatus = "In Progress"
	MatchingCompleted  MatchingStatus = "Completed"
)

// SourcingSpecifications describes what a sourcing request needs
type SourcingSpecifications struct {
	MaterialRequirements []string `json:"materialRequirements,omitempty"`
	Tolerance            string   `json:"tolerance,omitempty"`
	SurfaceFinish        string   `json:"surfaceFinish,omitempty"`
	TestingRequirements  []string `json:"testingRequirements,omitempty"`
}

// SourcingRequest is a manufacturer's request for supplier capacity
type SourcingRequest struct {
	BaseModel
	ComponentName      string                                     `gorm:"type:varchar(255);not null" json:"componentName"`
	ManufacturerID     uuid.UUID                                  `gorm:"type:uuid;not null;index" json:"manufacturerId"`
	Manufacturer       *User                                      `gorm:"foreignKey:ManufacturerID" json:"-"`
	Quantity           int                                        `gorm:"not null" json:"quantity"`
	RequiredByDate     *time.Time                                 `json:"requiredByDate,omitempty"`
	QualityTier        QualityTier                                `gorm:"type:varchar(20)" json:"qualityTier,omitempty"`
	DesignFileURL      string                                     `gorm:"type:varchar(1000)" json:"designFileUrl,omitempty"`
	AdditionalNotes    string                                     `gorm:"type:text" json:"additionalNotes,omitempty"`
	Specifications     datatypes.JSONType[SourcingSpecifications] `json:"specifications"`
	MatchingStatus     MatchingStatus                             `gorm:"type:varchar(20);not null;default:'Pending'" json:"matchingStatus"`
	AssignedSupplierID *uuid.UUID                                 `gorm:"type:uuid" json:"assignedSupplier,omitempty"`
	AssignedSupplier   *User                                      `gorm:"foreignKey:AssignedSupplierID" json:"-"`
	Status             SourcingStatus                             `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
}

// DemandStatus is the fulfilment state of a demand listing
type DemandStatus string

const (
	DemandStatusOpen       DemandStatus = "open"
	DemandStatusInProgress DemandStatus = "in-progress"
	DemandStatusClosed     DemandStatus = "closed"
	DemandStatusCancelled  DemandStatus = "cancelled"
)

// ActionStatus is the buyer's decision on a demand listing
type ActionStatus string

const (
	ActionPending  ActionStatus = "Pending"
	ActionAccepted ActionStatus = "Accepted"
	ActionDeclined ActionStatus = "Declined"
	ActionExpired  ActionStatus = "Expired"
)

// Visibility gates which suppliers can discover a demand listing
type Visibility string

const (
	VisibilityPublic     Visibility = "public"
	VisibilityPrivate    Visibility = "private"
	VisibilityInviteOnly Visibility = "invite-only"
)

// QuoteStatus of a supplier quote
type QuoteStatus string

const (
	QuoteStatusSubmitted QuoteStatus = "submitted"
)

// DemandSpecifications describes the requested component
type DemandSpecifications struct {
	Material       string   `json:"material,omitempty"`
	Dimensions     string   `json:"dimensions,omitempty"`
	Tolerance      string   `json:"tolerance,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
}

// BudgetRange is the buyer's price expectation
type BudgetRange struct {
	Min      *float64 `gorm:"column:min" json:"min,omitempty" validate:"omitempty,gte=0"`
	Max      *float64 `gorm:"column:max" json:"max,omitempty" validate:"omitempty,gte=0"`
	Currency string   `gorm:"column:currency;type:varchar(3);not null;default:'USD'" json:"currency" validate:"omitempty,len=3"`
}

// DemandListing is a buyer's request for a component, open to supplier quotes
type DemandListing struct {
	BaseModel
	ComponentName  string                                   `gorm:"type:varchar(255);not null" json:"componentName"`
	ComponentType  string                                   `gorm:"type:varchar(255)" json:"componentType,omitempty"`
	Description    string                                   `gorm:"type:text" json:"description,omitempty"`
	BuyerID        uuid.UUID                                `gorm:"type:uuid;not null;index" json:"buyerId"`
	Buyer          *User                                    `gorm:"foreignKey:BuyerID" json:"-"`
	Quantity       int                                      `gorm:"not null" json:"quantity"`
	Timeline       string                                   `gorm:"type:varchar(255)" json:"timeline,omitempty"`
	RequiredByDate *time.Time                               `json:"requiredByDate,omitempty"`
	QualityTier    QualityTier                              `gorm:"type:varchar(20)" json:"qualityTier,omitempty"`
	Specifications datatypes.JSONType[DemandSpecifications] `json:"specifications"`
	DesignFileURL  string                                   `gorm:"type:varchar(1000)" json:"designFileUrl,omitempty"`
	Budget         BudgetRange                              `gorm:"embedded;embeddedPrefix:budget_" json:"budgetRange"`
	Status         DemandStatus                             `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	ActionStatus   ActionStatus                             `gorm:"type:varchar(20);not null;default:'Pending'" json:"actionStatus"`
	AwardedToID    *uuid.UUID                               `gorm:"type:uuid" json:"awardedTo,omitempty"`
	AwardedTo      *User                                    `gorm:"foreignKey:AwardedToID" json:"-"`
	Visibility     Visibility                               `gorm:"type:varchar(20);not null;default:'public';index" json:"visibility"`
	Invitations    []DemandInvitation                       `gorm:"foreignKey:DemandListingID" json:"-"`
	Quotes         []DemandQuote                            `gorm:"foreignKey:DemandListingID" json:"-"`
}

// InvitedSupplierIDs returns the ids of the invited suppliers
func (d *DemandListing) InvitedSupplierIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(d.Invitations))
	for _, inv := range d.Invitations {
		ids = append(ids, inv.SupplierID)
	}
	return ids
}

// IsInvited reports whether the supplier is part of the invited set
func (d *DemandListing) IsInvited(supplierID uuid.UUID) bool {
	for _, inv := range d.Invitations {
		if inv.SupplierID == supplierID {
			return true
		}
	}
	return false
}

// VisibleTo applies the supplier discovery rule to a single listing
func (d *DemandListing) VisibleTo(supplierID uuid.UUID) bool {
	if d.Status != DemandStatusOpen {
		return false
	}
	switch d.Visibility {
	case VisibilityPublic:
		return true
	case VisibilityInviteOnly:
		return d.IsInvited(supplierID)
	default:
		return false
	}
}

// DemandInvitation puts a supplier in the invited set of an invite-only listing
type DemandInvitation struct {
	DemandListingID uuid.UUID `gorm:"type:uuid;primaryKey"`
	SupplierID      uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt       time.Time `gorm:"not null"`
}

// TableName overrides the default table name
func (DemandInvitation) TableName() string {
	return "demand_listing_invitations"
}

// DemandQuote is a supplier's offer on a demand listing. Quotes are append-only.
type DemandQuote struct {
	BaseModel
	DemandListingID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"demandListingId"`
	SupplierID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"supplierId"`
	Supplier         *User       `gorm:"foreignKey:SupplierID" json:"-"`
	QuoteAmount      float64     `gorm:"not null" json:"quoteAmount"`
	ProposedTimeline string      `gorm:"type:varchar(255)" json:"proposedTimeline,omitempty"`
	Notes            string      `gorm:"type:text" json:"notes,omitempty"`
	Status           QuoteStatus `gorm:"type:varchar(20);not null;default:'submitted'" json:"status"`
	SubmittedAt      time.Time   `gorm:"not null" json:"submittedAt"`
}

// ManufacturerMetrics is the rolled-up performance snapshot of one manufacturer
type ManufacturerMetrics struct {
	BaseModel
	ManufacturerID            uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex" json:"manufacturerId"`
	ActiveProgramsCount       int          `gorm:"not null;default:0" json:"activeProgramsCount"`
	InProgressProgramsCount   int          `gorm:"not null;default:0" json:"inProgressProgramsCount"`
	CompletedProgramsCount    int          `gorm:"not null;default:0" json:"completedProgramsCount"`
	AtRiskProgramsCount       int          `gorm:"not null;default:0" json:"atRiskProgramsCount"`
	ExecutionHealthScore      int          `gorm:"not null" json:"executionHealthScore"`
	TimelineAdherenceStatus   HealthStatus `gorm:"type:varchar(20);not null;default:'On Track'" json:"timelineAdherenceStatus"`
	SupplierReliabilityStatus HealthStatus `gorm:"type:varchar(20);not null;default:'On Track'" json:"supplierReliabilityStatus"`
	QualityConsistencyStatus  HealthStatus `gorm:"type:varchar(20);not null;default:'On Track'" json:"qualityConsistencyStatus"`
	ResponseDisciplineStatus  HealthStatus `gorm:"type:varchar(20);not null;default:'On Track'" json:"responseDisciplineStatus"`
	PeriodStart               *time.Time   `json:"periodStart,omitempty"`
	PeriodEnd                 *time.Time   `json:"periodEnd,omitempty"`
	TotalCapacityUtilization  float64      `gorm:"not null;default:0" json:"totalCapacityUtilization"`
	AverageLeadTime           float64      `gorm:"not null;default:0" json:"averageLeadTime"`
	QualityPassRate           float64      `gorm:"not null;default:0" json:"qualityPassRate"`
	CalculatedAt              time.Time    `gorm:"not null" json:"calculatedAt"`
}

// TableName overrides the default table name
func (ManufacturerMetrics) TableName() string {
	return "manufacturer_metrics"
}

// FallbackMetrics is shown on the dashboard before the first recompute finished
func FallbackMetrics(manufacturerID uuid.UUID) *ManufacturerMetrics {
	return &ManufacturerMetrics{
		ManufacturerID:            manufacturerID,
		ExecutionHealthScore:      85,
		TimelineAdherenceStatus:   HealthOnTrack,
		SupplierReliabilityStatus: HealthOnTrack,
		QualityConsistencyStatus:  HealthOnTrack,
		ResponseDisciplineStatus:  HealthOnTrack,
	}
}
