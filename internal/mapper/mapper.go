package mapper

import (
	"github.com/axo-networks/marketplace-api/internal/domain"
)

// ToUserDTO converts User to UserDTO, dropping secret fields
func ToUserDTO(user *domain.User) domain.UserDTO {
	return domain.UserDTO{
		ID:                    user.ID,
		Email:                 user.Email,
		Name:                  user.Name,
		Company:               user.Company,
		CompanyType:           user.CompanyType,
		Phone:                 user.Phone,
		Industry:              nonNilStrings(user.Industry),
		Certifications:        nonNilStrings(user.Certifications),
		ManufacturingCapacity: user.ManufacturingCapacity,
		Location:              user.Location,
		Website:               user.Website,
		UserType:              user.UserType,
		Roles:                 user.UserType.Roles(),
		ReliabilityScore:      user.ReliabilityScore,
		CompletedOrders:       user.CompletedOrders,
		PendingOrders:         user.PendingOrders,
		ResponseRate:          user.ResponseRate,
		Status:                user.Status,
		ProfileCompletion:     user.ProfileCompletion,
		ForcePasswordReset:    user.ForcePasswordReset,
		LastLogin:             user.LastLogin,
		CreatedAt:             user.CreatedAt,
		UpdatedAt:             user.UpdatedAt,
	}
}

// ToUserSummaryDTO converts User to the summary returned with tokens
func ToUserSummaryDTO(user *domain.User) domain.UserSummaryDTO {
	return domain.UserSummaryDTO{
		ID:                 user.ID,
		Email:              user.Email,
		Name:               user.Name,
		Company:            user.Company,
		UserType:           user.UserType,
		ForcePasswordReset: user.ForcePasswordReset,
	}
}

// ToPartySummaryDTO returns nil for a relation that was not loaded
func ToPartySummaryDTO(user *domain.User) *domain.PartySummaryDTO {
	if user == nil {
		return nil
	}
	return &domain.PartySummaryDTO{
		ID:      user.ID,
		Name:    user.Name,
		Company: user.Company,
	}
}

// ToProgramDTO converts Program to ProgramDTO
func ToProgramDTO(program *domain.Program) domain.ProgramDTO {
	milestones := []domain.Milestone(program.Milestones)
	if milestones == nil {
		milestones = []domain.Milestone{}
	}
	return domain.ProgramDTO{
		ID:                     program.ID,
		ProgramName:            program.ProgramName,
		ManufacturerID:         program.ManufacturerID,
		Manufacturer:           ToPartySummaryDTO(program.Manufacturer),
		SupplierID:             program.SupplierID,
		Supplier:               ToPartySummaryDTO(program.Supplier),
		CurrentMilestone:       program.CurrentMilestone,
		MilestoneHealthStatus:  program.MilestoneHealthStatus,
		StartDate:              program.StartDate,
		ExpectedCompletionDate: program.ExpectedCompletionDate,
		ActualCompletionDate:   program.ActualCompletionDate,
		Status:                 program.Status,
		Priority:               program.Priority,
		ComponentType:          program.ComponentType,
		Quantity:               program.Quantity,
		QualityTier:            program.QualityTier,
		Milestones:             milestones,
		Notes:                  program.Notes,
		CreatedAt:              program.CreatedAt,
		UpdatedAt:              program.UpdatedAt,
	}
}

func ToProgramDTOs(programs []domain.Program) []domain.ProgramDTO {
	dtos := make([]domain.ProgramDTO, len(programs))
	for i := range programs {
		dtos[i] = ToProgramDTO(&programs[i])
	}
	return dtos
}

// ToSourcingRequestDTO converts SourcingRequest to SourcingRequestDTO
func ToSourcingRequestDTO(req *domain.SourcingRequest) domain.SourcingRequestDTO {
	return domain.SourcingRequestDTO{
		ID:               req.ID,
		ComponentName:    req.ComponentName,
		ManufacturerID:   req.ManufacturerID,
		Manufacturer:     ToPartySummaryDTO(req.Manufacturer),
		Quantity:         req.Quantity,
		RequiredByDate:   req.RequiredByDate,
		QualityTier:      req.QualityTier,
		DesignFileURL:    req.DesignFileURL,
		AdditionalNotes:  req.AdditionalNotes,
		Specifications:   req.Specifications.Data(),
		MatchingStatus:   req.MatchingStatus,
		AssignedSupplier: req.AssignedSupplierID,
		Status:           req.Status,
		CreatedAt:        req.CreatedAt,
		UpdatedAt:        req.UpdatedAt,
	}
}

func ToSourcingRequestDTOs(reqs []domain.SourcingRequest) []domain.SourcingRequestDTO {
	dtos := make([]domain.SourcingRequestDTO, len(reqs))
	for i := range reqs {
		dtos[i] = ToSourcingRequestDTO(&reqs[i])
	}
	return dtos
}

// ToQuoteDTO converts DemandQuote to QuoteDTO
func ToQuoteDTO(quote *domain.DemandQuote) domain.QuoteDTO {
	return domain.QuoteDTO{
		ID:               quote.ID,
		SupplierID:       quote.SupplierID,
		Supplier:         ToPartySummaryDTO(quote.Supplier),
		QuoteAmount:      quote.QuoteAmount,
		ProposedTimeline: quote.ProposedTimeline,
		Notes:            quote.Notes,
		Status:           quote.Status,
		SubmittedAt:      quote.SubmittedAt,
	}
}

// ToDemandListingDTO converts DemandListing to DemandListingDTO.
// The invited set and the quotes are only exposed to the owning buyer.
func ToDemandListingDTO(listing *domain.DemandListing, forOwner bool) domain.DemandListingDTO {
	dto := domain.DemandListingDTO{
		ID:             listing.ID,
		ComponentName:  listing.ComponentName,
		ComponentType:  listing.ComponentType,
		Description:    listing.Description,
		BuyerID:        listing.BuyerID,
		Buyer:          ToPartySummaryDTO(listing.Buyer),
		Quantity:       listing.Quantity,
		Timeline:       listing.Timeline,
		RequiredByDate: listing.RequiredByDate,
		QualityTier:    listing.QualityTier,
		Specifications: listing.Specifications.Data(),
		DesignFileURL:  listing.DesignFileURL,
		BudgetRange:    listing.Budget,
		Status:         listing.Status,
		ActionStatus:   listing.ActionStatus,
		AwardedTo:      ToPartySummaryDTO(listing.AwardedTo),
		Visibility:     listing.Visibility,
		QuoteCount:     len(listing.Quotes),
		CreatedAt:      listing.CreatedAt,
		UpdatedAt:      listing.UpdatedAt,
	}
	if dto.AwardedTo == nil && listing.AwardedToID != nil {
		dto.AwardedTo = &domain.PartySummaryDTO{ID: *listing.AwardedToID}
	}

	if forOwner {
		dto.InvitedSuppliers = listing.InvitedSupplierIDs()
		dto.Quotes = make([]domain.QuoteDTO, len(listing.Quotes))
		for i := range listing.Quotes {
			dto.Quotes[i] = ToQuoteDTO(&listing.Quotes[i])
		}
	}
	return dto
}

func ToDemandListingDTOs(listings []domain.DemandListing, forOwner bool) []domain.DemandListingDTO {
	dtos := make([]domain.DemandListingDTO, len(listings))
	for i := range listings {
		dtos[i] = ToDemandListingDTO(&listings[i], forOwner)
	}
	return dtos
}

// ToDashboardUserDTO converts User to the dashboard header
func ToDashboardUserDTO(user *domain.User) domain.DashboardUserDTO {
	return domain.DashboardUserDTO{
		ID:                user.ID,
		Name:              user.Name,
		Company:           user.Company,
		UserType:          user.UserType,
		ProfileCompletion: user.ProfileCompletion,
		Status:            user.Status,
		LastLogin:         user.LastLogin,
	}
}

func ToRecentUserDTO(user *domain.User) domain.RecentUserDTO {
	return domain.RecentUserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		UserType:  user.UserType,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
	}
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
