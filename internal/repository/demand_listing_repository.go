package repository

import (
	"context"

	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DemandListingRepository struct {
	db *gorm.DB
}

func NewDemandListingRepository(db *gorm.DB) *DemandListingRepository {
	return &DemandListingRepository{db: db}
}

// Create inserts the listing together with its invitations
func (r *DemandListingRepository) Create(ctx context.Context, listing *domain.DemandListing) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(listing).Error; err != nil {
			return err
		}
		invitations := buildInvitations(listing.ID, listing.InvitedSupplierIDs())
		if len(invitations) > 0 {
			if err := tx.Create(&invitations).Error; err != nil {
				return err
			}
		}
		listing.Invitations = invitations
		return nil
	})
}

// GetByID loads the listing with its invited set
func (r *DemandListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.DemandListing, error) {
	var listing domain.DemandListing
	err := r.db.WithContext(ctx).
		Preload("Invitations").
		First(&listing, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// GetByIDForBuyer only matches listings owned by the buyer
func (r *DemandListingRepository) GetByIDForBuyer(ctx context.Context, id, buyerID uuid.UUID) (*domain.DemandListing, error) {
	var listing domain.DemandListing
	err := r.db.WithContext(ctx).
		Preload("Invitations").
		Where("id = ? AND buyer_id = ?", id, buyerID).
		First(&listing).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// Update saves the listing. When invited is non-nil the invited set is replaced in the same transaction.
func (r *DemandListingRepository) Update(ctx context.Context, listing *domain.DemandListing, invited *[]uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(listing).Error; err != nil {
			return err
		}
		if invited == nil {
			return nil
		}
		if err := tx.Where("demand_listing_id = ?", listing.ID).Delete(&domain.DemandInvitation{}).Error; err != nil {
			return err
		}
		invitations := buildInvitations(listing.ID, *invited)
		if len(invitations) > 0 {
			if err := tx.Create(&invitations).Error; err != nil {
				return err
			}
		}
		listing.Invitations = invitations
		return nil
	})
}

// ListByBuyer returns the buyer's listings with invitations and quotes, newest first
func (r *DemandListingRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit int) ([]domain.DemandListing, error) {
	var listings []domain.DemandListing
	query := r.db.WithContext(ctx).
		Preload("Invitations").
		Preload("Quotes", func(db *gorm.DB) *gorm.DB {
			return db.Order("submitted_at ASC")
		}).
		Preload("Quotes.Supplier").
		Preload("AwardedTo").
		Where("buyer_id = ?", buyerID)
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Order("created_at DESC").Find(&listings).Error
	return listings, err
}

// ListVisibleToSupplier applies the discovery rule: open listings that are
// public, or invite-only with the supplier in the invited set.
func (r *DemandListingRepository) ListVisibleToSupplier(ctx context.Context, supplierID uuid.UUID, limit int) ([]domain.DemandListing, error) {
	var listings []domain.DemandListing
	invited := r.db.Model(&domain.DemandInvitation{}).
		Select("demand_listing_id").
		Where("supplier_id = ?", supplierID)

	query := r.db.WithContext(ctx).
		Preload("Buyer").
		Where("status = ?", domain.DemandStatusOpen).
		Where(r.db.Where("visibility = ?", domain.VisibilityPublic).
			Or("visibility = ? AND id IN (?)", domain.VisibilityInviteOnly, invited))
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Order("created_at DESC").Find(&listings).Error
	return listings, err
}

// ListOpenByVisibility returns open listings of the given visibilities without invitation filtering
func (r *DemandListingRepository) ListOpenByVisibility(ctx context.Context, visibilities []domain.Visibility, limit int) ([]domain.DemandListing, error) {
	var listings []domain.DemandListing
	query := r.db.WithContext(ctx).
		Preload("Buyer").
		Where("status = ? AND visibility IN ?", domain.DemandStatusOpen, visibilities)
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Order("created_at DESC").Find(&listings).Error
	return listings, err
}

func (r *DemandListingRepository) CountByBuyer(ctx context.Context, buyerID uuid.UUID, statuses ...domain.DemandStatus) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.DemandListing{}).Where("buyer_id = ?", buyerID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *DemandListingRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.DemandListing{}).Count(&count).Error
	return count, err
}

// AddQuote appends a quote to a listing
func (r *DemandListingRepository) AddQuote(ctx context.Context, quote *domain.DemandQuote) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(quote).Error
}

func (r *DemandListingRepository) ListQuotes(ctx context.Context, listingID uuid.UUID) ([]domain.DemandQuote, error) {
	var quotes []domain.DemandQuote
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Where("demand_listing_id = ?", listingID).
		Order("submitted_at ASC").
		Find(&quotes).Error
	return quotes, err
}

// CountSubmittedQuotesForBuyer counts submitted quotes across the buyer's open listings
func (r *DemandListingRepository) CountSubmittedQuotesForBuyer(ctx context.Context, buyerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.DemandQuote{}).
		Joins("JOIN demand_listings ON demand_listings.id = demand_quotes.demand_listing_id").
		Where("demand_listings.buyer_id = ? AND demand_listings.status = ? AND demand_quotes.status = ?",
			buyerID, domain.DemandStatusOpen, domain.QuoteStatusSubmitted).
		Count(&count).Error
	return count, err
}

// CountSubmittedQuotesBySupplier counts the supplier's quotes still waiting on a buyer decision
func (r *DemandListingRepository) CountSubmittedQuotesBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.DemandQuote{}).
		Joins("JOIN demand_listings ON demand_listings.id = demand_quotes.demand_listing_id").
		Where("demand_quotes.supplier_id = ? AND demand_listings.status = ? AND demand_quotes.status = ?",
			supplierID, domain.DemandStatusOpen, domain.QuoteStatusSubmitted).
		Count(&count).Error
	return count, err
}

func buildInvitations(listingID uuid.UUID, supplierIDs []uuid.UUID) []domain.DemandInvitation {
	seen := make(map[uuid.UUID]struct{}, len(supplierIDs))
	invitations := make([]domain.DemandInvitation, 0, len(supplierIDs))
	for _, id := range supplierIDs {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		invitations = append(invitations, domain.DemandInvitation{
			DemandListingID: listingID,
			SupplierID:      id,
		})
	}
	return invitations
}
