package repository

import (
	"context"

	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SourcingRequestRepository struct {
	db *gorm.DB
}

func NewSourcingRequestRepository(db *gorm.DB) *SourcingRequestRepository {
	return &SourcingRequestRepository{db: db}
}

func (r *SourcingRequestRepository) Create(ctx context.Context, req *domain.SourcingRequest) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(req).Error
}

// GetByIDForManufacturer only matches requests owned by the manufacturer
func (r *SourcingRequestRepository) GetByIDForManufacturer(ctx context.Context, id, manufacturerID uuid.UUID) (*domain.SourcingRequest, error) {
	var req domain.SourcingRequest
	err := r.db.WithContext(ctx).
		Where("id = ? AND manufacturer_id = ?", id, manufacturerID).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *SourcingRequestRepository) Update(ctx context.Context, req *domain.SourcingRequest) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(req).Error
}

// ListByManufacturer returns the manufacturer's requests, newest first
func (r *SourcingRequestRepository) ListByManufacturer(ctx context.Context, manufacturerID uuid.UUID, statuses []domain.SourcingStatus, limit int) ([]domain.SourcingRequest, error) {
	var reqs []domain.SourcingRequest
	query := r.db.WithContext(ctx).
		Preload("AssignedSupplier").
		Where("manufacturer_id = ?", manufacturerID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Order("created_at DESC").Find(&reqs).Error
	return reqs, err
}

// ListByStatus returns requests across all manufacturers with the issuing manufacturer loaded
func (r *SourcingRequestRepository) ListByStatus(ctx context.Context, status domain.SourcingStatus, limit int) ([]domain.SourcingRequest, error) {
	var reqs []domain.SourcingRequest
	query := r.db.WithContext(ctx).
		Preload("Manufacturer").
		Where("status = ?", status)
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Order("created_at DESC").Find(&reqs).Error
	return reqs, err
}

func (r *SourcingRequestRepository) CountByManufacturer(ctx context.Context, manufacturerID uuid.UUID, statuses ...domain.SourcingStatus) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.SourcingRequest{}).Where("manufacturer_id = ?", manufacturerID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *SourcingRequestRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.SourcingRequest{}).Count(&count).Error
	return count, err
}
