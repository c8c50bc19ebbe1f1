package repository

import (
	"context"

	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgramRepository struct {
	db *gorm.DB
}

func NewProgramRepository(db *gorm.DB) *ProgramRepository {
	return &ProgramRepository{db: db}
}

func (r *ProgramRepository) Create(ctx context.Context, program *domain.Program) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(program).Error
}

func (r *ProgramRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Program, error) {
	var program domain.Program
	err := r.db.WithContext(ctx).
		Preload("Manufacturer").
		Preload("Supplier").
		First(&program, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &program, nil
}

// GetByIDForManufacturer only matches programs owned by the manufacturer.
// A foreign program and a missing one both yield gorm.ErrRecordNotFound.
func (r *ProgramRepository) GetByIDForManufacturer(ctx context.Context, id, manufacturerID uuid.UUID) (*domain.Program, error) {
	var program domain.Program
	err := r.db.WithContext(ctx).
		Where("id = ? AND manufacturer_id = ?", id, manufacturerID).
		First(&program).Error
	if err != nil {
		return nil, err
	}
	return &program, nil
}

func (r *ProgramRepository) Update(ctx context.Context, program *domain.Program) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(program).Error
}

// ListByManufacturer returns the manufacturer's programs, newest first.
// An empty statuses slice means all statuses; limit <= 0 means no limit.
func (r *ProgramRepository) ListByManufacturer(ctx context.Context, manufacturerID uuid.UUID, statuses []domain.ProgramStatus, limit int) ([]domain.Program, error) {
	var programs []domain.Program
	query := r.db.WithContext(ctx).
		Preload("Supplier").
		Where("manufacturer_id = ?", manufacturerID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Order("created_at DESC").Find(&programs).Error
	return programs, err
}

// ListBySupplier returns programs the supplier is assigned to, newest first
func (r *ProgramRepository) ListBySupplier(ctx context.Context, supplierID uuid.UUID, statuses []domain.ProgramStatus, limit int) ([]domain.Program, error) {
	var programs []domain.Program
	query := r.db.WithContext(ctx).
		Preload("Manufacturer").
		Where("supplier_id = ?", supplierID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Order("created_at DESC").Find(&programs).Error
	return programs, err
}

func (r *ProgramRepository) CountByManufacturer(ctx context.Context, manufacturerID uuid.UUID, statuses ...domain.ProgramStatus) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.Program{}).Where("manufacturer_id = ?", manufacturerID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *ProgramRepository) CountBySupplier(ctx context.Context, supplierID uuid.UUID, statuses ...domain.ProgramStatus) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.Program{}).Where("supplier_id = ?", supplierID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *ProgramRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Program{}).Count(&count).Error
	return count, err
}

// ProgramStatusCount is one row of the status/health breakdown
type ProgramStatusCount struct {
	Status                domain.ProgramStatus
	MilestoneHealthStatus domain.HealthStatus
	Count                 int64
}

// StatusBreakdown groups the manufacturer's programs by status and milestone health
func (r *ProgramRepository) StatusBreakdown(ctx context.Context, manufacturerID uuid.UUID) ([]ProgramStatusCount, error) {
	var rows []ProgramStatusCount
	err := r.db.WithContext(ctx).Model(&domain.Program{}).
		Select("status, milestone_health_status, COUNT(*) AS count").
		Where("manufacturer_id = ?", manufacturerID).
		Group("status, milestone_health_status").
		Scan(&rows).Error
	return rows, err
}

// ListManufacturerIDs returns every manufacturer that owns at least one program
func (r *ProgramRepository) ListManufacturerIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&domain.Program{}).
		Distinct("manufacturer_id").
		Pluck("manufacturer_id", &ids).Error
	return ids, err
}
