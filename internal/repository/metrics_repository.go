package repository

import (
	"context"

	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MetricsRepository struct {
	db *gorm.DB
}

func NewMetricsRepository(db *gorm.DB) *MetricsRepository {
	return &MetricsRepository{db: db}
}

// Upsert writes the snapshot, replacing any previous one for the same manufacturer.
// m is reloaded afterwards so it carries the stored row's ID.
func (r *MetricsRepository) Upsert(ctx context.Context, m *domain.ManufacturerMetrics) error {
	db := r.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "manufacturer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"active_programs_count",
			"in_progress_programs_count",
			"completed_programs_count",
			"at_risk_programs_count",
			"execution_health_score",
			"timeline_adherence_status",
			"supplier_reliability_status",
			"quality_consistency_status",
			"response_discipline_status",
			"period_start",
			"period_end",
			"total_capacity_utilization",
			"average_lead_time",
			"quality_pass_rate",
			"calculated_at",
			"updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	var stored domain.ManufacturerMetrics
	if err := db.Where("manufacturer_id = ?", m.ManufacturerID).Take(&stored).Error; err != nil {
		return err
	}
	*m = stored
	return nil
}

// GetLatest returns the most recently calculated snapshot for the manufacturer
func (r *MetricsRepository) GetLatest(ctx context.Context, manufacturerID uuid.UUID) (*domain.ManufacturerMetrics, error) {
	var m domain.ManufacturerMetrics
	err := r.db.WithContext(ctx).
		Where("manufacturer_id = ?", manufacturerID).
		Order("calculated_at DESC").
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}
