package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/axo-networks/marketplace-api/internal/repository"
	"github.com/axo-networks/marketplace-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRepository_UpsertKeepsOneRow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewMetricsRepository(db)
	ctx := context.Background()

	mfg := testutil.CreateTestUser(t, db, domain.UserTypeManufacturer, "Mfg")

	first := &domain.ManufacturerMetrics{
		ManufacturerID:            mfg.ID,
		ActiveProgramsCount:       1,
		ExecutionHealthScore:      100,
		TimelineAdherenceStatus:   domain.HealthOnTrack,
		SupplierReliabilityStatus: domain.HealthOnTrack,
		QualityConsistencyStatus:  domain.HealthOnTrack,
		ResponseDisciplineStatus:  domain.HealthOnTrack,
		CalculatedAt:              time.Now().Add(-time.Minute),
	}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &domain.ManufacturerMetrics{
		ManufacturerID:            mfg.ID,
		ActiveProgramsCount:       3,
		AtRiskProgramsCount:       1,
		ExecutionHealthScore:      67,
		TimelineAdherenceStatus:   domain.HealthAttention,
		SupplierReliabilityStatus: domain.HealthOnTrack,
		QualityConsistencyStatus:  domain.HealthOnTrack,
		ResponseDisciplineStatus:  domain.HealthOnTrack,
		CalculatedAt:              time.Now(),
	}
	require.NoError(t, repo.Upsert(ctx, second))

	var count int64
	require.NoError(t, db.Model(&domain.ManufacturerMetrics{}).Where("manufacturer_id = ?", mfg.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := repo.GetLatest(ctx, mfg.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.ActiveProgramsCount)
	assert.Equal(t, 67, got.ExecutionHealthScore)
	assert.Equal(t, domain.HealthAttention, got.TimelineAdherenceStatus)
}

func TestMetricsRepository_GetLatestMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewMetricsRepository(db)

	mfg := testutil.CreateTestUser(t, db, domain.UserTypeManufacturer, "Mfg")
	_, err := repo.GetLatest(context.Background(), mfg.ID)
	assert.Error(t, err)
}

func TestMetricsRepository_UpsertStoresZeroScore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewMetricsRepository(db)
	ctx := context.Background()

	mfg := testutil.CreateTestUser(t, db, domain.UserTypeManufacturer, "Late Mfg")

	snapshot := func() *domain.ManufacturerMetrics {
		return &domain.ManufacturerMetrics{
			ManufacturerID:            mfg.ID,
			ActiveProgramsCount:       1,
			AtRiskProgramsCount:       1,
			ExecutionHealthScore:      0,
			TimelineAdherenceStatus:   domain.HealthAtRisk,
			SupplierReliabilityStatus: domain.HealthOnTrack,
			QualityConsistencyStatus:  domain.HealthOnTrack,
			ResponseDisciplineStatus:  domain.HealthOnTrack,
			CalculatedAt:              time.Now(),
		}
	}

	first := snapshot()
	require.NoError(t, repo.Upsert(ctx, first))
	assert.Equal(t, 0, first.ExecutionHealthScore)

	second := snapshot()
	require.NoError(t, repo.Upsert(ctx, second))
	assert.Equal(t, first.ID, second.ID, "conflicting upsert reports the existing row")
	assert.Equal(t, 0, second.ExecutionHealthScore)

	got, err := repo.GetLatest(ctx, mfg.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, 0, got.ExecutionHealthScore)
	assert.Equal(t, domain.HealthAtRisk, got.TimelineAdherenceStatus)
}
