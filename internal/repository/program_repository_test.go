package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/axo-networks/marketplace-api/internal/repository"
	"github.com/axo-networks/marketplace-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestProgramRepository_OwnershipScope(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProgramRepository(db)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, db, domain.UserTypeManufacturer, "Owner Mfg")
	other := testutil.CreateTestUser(t, db, domain.UserTypeManufacturer, "Other Mfg")
	program := testutil.CreateTestProgram(t, db, owner.ID, "Gearbox", domain.ProgramStatusPlanned, domain.HealthOnTrack)

	got, err := repo.GetByIDForManufacturer(ctx, program.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gearbox", got.ProgramName)

	_, err = repo.GetByIDForManufacturer(ctx, program.ID, other.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestProgramRepository_ListBySupplier(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProgramRepository(db)
	ctx := context.Background()

	mfg := testutil.CreateTestUser(t, db, domain.UserTypeManufacturer, "Mfg")
	supplier := testutil.CreateTestUser(t, db, domain.UserTypeSupplier, "Supplier")

	assigned := testutil.CreateTestProgram(t, db, mfg.ID, "Assigned", domain.ProgramStatusInProgress, domain.HealthOnTrack)
	assigned.SupplierID = &supplier.ID
	require.NoError(t, repo.Update(ctx, assigned))
	testutil.CreateTestProgram(t, db, mfg.ID, "Unassigned", domain.ProgramStatusInProgress, domain.HealthOnTrack)

	programs, err := repo.ListBySupplier(ctx, supplier.ID, nil, 0)
	require.NoError(t, err)
	require.Len(t, programs, 1)
	assert.Equal(t, assigned.ID, programs[0].ID)
	require.NotNil(t, programs[0].Manufacturer)
	assert.Equal(t, mfg.Company, programs[0].Manufacturer.Company)

	active, err := repo.CountBySupplier(ctx, supplier.ID, domain.ProgramStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, int64(1), active)
}

func TestProgramRepository_ListByManufacturer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProgramRepository(db)
	ctx := context.Background()

	mfg := testutil.CreateTestUser(t, db, domain.UserTypeManufacturer, "Mfg")
	older := testutil.CreateTestProgram(t, db, mfg.ID, "Older", domain.ProgramStatusPlanned, domain.HealthOnTrack)
	require.NoError(t, db.Model(older).Update("created_at", time.Now().Add(-time.Hour)).Error)
	newer := testutil.CreateTestProgram(t, db, mfg.ID, "Newer", domain.ProgramStatusCompleted, domain.HealthOnTrack)

	all, err := repo.ListByManufacturer(ctx, mfg.ID, nil, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)

	planned, err := repo.ListByManufacturer(ctx, mfg.ID, []domain.ProgramStatus{domain.ProgramStatusPlanned}, 5)
	require.NoError(t, err)
	require.Len(t, planned, 1)
	assert.Equal(t, older.ID, planned[0].ID)
}

func TestProgramRepository_StatusBreakdown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProgramRepository(db)
	ctx := context.Background()

	mfg := testutil.CreateTestUser(t, db, domain.UserTypeManufacturer, "Mfg")
	testutil.CreateTestProgram(t, db, mfg.ID, "A", domain.ProgramStatusInProgress, domain.HealthOnTrack)
	testutil.CreateTestProgram(t, db, mfg.ID, "B", domain.ProgramStatusInProgress, domain.HealthOnTrack)
	testutil.CreateTestProgram(t, db, mfg.ID, "C", domain.ProgramStatusCompleted, domain.HealthAtRisk)

	rows, err := repo.StatusBreakdown(ctx, mfg.ID)
	require.NoError(t, err)

	var total int64
	for _, row := range rows {
		total += row.Count
		if row.Status == domain.ProgramStatusInProgress {
			assert.Equal(t, domain.HealthOnTrack, row.MilestoneHealthStatus)
			assert.Equal(t, int64(2), row.Count)
		}
	}
	assert.Equal(t, int64(3), total)

	ids, err := repo.ListManufacturerIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, len(ids))
	assert.Equal(t, mfg.ID, ids[0])
}
