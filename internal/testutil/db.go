// Package testutil provides an in-memory database and fixtures for package tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/axo-networks/marketplace-api/internal/database"
	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a fresh in-memory SQLite database with the full schema.
// Every test gets its own database, so tests can run in parallel.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err, "failed to open in-memory sqlite database")

	require.NoError(t, database.AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps background workers from tripping over sqlite table locks
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

// CreateTestUser inserts an active user of the given type with password "password123"
func CreateTestUser(t *testing.T, db *gorm.DB, userType domain.UserType, name string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{
		Email:             strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "." + uuid.NewString()[:8] + "@example.com",
		Password:          string(hash),
		Name:              name,
		Company:           name + " AS",
		UserType:          userType,
		Status:            domain.UserStatusActive,
		ReliabilityScore:  100,
		ProfileCompletion: domain.BaseProfileCompletion,
		Industry:          []string{},
		Certifications:    []string{},
	}
	require.NoError(t, db.WithContext(context.Background()).Create(user).Error)
	return user
}

// CreateTestProgram inserts a program for the manufacturer
func CreateTestProgram(t *testing.T, db *gorm.DB, manufacturerID uuid.UUID, name string, status domain.ProgramStatus, health domain.HealthStatus) *domain.Program {
	t.Helper()

	program := &domain.Program{
		ProgramName:           name,
		ManufacturerID:        manufacturerID,
		Status:                status,
		MilestoneHealthStatus: health,
		Priority:              domain.PriorityMedium,
		Milestones:            []domain.Milestone{},
	}
	require.NoError(t, db.Create(program).Error)
	return program
}

// CreateTestDemandListing inserts an open listing for the buyer
func CreateTestDemandListing(t *testing.T, db *gorm.DB, buyerID uuid.UUID, visibility domain.Visibility, invited ...uuid.UUID) *domain.DemandListing {
	t.Helper()

	listing := &domain.DemandListing{
		ComponentName: "Bracket",
		BuyerID:       buyerID,
		Quantity:      100,
		Status:        domain.DemandStatusOpen,
		ActionStatus:  domain.ActionPending,
		Visibility:    visibility,
		Budget:        domain.BudgetRange{Currency: "USD"},
	}
	for _, id := range invited {
		listing.Invitations = append(listing.Invitations, domain.DemandInvitation{SupplierID: id})
	}
	require.NoError(t, db.Create(listing).Error)
	return listing
}

// CreateTestSourcingRequest inserts a sourcing request for the manufacturer
func CreateTestSourcingRequest(t *testing.T, db *gorm.DB, manufacturerID uuid.UUID, status domain.SourcingStatus) *domain.SourcingRequest {
	t.Helper()

	req := &domain.SourcingRequest{
		ComponentName:  "Housing",
		ManufacturerID: manufacturerID,
		Quantity:       50,
		MatchingStatus: domain.MatchingPending,
		Status:         status,
	}
	require.NoError(t, db.Create(req).Error)
	return req
}
