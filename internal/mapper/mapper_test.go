package mapper_test

import (
	"encoding/json"
	"testing"

	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/axo-networks/marketplace-api/internal/mapper"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUserDTO_OmitsSecrets(t *testing.T) {
	temp := "$2a$10$hash"
	user := &domain.User{
		BaseModel:        domain.BaseModel{ID: uuid.New()},
		Email:            "a@example.com",
		Password:         "$2a$10$other",
		TempPasswordHash: &temp,
		UserType:         domain.UserTypeBoth,
	}

	dto := mapper.ToUserDTO(user)
	assert.Equal(t, []domain.UserType{domain.UserTypeBuyer, domain.UserTypeSupplier}, dto.Roles)
	assert.NotNil(t, dto.Industry)
	assert.NotNil(t, dto.Certifications)

	raw, err := json.Marshal(dto)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "$2a$")
	assert.NotContains(t, string(raw), "password\"")
}

func TestToDemandListingDTO_OwnerOnlyFields(t *testing.T) {
	supplier := uuid.New()
	listing := &domain.DemandListing{
		BaseModel:   domain.BaseModel{ID: uuid.New()},
		Visibility:  domain.VisibilityInviteOnly,
		Invitations: []domain.DemandInvitation{{SupplierID: supplier}},
		Quotes:      []domain.DemandQuote{{SupplierID: supplier, QuoteAmount: 10}},
	}

	owner := mapper.ToDemandListingDTO(listing, true)
	assert.Equal(t, []uuid.UUID{supplier}, owner.InvitedSuppliers)
	require.Len(t, owner.Quotes, 1)
	assert.Equal(t, 1, owner.QuoteCount)

	public := mapper.ToDemandListingDTO(listing, false)
	assert.Nil(t, public.InvitedSuppliers)
	assert.Nil(t, public.Quotes)
	assert.Equal(t, 1, public.QuoteCount)
}

func TestToProgramDTO_EmptyMilestones(t *testing.T) {
	dto := mapper.ToProgramDTO(&domain.Program{ProgramName: "P"})
	assert.NotNil(t, dto.Milestones)
	assert.Nil(t, dto.Supplier)

	supplierID := uuid.New()
	dto = mapper.ToProgramDTO(&domain.Program{
		SupplierID: &supplierID,
		Supplier:   &domain.User{BaseModel: domain.BaseModel{ID: supplierID}, Name: "S", Company: "S AS"},
	})
	require.NotNil(t, dto.Supplier)
	assert.Equal(t, "S AS", dto.Supplier.Company)
}
