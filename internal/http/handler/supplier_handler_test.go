package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/axo-networks/marketplace-api/internal/http/handler"
	"github.com/axo-networks/marketplace-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func createSupplierHandler(svc *testServices) *handler.SupplierHandler {
	return handler.NewSupplierHandler(svc.program, svc.demand, svc.profile, zap.NewNop())
}

func TestSupplierHandler_Programs(t *testing.T) {
	svc := setupServices(t)
	h := createSupplierHandler(svc)
	maker := testutil.CreateTestUser(t, svc.db, domain.UserTypeManufacturer, "Maker")
	supplier := testutil.CreateTestUser(t, svc.db, domain.UserTypeSupplier, "Supplier")

	program := testutil.CreateTestProgram(t, svc.db, maker.ID, "Assigned", domain.ProgramStatusInProgress, domain.HealthOnTrack)
	require.NoError(t, svc.db.Model(program).Update("supplier_id", supplier.ID).Error)
	testutil.CreateTestProgram(t, svc.db, maker.ID, "Unassigned", domain.ProgramStatusPlanned, domain.HealthOnTrack)

	w := httptest.NewRecorder()
	h.ListPrograms(w, newRequest(t, http.MethodGet, "/api/supplier/programs", nil, asUser(supplier)))
	require.Equal(t, http.StatusOK, w.Code)

	var resp domain.ProgramListResponse
	decodeBody(t, w, &resp)
	require.Len(t, resp.Programs, 1)
	assert.Equal(t, program.ID, resp.Programs[0].ID)
}

func TestSupplierHandler_Demand(t *testing.T) {
	svc := setupServices(t)
	h := createSupplierHandler(svc)
	buyer := testutil.CreateTestUser(t, svc.db, domain.UserTypeBuyer, "Buyer")
	supplier := testutil.CreateTestUser(t, svc.db, domain.UserTypeSupplier, "Supplier")

	public := testutil.CreateTestDemandListing(t, svc.db, buyer.ID, domain.VisibilityPublic)
	invited := testutil.CreateTestDemandListing(t, svc.db, buyer.ID, domain.VisibilityInviteOnly, supplier.ID)
	closedOff := testutil.CreateTestDemandListing(t, svc.db, buyer.ID, domain.VisibilityInviteOnly, uuid.New())
	private := testutil.CreateTestDemandListing(t, svc.db, buyer.ID, domain.VisibilityPrivate)

	t.Run("available demand", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.AvailableDemand(w, newRequest(t, http.MethodGet, "/api/supplier/available-demand", nil, asUser(supplier)))
		require.Equal(t, http.StatusOK, w.Code)

		var resp domain.AvailableDemandResponse
		decodeBody(t, w, &resp)
		ids := make([]uuid.UUID, 0, len(resp.Demands))
		for _, d := range resp.Demands {
			ids = append(ids, d.ID)
			assert.Empty(t, d.InvitedSuppliers, "invitation lists stay with the buyer")
		}
		assert.ElementsMatch(t, []uuid.UUID{public.ID, invited.ID}, ids)
	})

	t.Run("get invited listing", func(t *testing.T) {
		id := invited.ID.String()
		w := httptest.NewRecorder()
		h.GetDemand(w, newRequest(t, http.MethodGet, "/api/supplier/demand/"+id, nil, asUser(supplier), "id", id))
		require.Equal(t, http.StatusOK, w.Code)
		var resp domain.SupplierDemandResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, invited.ID, resp.Demand.ID)
	})

	t.Run("get uninvited listing", func(t *testing.T) {
		id := closedOff.ID.String()
		w := httptest.NewRecorder()
		h.GetDemand(w, newRequest(t, http.MethodGet, "/api/supplier/demand/"+id, nil, asUser(supplier), "id", id))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("get missing listing", func(t *testing.T) {
		id := uuid.NewString()
		w := httptest.NewRecorder()
		h.GetDemand(w, newRequest(t, http.MethodGet, "/api/supplier/demand/"+id, nil, asUser(supplier), "id", id))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Demand not found", errorMessage(t, w))
	})

	quote := domain.SubmitQuoteRequest{QuoteAmount: 1250.5, ProposedTimeline: "6 weeks"}

	t.Run("quote on invited listing", func(t *testing.T) {
		id := invited.ID.String()
		w := httptest.NewRecorder()
		h.SubmitQuote(w, newRequest(t, http.MethodPost, "/api/supplier/demand/"+id+"/quote", quote, asUser(supplier), "id", id))
		require.Equal(t, http.StatusCreated, w.Code)

		var resp domain.QuoteResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, "Quote submitted successfully", resp.Message)
		assert.Equal(t, supplier.ID, resp.Quote.SupplierID)
		assert.Equal(t, domain.QuoteStatusSubmitted, resp.Quote.Status)
	})

	t.Run("quote on uninvited listing", func(t *testing.T) {
		id := closedOff.ID.String()
		w := httptest.NewRecorder()
		h.SubmitQuote(w, newRequest(t, http.MethodPost, "/api/supplier/demand/"+id+"/quote", quote, asUser(supplier), "id", id))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Not invited to this demand", errorMessage(t, w))
	})

	t.Run("quote on private listing", func(t *testing.T) {
		id := private.ID.String()
		w := httptest.NewRecorder()
		h.SubmitQuote(w, newRequest(t, http.MethodPost, "/api/supplier/demand/"+id+"/quote", quote, asUser(supplier), "id", id))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("quote amount required", func(t *testing.T) {
		id := public.ID.String()
		w := httptest.NewRecorder()
		h.SubmitQuote(w, newRequest(t, http.MethodPost, "/api/supplier/demand/"+id+"/quote",
			domain.SubmitQuoteRequest{Notes: "free"}, asUser(supplier), "id", id))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "quoteAmount is required", errorMessage(t, w))
	})
}

func TestSupplierHandler_UpdateProfile(t *testing.T) {
	svc := setupServices(t)
	h := createSupplierHandler(svc)
	supplier := testutil.CreateTestUser(t, svc.db, domain.UserTypeSupplier, "Supplier")

	certs := []string{"ISO 9001", "AS9100"}
	w := httptest.NewRecorder()
	h.UpdateProfile(w, newRequest(t, http.MethodPut, "/api/supplier/profile",
		domain.UpdateProfileRequest{Certifications: &certs}, asUser(supplier)))
	require.Equal(t, http.StatusOK, w.Code)

	var resp domain.UserResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, certs, resp.User.Certifications)
	assert.Equal(t, domain.BaseProfileCompletion+10, resp.User.ProfileCompletion)

	t.Run("blank name rejected", func(t *testing.T) {
		blank := ""
		w := httptest.NewRecorder()
		h.UpdateProfile(w, newRequest(t, http.MethodPut, "/api/supplier/profile",
			domain.UpdateProfileRequest{Name: &blank}, asUser(supplier)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
