package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/axo-networks/marketplace-api/internal/auth"
	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testUser(userType domain.UserType) *domain.User {
	return &domain.User{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		Email:     "someone@example.com",
		Name:      "Some One",
		Company:   "Acme",
		UserType:  userType,
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body domain.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body.Error
}

func TestMiddleware_Authenticate(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	middleware := auth.NewMiddleware(issuer, zap.NewNop())

	var captured *auth.UserContext
	handler := middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = auth.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid bearer token", func(t *testing.T) {
		user := testUser(domain.UserTypeBuyer)
		token, err := issuer.Issue(user)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, captured)
		assert.Equal(t, user.ID, captured.UserID)
		assert.Equal(t, domain.UserTypeBuyer, captured.UserType)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "No authentication token, access denied", decodeError(t, w))
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		token, err := auth.NewTokenIssuer("other-secret", time.Hour).Issue(testUser(domain.UserTypeBuyer))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Token is not valid", decodeError(t, w))
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := auth.NewTokenIssuer("test-secret", -time.Minute).Issue(testUser(domain.UserTypeBuyer))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Token has expired", decodeError(t, w))
	})
}

func TestMiddleware_RequireRole(t *testing.T) {
	middleware := auth.NewMiddleware(auth.NewTokenIssuer("test-secret", time.Hour), zap.NewNop())
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	serve := func(userCtx *auth.UserContext, types ...domain.UserType) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/supplier/programs", nil)
		if userCtx != nil {
			req = req.WithContext(auth.WithUserContext(req.Context(), userCtx))
		}
		w := httptest.NewRecorder()
		middleware.RequireRole(types...)(ok).ServeHTTP(w, req)
		return w
	}

	t.Run("no identity", func(t *testing.T) {
		w := serve(nil, domain.UserTypeSupplier)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Authentication required", decodeError(t, w))
	})

	t.Run("supplier route rejects manufacturer", func(t *testing.T) {
		w := serve(&auth.UserContext{UserID: uuid.New(), UserType: domain.UserTypeManufacturer}, domain.UserTypeSupplier)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Insufficient permissions", decodeError(t, w))
	})

	t.Run("match is exact for both", func(t *testing.T) {
		w := serve(&auth.UserContext{UserID: uuid.New(), UserType: domain.UserTypeBoth}, domain.UserTypeSupplier)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = serve(&auth.UserContext{UserID: uuid.New(), UserType: domain.UserTypeBoth}, domain.UserTypeBuyer, domain.UserTypeBoth)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("any listed type passes", func(t *testing.T) {
		w := serve(&auth.UserContext{UserID: uuid.New(), UserType: domain.UserTypeOEM}, domain.UserTypeManufacturer, domain.UserTypeOEM)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
