package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/axo-networks/marketplace-api/internal/http/handler"
	"github.com/axo-networks/marketplace-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAuthHandler_RegisterAndLogin(t *testing.T) {
	svc := setupServices(t)
	h := handler.NewAuthHandler(svc.auth, zap.NewNop())

	register := domain.RegisterRequest{
		UserType: domain.UserTypeManufacturer,
		Company:  "Forge AS",
		Name:     "Kim Forge",
		Email:    "Kim@Forge.example",
	}

	w := httptest.NewRecorder()
	h.Register(w, newRequest(t, http.MethodPost, "/api/auth/register", register, nil))
	require.Equal(t, http.StatusCreated, w.Code)

	var registered domain.RegisterResponse
	decodeBody(t, w, &registered)
	assert.True(t, registered.Success)
	assert.Equal(t, "kim@forge.example", registered.User.Email)
	assert.True(t, registered.User.ForcePasswordReset)
	require.Len(t, registered.TemporaryPassword, 8)

	t.Run("duplicate email", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Register(w, newRequest(t, http.MethodPost, "/api/auth/register", register, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "User already exists", errorMessage(t, w))
	})

	t.Run("login with temporary password", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Login(w, newRequest(t, http.MethodPost, "/api/auth/login", domain.LoginRequest{
			Email:    "kim@forge.example",
			Password: registered.TemporaryPassword,
		}, nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp domain.TokenResponse
		decodeBody(t, w, &resp)
		assert.NotEmpty(t, resp.Token)
		assert.True(t, resp.ForcePasswordReset)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Login(w, newRequest(t, http.MethodPost, "/api/auth/login", domain.LoginRequest{
			Email:    "kim@forge.example",
			Password: "nope",
		}, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid email or password", errorMessage(t, w))
	})

	t.Run("reset then login", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ForceResetPassword(w, newRequest(t, http.MethodPost, "/api/auth/force-reset-password", domain.ForceResetPasswordRequest{
			Email:       "kim@forge.example",
			NewPassword: "a-long-new-password",
		}, nil))
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		h.Login(w, newRequest(t, http.MethodPost, "/api/auth/login", domain.LoginRequest{
			Email:    "kim@forge.example",
			Password: "a-long-new-password",
		}, nil))
		require.Equal(t, http.StatusOK, w.Code)
		var resp domain.TokenResponse
		decodeBody(t, w, &resp)
		assert.False(t, resp.ForcePasswordReset)
	})
}

func TestAuthHandler_Validation(t *testing.T) {
	svc := setupServices(t)
	h := handler.NewAuthHandler(svc.auth, zap.NewNop())

	t.Run("malformed body", func(t *testing.T) {
		req := newRequest(t, http.MethodPost, "/api/auth/login", nil, nil)
		w := httptest.NewRecorder()
		h.Login(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", errorMessage(t, w))
	})

	t.Run("reports json field names", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Register(w, newRequest(t, http.MethodPost, "/api/auth/register", domain.RegisterRequest{
			UserType: domain.UserTypeBuyer,
			Company:  "Shop",
			Name:     "Sam",
			Email:    "not-an-email",
		}, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "email must be a valid email address", errorMessage(t, w))
	})

	t.Run("short new password", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ForceResetPassword(w, newRequest(t, http.MethodPost, "/api/auth/force-reset-password", domain.ForceResetPasswordRequest{
			Email:       "sam@example.com",
			NewPassword: "short",
		}, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "newPassword must be at least 8 characters", errorMessage(t, w))
	})

	t.Run("reset for unknown user", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ForceResetPassword(w, newRequest(t, http.MethodPost, "/api/auth/force-reset-password", domain.ForceResetPasswordRequest{
			Email:       "ghost@example.com",
			NewPassword: "long-enough-password",
		}, nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "User not found", errorMessage(t, w))
	})
}

func TestAuthHandler_CheckAndMe(t *testing.T) {
	svc := setupServices(t)
	h := handler.NewAuthHandler(svc.auth, zap.NewNop())
	user := testutil.CreateTestUser(t, svc.db, domain.UserTypeSupplier, "Supplier")

	t.Run("check existing", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Check(w, newRequest(t, http.MethodPost, "/api/auth/check", domain.CheckUserRequest{Email: user.Email}, nil))
		require.Equal(t, http.StatusOK, w.Code)
		var resp domain.CheckUserResponse
		decodeBody(t, w, &resp)
		assert.True(t, resp.Exists)
		assert.Equal(t, domain.UserTypeSupplier, resp.UserType)
	})

	t.Run("check missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Check(w, newRequest(t, http.MethodPost, "/api/auth/check", domain.CheckUserRequest{Email: "nobody@example.com"}, nil))
		require.Equal(t, http.StatusOK, w.Code)
		var resp domain.CheckUserResponse
		decodeBody(t, w, &resp)
		assert.False(t, resp.Exists)
	})

	t.Run("me", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Me(w, newRequest(t, http.MethodGet, "/api/auth/me", nil, asUser(user)))
		require.Equal(t, http.StatusOK, w.Code)
		var resp domain.UserResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, user.ID, resp.User.ID)
	})

	t.Run("me without identity", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Me(w, newRequest(t, http.MethodGet, "/api/auth/me", nil, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
