package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/axo-networks/marketplace-api/internal/auth"
	"github.com/axo-networks/marketplace-api/internal/config"
	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/axo-networks/marketplace-api/internal/repository"
	"github.com/axo-networks/marketplace-api/internal/service"
	"github.com/axo-networks/marketplace-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func createAuthService(t *testing.T, db *gorm.DB) (*service.AuthService, *auth.TokenIssuer) {
	t.Helper()
	tokens := auth.NewTokenIssuer("test-secret", 24*time.Hour)
	svc := service.NewAuthService(
		repository.NewUserRepository(db),
		auth.NewBcryptHasher(bcrypt.MinCost),
		tokens,
		&config.AuthConfig{ExposeTemporaryPassword: true},
		zap.NewNop(),
	)
	return svc, tokens
}

func registerSupplier(t *testing.T, svc *service.AuthService, email string) *domain.RegisterResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), &domain.RegisterRequest{
		UserType: domain.UserTypeSupplier,
		Company:  "Acme Parts",
		Name:     "Jo Supplier",
		Email:    email,
		Industry: "Automotive",
	})
	require.NoError(t, err)
	return resp
}

func TestAuthService_Register(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _ := createAuthService(t, db)
	ctx := context.Background()

	t.Run("creates active account with forced reset", func(t *testing.T) {
		resp := registerSupplier(t, svc, "Jo@Acme.test")

		assert.True(t, resp.Success)
		assert.Equal(t, "Account created successfully", resp.Message)
		assert.Equal(t, "jo@acme.test", resp.User.Email)
		assert.True(t, resp.User.ForcePasswordReset)
		assert.Regexp(t, `^[0-9A-F]{8}$`, resp.TemporaryPassword)

		user, err := repository.NewUserRepository(db).GetByEmail(ctx, "jo@acme.test")
		require.NoError(t, err)
		assert.Equal(t, domain.UserStatusActive, user.Status)
		assert.Equal(t, domain.BaseProfileCompletion, user.ProfileCompletion)
		assert.Equal(t, []string{"Automotive"}, []string(user.Industry))
		require.NotNil(t, user.TempPasswordHash)
		assert.NotEqual(t, resp.TemporaryPassword, *user.TempPasswordHash)
	})

	t.Run("manufacturer gets OEM company type", func(t *testing.T) {
		resp, err := svc.Register(ctx, &domain.RegisterRequest{
			UserType: domain.UserTypeManufacturer,
			Company:  "Forge",
			Name:     "Kim",
			Email:    "kim@forge.test",
		})
		require.NoError(t, err)

		user, err := repository.NewUserRepository(db).GetByID(ctx, resp.User.ID)
		require.NoError(t, err)
		assert.Equal(t, "OEM", user.CompanyType)
		assert.Empty(t, user.Industry)
	})

	t.Run("duplicate email is rejected regardless of case", func(t *testing.T) {
		_, err := svc.Register(ctx, &domain.RegisterRequest{
			UserType: domain.UserTypeBuyer,
			Company:  "Other",
			Name:     "Other",
			Email:    "JO@ACME.TEST",
		})
		assert.ErrorIs(t, err, service.ErrDuplicateAccount)
	})

	t.Run("temporary password is hidden when not exposed", func(t *testing.T) {
		hidden := service.NewAuthService(
			repository.NewUserRepository(db),
			auth.NewBcryptHasher(bcrypt.MinCost),
			auth.NewTokenIssuer("test-secret", time.Hour),
			&config.AuthConfig{},
			zap.NewNop(),
		)
		resp, err := hidden.Register(ctx, &domain.RegisterRequest{
			UserType: domain.UserTypeBuyer,
			Company:  "Quiet",
			Name:     "Quiet",
			Email:    "quiet@buyer.test",
		})
		require.NoError(t, err)
		assert.Empty(t, resp.TemporaryPassword)
	})
}

func TestAuthService_LoginAndReset(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, tokens := createAuthService(t, db)
	ctx := context.Background()

	reg := registerSupplier(t, svc, "first@login.test")

	t.Run("temporary password works repeatedly until reset", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			resp, err := svc.Login(ctx, &domain.LoginRequest{Email: "first@login.test", Password: reg.TemporaryPassword})
			require.NoError(t, err)
			assert.True(t, resp.ForcePasswordReset)
			assert.Equal(t, "First login detected. Please reset your password.", resp.Message)

			claims, err := tokens.Parse(resp.Token)
			require.NoError(t, err)
			assert.Equal(t, reg.User.ID, claims.UserID)
			assert.True(t, claims.ForcePasswordReset)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &domain.LoginRequest{Email: "first@login.test", Password: "nope"})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, &domain.LoginRequest{Email: "ghost@login.test", Password: "whatever"})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("short new password", func(t *testing.T) {
		_, err := svc.ForceResetPassword(ctx, &domain.ForceResetPasswordRequest{Email: "first@login.test", NewPassword: "short"})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("reset unknown user", func(t *testing.T) {
		_, err := svc.ForceResetPassword(ctx, &domain.ForceResetPasswordRequest{Email: "ghost@login.test", NewPassword: "longenough"})
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})

	t.Run("reset replaces the temporary password", func(t *testing.T) {
		resp, err := svc.ForceResetPassword(ctx, &domain.ForceResetPasswordRequest{Email: "first@login.test", NewPassword: "new-secret-1"})
		require.NoError(t, err)
		assert.False(t, resp.ForcePasswordReset)
		assert.Equal(t, "Password reset successful", resp.Message)

		_, err = svc.Login(ctx, &domain.LoginRequest{Email: "first@login.test", Password: reg.TemporaryPassword})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)

		login, err := svc.Login(ctx, &domain.LoginRequest{Email: "FIRST@login.test", Password: "new-secret-1"})
		require.NoError(t, err)
		assert.False(t, login.ForcePasswordReset)
		assert.Equal(t, "Login successful", login.Message)

		check, err := svc.Check(ctx, "first@login.test")
		require.NoError(t, err)
		assert.True(t, check.Exists)
		require.NotNil(t, check.ForcePasswordReset)
		assert.False(t, *check.ForcePasswordReset)
	})
}

func TestAuthService_InactiveAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _ := createAuthService(t, db)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, db, domain.UserTypeBuyer, "Suspended Buyer")
	require.NoError(t, db.Model(user).Update("status", domain.UserStatusSuspended).Error)

	_, err := svc.Login(ctx, &domain.LoginRequest{Email: user.Email, Password: "password123"})
	assert.ErrorIs(t, err, service.ErrAccountInactive)
}

func TestAuthService_CheckAndMe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _ := createAuthService(t, db)
	ctx := context.Background()

	check, err := svc.Check(ctx, "nobody@check.test")
	require.NoError(t, err)
	assert.False(t, check.Exists)
	assert.Nil(t, check.ForcePasswordReset)

	user := testutil.CreateTestUser(t, db, domain.UserTypeManufacturer, "Me Maker")
	me, err := svc.Me(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, me.Email)
	assert.Equal(t, []domain.UserType{domain.UserTypeManufacturer}, me.Roles)
}
