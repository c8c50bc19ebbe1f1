package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/axo-networks/marketplace-api/internal/auth"
	"github.com/axo-networks/marketplace-api/internal/config"
	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/axo-networks/marketplace-api/internal/http/handler"
	"github.com/axo-networks/marketplace-api/internal/http/middleware"
	"github.com/axo-networks/marketplace-api/internal/http/router"
	"github.com/axo-networks/marketplace-api/internal/repository"
	"github.com/axo-networks/marketplace-api/internal/service"
	"github.com/axo-networks/marketplace-api/internal/storage"
	"github.com/axo-networks/marketplace-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := zap.NewNop()
	db := testutil.SetupTestDB(t)

	cfg := &config.Config{
		App:       config.AppConfig{Environment: "development"},
		Auth:      config.AuthConfig{ExposeTemporaryPassword: true},
		Server:    config.ServerConfig{RequestTimeout: 10, EnableMetrics: true},
		RateLimit: config.RateLimitConfig{Enabled: false},
		Metrics:   config.MetricsConfig{Workers: 1, QueueSize: 10, SweepTimeout: 5},
	}

	userRepo := repository.NewUserRepository(db)
	programRepo := repository.NewProgramRepository(db)
	sourcingRepo := repository.NewSourcingRequestRepository(db)
	demandRepo := repository.NewDemandListingRepository(db)

	tokens := auth.NewTokenIssuer("router-test-secret", time.Hour)
	metrics := service.NewMetricsService(programRepo, repository.NewMetricsRepository(db), &cfg.Metrics, logger)
	authService := service.NewAuthService(userRepo, auth.NewBcryptHasher(bcrypt.MinCost), tokens, &cfg.Auth, logger)
	profileService := service.NewProfileService(userRepo, logger)
	programService := service.NewProgramService(programRepo, userRepo, metrics, logger)
	sourcingService := service.NewSourcingService(sourcingRepo, userRepo, logger)
	demandService := service.NewDemandService(demandRepo, logger)
	dashboardService := service.NewDashboardService(userRepo, programRepo, sourcingRepo, demandRepo, metrics, logger)

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	rt := router.NewRouter(cfg, logger, auth.NewMiddleware(tokens, logger),
		middleware.NewRateLimiter(&cfg.RateLimit, logger),
		router.Handlers{
			Auth:         handler.NewAuthHandler(authService, logger),
			Dashboard:    handler.NewDashboardHandler(dashboardService, profileService, sourcingService, demandService, logger),
			Manufacturer: handler.NewManufacturerHandler(programService, sourcingService, demandService, metrics, logger),
			Supplier:     handler.NewSupplierHandler(programService, demandService, profileService, logger),
			File:         handler.NewFileHandler(service.NewFileService(store, logger), 5, logger),
			Health:       handler.NewHealthHandler(db, logger),
		})

	srv := httptest.NewServer(rt.Setup())
	t.Cleanup(srv.Close)
	return srv
}

type client struct {
	t     *testing.T
	base  string
	token string
}

func (c *client) do(method, path string, body interface{}, out interface{}) int {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.base+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// signUp registers an account, replaces the temporary password and returns an authenticated client
func signUp(t *testing.T, base string, userType domain.UserType, email string) *client {
	t.Helper()
	c := &client{t: t, base: base}

	var registered domain.RegisterResponse
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/auth/register", domain.RegisterRequest{
		UserType: userType,
		Company:  "Co " + email,
		Name:     "Person " + email,
		Email:    email,
	}, &registered))

	var login domain.TokenResponse
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/auth/login", domain.LoginRequest{
		Email:    email,
		Password: registered.TemporaryPassword,
	}, &login))
	require.True(t, login.ForcePasswordReset)

	var reset domain.TokenResponse
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/auth/force-reset-password", domain.ForceResetPasswordRequest{
		Email:       email,
		NewPassword: "correct-horse-battery",
	}, &reset))
	c.token = reset.Token
	return c
}

func TestRouter_Marketplace(t *testing.T) {
	srv := newTestServer(t)

	maker := signUp(t, srv.URL, domain.UserTypeManufacturer, "maker@example.com")
	supplier := signUp(t, srv.URL, domain.UserTypeSupplier, "supplier@example.com")
	outsider := signUp(t, srv.URL, domain.UserTypeSupplier, "outsider@example.com")
	buyer := signUp(t, srv.URL, domain.UserTypeBuyer, "buyer@example.com")

	var me domain.UserResponse
	require.Equal(t, http.StatusOK, supplier.do(http.MethodGet, "/api/auth/me", nil, &me))
	supplierID := me.User.ID

	t.Run("manufacturer creates a program for the supplier", func(t *testing.T) {
		var created domain.ProgramResponse
		require.Equal(t, http.StatusCreated, maker.do(http.MethodPost, "/api/manufacturer/programs",
			domain.CreateProgramRequest{ProgramName: "Drive unit", SupplierID: &supplierID}, &created))

		var assigned domain.ProgramListResponse
		require.Equal(t, http.StatusOK, supplier.do(http.MethodGet, "/api/supplier/programs", nil, &assigned))
		require.Len(t, assigned.Programs, 1)
		assert.Equal(t, created.Program.ID, assigned.Programs[0].ID)
	})

	var listing domain.DemandListingResponse
	require.Equal(t, http.StatusCreated, buyer.do(http.MethodPost, "/api/dashboard/demand-listing",
		domain.CreateDemandListingRequest{
			ComponentName:    "Enclosure",
			Quantity:         40,
			Visibility:       domain.VisibilityInviteOnly,
			InvitedSuppliers: []uuid.UUID{supplierID},
		}, &listing))
	listingPath := "/api/supplier/demand/" + listing.DemandListing.ID.String()

	t.Run("invite-only listing is hidden from other suppliers", func(t *testing.T) {
		var mine, theirs domain.AvailableDemandResponse
		require.Equal(t, http.StatusOK, supplier.do(http.MethodGet, "/api/supplier/available-demand", nil, &mine))
		require.Equal(t, http.StatusOK, outsider.do(http.MethodGet, "/api/supplier/available-demand", nil, &theirs))
		assert.Len(t, mine.Demands, 1)
		assert.Empty(t, theirs.Demands)

		assert.Equal(t, http.StatusForbidden, outsider.do(http.MethodGet, listingPath, nil, nil))
		assert.Equal(t, http.StatusForbidden, outsider.do(http.MethodPost, listingPath+"/quote",
			domain.SubmitQuoteRequest{QuoteAmount: 10}, nil))
	})

	t.Run("invited supplier quotes and buyer accepts", func(t *testing.T) {
		assert.Equal(t, http.StatusCreated, supplier.do(http.MethodPost, listingPath+"/quote",
			domain.SubmitQuoteRequest{QuoteAmount: 980, ProposedTimeline: "4 weeks"}, nil))

		var action domain.DemandActionResponse
		require.Equal(t, http.StatusOK, buyer.do(http.MethodPost,
			"/api/dashboard/demand/"+listing.DemandListing.ID.String()+"/action",
			domain.DemandActionRequest{Action: "Accept", SupplierID: &supplierID}, &action))
		assert.Equal(t, "Demand accepted successfully", action.Message)
		require.NotNil(t, action.Demand.AwardedTo)
		assert.Equal(t, supplierID, action.Demand.AwardedTo.ID)
	})

	t.Run("role guard", func(t *testing.T) {
		var resp domain.ErrorResponse
		assert.Equal(t, http.StatusForbidden, supplier.do(http.MethodGet, "/api/manufacturer/programs", nil, &resp))
		assert.Equal(t, "Insufficient permissions", resp.Error)
		assert.Equal(t, http.StatusForbidden, buyer.do(http.MethodPost, "/api/dashboard/sourcing-request",
			domain.CreateSourcingRequestRequest{ComponentName: "x", Quantity: 1}, nil))
		assert.Equal(t, http.StatusForbidden, maker.do(http.MethodGet, "/api/supplier/programs", nil, nil))
		assert.Equal(t, http.StatusForbidden, maker.do(http.MethodGet, "/api/dashboard/demand-listings", nil, nil))
	})

	t.Run("dashboard for every role", func(t *testing.T) {
		for _, c := range []*client{maker, supplier, buyer} {
			var resp struct {
				Success bool                       `json:"success"`
				Data    map[string]json.RawMessage `json:"data"`
			}
			require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/dashboard/data", nil, &resp))
			assert.True(t, resp.Success)
			assert.Contains(t, resp.Data, "quickStats")
			assert.Contains(t, resp.Data, "notifications")
		}
	})
}

func TestRouter_Envelope(t *testing.T) {
	srv := newTestServer(t)
	anon := &client{t: t, base: srv.URL}

	t.Run("health", func(t *testing.T) {
		var resp domain.HealthResponse
		require.Equal(t, http.StatusOK, anon.do(http.MethodGet, "/api/_health", nil, &resp))
		assert.Equal(t, "up", resp.Status)
		assert.Equal(t, "connected", resp.Database)
	})

	t.Run("missing token", func(t *testing.T) {
		var resp domain.ErrorResponse
		assert.Equal(t, http.StatusUnauthorized, anon.do(http.MethodGet, "/api/dashboard/data", nil, &resp))
		assert.Equal(t, "No authentication token, access denied", resp.Error)
	})

	t.Run("bad token", func(t *testing.T) {
		bad := &client{t: t, base: srv.URL, token: "not-a-jwt"}
		var resp domain.ErrorResponse
		assert.Equal(t, http.StatusUnauthorized, bad.do(http.MethodGet, "/api/auth/me", nil, &resp))
		assert.Equal(t, "Token is not valid", resp.Error)
	})

	t.Run("unknown route", func(t *testing.T) {
		var resp domain.ErrorResponse
		assert.Equal(t, http.StatusNotFound, anon.do(http.MethodGet, "/api/nowhere", nil, &resp))
		assert.Equal(t, "Route not found", resp.Error)
	})

	t.Run("wrong method", func(t *testing.T) {
		var resp domain.ErrorResponse
		assert.Equal(t, http.StatusMethodNotAllowed, anon.do(http.MethodGet, "/api/auth/login", nil, &resp))
		assert.Equal(t, "Method not allowed", resp.Error)
	})

	t.Run("metrics exposition", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
