package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/axo-networks/marketplace-api/internal/auth"
	"github.com/axo-networks/marketplace-api/internal/config"
	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/axo-networks/marketplace-api/internal/repository"
	"github.com/axo-networks/marketplace-api/internal/service"
	"github.com/axo-networks/marketplace-api/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testServices struct {
	db        *gorm.DB
	auth      *service.AuthService
	profile   *service.ProfileService
	program   *service.ProgramService
	sourcing  *service.SourcingService
	demand    *service.DemandService
	metrics   *service.MetricsService
	dashboard *service.DashboardService
}

func setupServices(t *testing.T) *testServices {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	userRepo := repository.NewUserRepository(db)
	programRepo := repository.NewProgramRepository(db)
	sourcingRepo := repository.NewSourcingRequestRepository(db)
	demandRepo := repository.NewDemandListingRepository(db)
	metricsRepo := repository.NewMetricsRepository(db)

	metrics := service.NewMetricsService(programRepo, metricsRepo,
		&config.MetricsConfig{Workers: 1, QueueSize: 10, SweepTimeout: 5}, logger)

	return &testServices{
		db: db,
		auth: service.NewAuthService(userRepo, auth.NewBcryptHasher(bcrypt.MinCost),
			auth.NewTokenIssuer("test-secret", time.Hour),
			&config.AuthConfig{ExposeTemporaryPassword: true}, logger),
		profile:   service.NewProfileService(userRepo, logger),
		program:   service.NewProgramService(programRepo, userRepo, metrics, logger),
		sourcing:  service.NewSourcingService(sourcingRepo, userRepo, logger),
		demand:    service.NewDemandService(demandRepo, logger),
		metrics:   metrics,
		dashboard: service.NewDashboardService(userRepo, programRepo, sourcingRepo, demandRepo, metrics, logger),
	}
}

func asUser(user *domain.User) *auth.UserContext {
	return &auth.UserContext{
		UserID:   user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Company:  user.Company,
		UserType: user.UserType,
	}
}

// newRequest builds a request carrying userCtx and, when params is non-empty,
// chi URL parameters in key/value order.
func newRequest(t *testing.T, method, target string, body interface{}, userCtx *auth.UserContext, params ...string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	ctx := context.Background()
	if userCtx != nil {
		ctx = auth.WithUserContext(ctx, userCtx)
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for i := 0; i+1 < len(params); i += 2 {
			rctx.URLParams.Add(params[i], params[i+1])
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst))
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp domain.ErrorResponse
	decodeBody(t, w, &resp)
	return resp.Error
}
