package telemetry_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/axo-networks/marketplace-api/internal/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentHandler_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(telemetry.InstrumentHandler)
	r.Get("/api/supplier/demand/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Handle("/metrics", telemetry.Handler())

	req := httptest.NewRequest(http.MethodGet, "/api/supplier/demand/123", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.True(t, strings.Contains(body, `route="/api/supplier/demand/{id}"`))
	assert.True(t, strings.Contains(body, `status="418"`))
	assert.False(t, strings.Contains(body, "/api/supplier/demand/123"))
}

func counterValue(t *testing.T, name, labelValue string) float64 {
	t.Helper()
	families, err := telemetry.Registry.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetValue() == labelValue {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestRecordRecompute(t *testing.T) {
	before := counterValue(t, "marketplace_metrics_recompute_total", telemetry.RecomputeDropped)
	telemetry.RecordRecompute(telemetry.RecomputeDropped, 0)
	after := counterValue(t, "marketplace_metrics_recompute_total", telemetry.RecomputeDropped)
	assert.Equal(t, before+1, after)

	telemetry.RecordJobRun("metrics-sweep", true)
	assert.GreaterOrEqual(t, counterValue(t, "marketplace_jobs_runs_total", "metrics-sweep"), 1.0)
}
