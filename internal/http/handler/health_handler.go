package handler

import (
	"net/http"
	"time"

	"github.com/axo-networks/marketplace-api/internal/database"
	"github.com/axo-networks/marketplace-api/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

func NewHealthHandler(db *gorm.DB, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger, now: time.Now}
}

// Health godoc
// @Summary Liveness probe
// @Description Always answers 200. The database field reports whether a ping succeeded.
// @Tags Health
// @Produce json
// @Success 200 {object} domain.HealthResponse
// @Router /_health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbStatus := "connected"
	if err := database.HealthCheck(r.Context(), h.db); err != nil {
		h.logger.Warn("database health check failed", zap.Error(err))
		dbStatus = "disconnected"
	}

	respondJSON(w, http.StatusOK, domain.HealthResponse{
		Status:    "up",
		Timestamp: h.now().UTC(),
		Database:  dbStatus,
	})
}

// Database godoc
// @Summary Readiness probe with connection pool statistics
// @Tags Health
// @Produce json
// @Success 200 {object} domain.DatabaseHealthResponse
// @Failure 503 {object} domain.DatabaseHealthResponse
// @Router /_health/db [get]
func (h *HealthHandler) Database(w http.ResponseWriter, r *http.Request) {
	stats, err := database.HealthCheckWithStats(r.Context(), h.db)
	if err != nil {
		h.logger.Error("database health check failed", zap.Error(err))
		respondJSON(w, http.StatusServiceUnavailable, domain.DatabaseHealthResponse{
			Status: "unhealthy",
			Error:  err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, domain.DatabaseHealthResponse{
		Status:             "healthy",
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDurationMs:     stats.WaitDuration.Milliseconds(),
	})
}
