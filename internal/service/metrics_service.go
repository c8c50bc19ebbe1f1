package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/axo-networks/marketplace-api/internal/config"
	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/axo-networks/marketplace-api/internal/repository"
	"github.com/axo-networks/marketplace-api/internal/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MetricsService keeps the per-manufacturer metrics snapshot up to date.
// Program writes enqueue a recompute that worker goroutines pick up; the
// triggering write never waits for it and never sees its errors.
type MetricsService struct {
	programRepo *repository.ProgramRepository
	metricsRepo *repository.MetricsRepository
	logger      *zap.Logger

	queue   chan uuid.UUID
	workers int
	timeout time.Duration

	mu      sync.Mutex
	started bool
	stopped bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	now func() time.Time
}

// NewMetricsService creates a MetricsService. Call Start to run the workers.
func NewMetricsService(
	programRepo *repository.ProgramRepository,
	metricsRepo *repository.MetricsRepository,
	cfg *config.MetricsConfig,
	logger *zap.Logger,
) *MetricsService {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 100
	}
	timeout := cfg.SweepTimeoutDuration()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &MetricsService{
		programRepo: programRepo,
		metricsRepo: metricsRepo,
		logger:      logger,
		queue:       make(chan uuid.UUID, queueSize),
		workers:     workers,
		timeout:     timeout,
		now:         time.Now,
	}
}

// Recompute rebuilds and stores the snapshot for one manufacturer
func (s *MetricsService) Recompute(ctx context.Context, manufacturerID uuid.UUID) (*domain.ManufacturerMetrics, error) {
	rows, err := s.programRepo.StatusBreakdown(ctx, manufacturerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count programs: %w", err)
	}

	var total, active, inProgress, completed, atRisk, onTrack int64
	for _, row := range rows {
		total += row.Count
		switch row.Status {
		case domain.ProgramStatusPlanned:
			active += row.Count
		case domain.ProgramStatusInProgress:
			active += row.Count
			inProgress += row.Count
		case domain.ProgramStatusCompleted:
			completed += row.Count
		}
		switch row.MilestoneHealthStatus {
		case domain.HealthOnTrack:
			onTrack += row.Count
		case domain.HealthAtRisk:
			atRisk += row.Count
		}
	}

	score := domain.ExecutionHealthScore(onTrack, total)
	metrics := &domain.ManufacturerMetrics{
		ManufacturerID:            manufacturerID,
		ActiveProgramsCount:       int(active),
		InProgressProgramsCount:   int(inProgress),
		CompletedProgramsCount:    int(completed),
		AtRiskProgramsCount:       int(atRisk),
		ExecutionHealthScore:      score,
		TimelineAdherenceStatus:   domain.TimelineAdherence(score),
		SupplierReliabilityStatus: domain.HealthOnTrack,
		QualityConsistencyStatus:  domain.HealthOnTrack,
		ResponseDisciplineStatus:  domain.HealthOnTrack,
		CalculatedAt:              s.now().UTC(),
	}

	if err := s.metricsRepo.Upsert(ctx, metrics); err != nil {
		return nil, fmt.Errorf("failed to store metrics: %w", err)
	}
	return metrics, nil
}

// GetLatest returns the stored snapshot, or the fallback when none was computed yet
func (s *MetricsService) GetLatest(ctx context.Context, manufacturerID uuid.UUID) (*domain.ManufacturerMetrics, error) {
	m, err := s.metricsRepo.GetLatest(ctx, manufacturerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FallbackMetrics(manufacturerID), nil
		}
		return nil, fmt.Errorf("failed to get metrics: %w", err)
	}
	return m, nil
}

// Enqueue schedules a recompute without blocking. It reports false when the
// request was dropped because the queue is full or the service is stopped.
func (s *MetricsService) Enqueue(manufacturerID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return false
	}

	select {
	case s.queue <- manufacturerID:
		telemetry.SetRecomputeQueueDepth(len(s.queue))
		return true
	default:
		telemetry.RecordRecompute(telemetry.RecomputeDropped, 0)
		s.logger.Warn("metrics recompute dropped, queue full",
			zap.String("manufacturer_id", manufacturerID.String()),
			zap.Int("queue_size", cap(s.queue)),
		)
		return false
	}
}

// Start launches the workers. It is a no-op when already started.
func (s *MetricsService) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started || s.stopped {
		return
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(ctx)
	}

	s.logger.Info("metrics workers started",
		zap.Int("workers", s.workers),
		zap.Int("queue_size", cap(s.queue)),
	)
}

// Stop finishes the queued recomputes and waits for the workers to exit
func (s *MetricsService) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	started := s.started
	close(s.queue)
	s.mu.Unlock()

	if started {
		s.wg.Wait()
		s.cancel()
	}
	s.logger.Info("metrics workers stopped")
}

func (s *MetricsService) worker(ctx context.Context) {
	defer s.wg.Done()
	for id := range s.queue {
		telemetry.SetRecomputeQueueDepth(len(s.queue))
		s.process(ctx, id)
	}
}

func (s *MetricsService) process(ctx context.Context, manufacturerID uuid.UUID) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if _, err := s.Recompute(ctx, manufacturerID); err != nil {
		telemetry.RecordRecompute(telemetry.RecomputeFailure, time.Since(start))
		s.logger.Error("metrics recompute failed",
			zap.String("manufacturer_id", manufacturerID.String()),
			zap.Error(err),
		)
		return
	}
	telemetry.RecordRecompute(telemetry.RecomputeSuccess, time.Since(start))
}

// RecomputeAll recomputes every manufacturer that owns programs.
// Individual failures are logged and do not stop the sweep.
func (s *MetricsService) RecomputeAll(ctx context.Context) (int, error) {
	ids, err := s.programRepo.ListManufacturerIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list manufacturers: %w", err)
	}

	updated := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		start := time.Now()
		if _, err := s.Recompute(ctx, id); err != nil {
			telemetry.RecordRecompute(telemetry.RecomputeFailure, time.Since(start))
			s.logger.Error("metrics recompute failed during sweep",
				zap.String("manufacturer_id", id.String()),
				zap.Error(err),
			)
			continue
		}
		telemetry.RecordRecompute(telemetry.RecomputeSuccess, time.Since(start))
		updated++
	}
	return updated, nil
}
