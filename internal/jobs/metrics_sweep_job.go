package jobs

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// MetricsSweepJobName is the name of the periodic metrics recompute
const MetricsSweepJobName = "metrics_sweep"

// MetricsRecomputer recomputes the metrics snapshot of every manufacturer that owns programs
type MetricsRecomputer interface {
	RecomputeAll(ctx context.Context) (int, error)
}

// MetricsSweepJob catches up on recomputes the event-driven queue dropped or lost on restart
type MetricsSweepJob struct {
	metrics MetricsRecomputer
	logger  *zap.Logger
	timeout time.Duration
}

func NewMetricsSweepJob(metrics MetricsRecomputer, logger *zap.Logger, timeout time.Duration) *MetricsSweepJob {
	return &MetricsSweepJob{
		metrics: metrics,
		logger:  logger,
		timeout: timeout,
	}
}

// Run recomputes all manufacturers within the job timeout
func (j *MetricsSweepJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	updated, err := j.metrics.RecomputeAll(ctx)
	if err != nil {
		return fmt.Errorf("metrics sweep stopped after %d manufacturers: %w", updated, err)
	}

	j.logger.Info("metrics sweep completed",
		zap.Int("manufacturers_updated", updated),
		zap.Duration("duration", time.Since(start)))
	return nil
}

// RegisterMetricsSweepJob registers the sweep with the scheduler.
// With runAtStartup the sweep also runs once in the background so snapshots
// exist before the first tick.
func RegisterMetricsSweepJob(scheduler *Scheduler, metrics MetricsRecomputer, logger *zap.Logger, cronExpr string, timeout time.Duration, runAtStartup bool) error {
	job := NewMetricsSweepJob(metrics, logger, timeout)

	if runAtStartup {
		go func() {
			if err := job.Run(); err != nil {
				logger.Error("startup metrics sweep failed", zap.Error(err))
			}
		}()
	}

	return scheduler.AddJob(MetricsSweepJobName, cronExpr, job.Run)
}
