package jobs_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/axo-networks/marketplace-api/internal/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRecomputer struct {
	calls   atomic.Int32
	updated int
	err     error
}

func (f *fakeRecomputer) RecomputeAll(ctx context.Context) (int, error) {
	f.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("sweep must run with a deadline")
	}
	return f.updated, f.err
}

func TestScheduler_AddAndRemove(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	require.NoError(t, s.AddJob("a", "@every 1h", func() error { return nil }))
	assert.Error(t, s.AddJob("a", "@every 1h", func() error { return nil }), "duplicate name")
	assert.Error(t, s.AddJob("bad", "not a cron expression", func() error { return nil }))

	assert.Equal(t, []string{"a"}, s.GetJobNames())
	_, ok := s.NextRun("missing")
	assert.False(t, ok)

	require.NoError(t, s.RemoveJob("a"))
	assert.Error(t, s.RemoveJob("a"))
	assert.Empty(t, s.GetJobNames())
}

func TestScheduler_RunsJobs(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	var runs atomic.Int32
	require.NoError(t, s.AddJob("tick", "@every 1s", func() error {
		runs.Add(1)
		return errors.New("failures are logged, not fatal")
	}))

	s.Start()
	next, ok := s.NextRun("tick")
	require.True(t, ok)
	assert.False(t, next.IsZero())
	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
	<-s.Stop().Done()
}

func TestMetricsSweepJob_Run(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeRecomputer{updated: 3}
		job := jobs.NewMetricsSweepJob(fake, zap.NewNop(), time.Second)
		assert.NoError(t, job.Run())
		assert.Equal(t, int32(1), fake.calls.Load())
	})

	t.Run("error is returned", func(t *testing.T) {
		fake := &fakeRecomputer{err: context.DeadlineExceeded}
		job := jobs.NewMetricsSweepJob(fake, zap.NewNop(), time.Second)
		assert.ErrorIs(t, job.Run(), context.DeadlineExceeded)
	})
}

func TestRegisterMetricsSweepJob(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())
	fake := &fakeRecomputer{}

	require.NoError(t, jobs.RegisterMetricsSweepJob(s, fake, zap.NewNop(), "0 */15 * * * *", time.Second, true))
	assert.Equal(t, []string{jobs.MetricsSweepJobName}, s.GetJobNames())
	assert.Eventually(t, func() bool { return fake.calls.Load() == 1 }, time.Second, 10*time.Millisecond)
}
