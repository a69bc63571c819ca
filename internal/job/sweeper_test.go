package job_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"velvet/config"
	otelMocks "velvet/infras/otel/mocks"
	"velvet/internal/job"
	cacheMocks "velvet/shared/cache/mocks"
)

type stubSweeps struct {
	staleCalls    int
	completeCalls int
	staleErr      error
}

func (s *stubSweeps) SweepStaleUnpaid(_ context.Context) (int, error) {
	s.staleCalls++

	return 2, s.staleErr
}

func (s *stubSweeps) SweepAutoComplete(_ context.Context) (int, error) {
	s.completeCalls++

	return 1, nil
}

func newSweepConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Booking.SweepIntervalSeconds = 300

	return cfg
}

func TestSweep_RunsBothSweepsWhenLockAcquired(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)
	sweeps := &stubSweeps{}

	redisCache.EXPECT().
		AcquireLock(gomock.Any(), "booking:sweep:lock", 300).
		Return(true, nil)

	sweeper := job.NewSweeper(newSweepConfig(), sweeps, redisCache, otelMocks.NewOtel())
	sweeper.Sweep(context.Background())

	assert.Equal(t, 1, sweeps.staleCalls)
	assert.Equal(t, 1, sweeps.completeCalls)
}

func TestSweep_SkipsWhenAnotherInstanceHoldsLock(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)
	sweeps := &stubSweeps{}

	redisCache.EXPECT().
		AcquireLock(gomock.Any(), "booking:sweep:lock", 300).
		Return(false, nil)

	sweeper := job.NewSweeper(newSweepConfig(), sweeps, redisCache, otelMocks.NewOtel())
	sweeper.Sweep(context.Background())

	assert.Zero(t, sweeps.staleCalls)
	assert.Zero(t, sweeps.completeCalls)
}

func TestSweep_StaleFailureStillRunsAutoComplete(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)
	sweeps := &stubSweeps{staleErr: errors.New("db unavailable")}

	redisCache.EXPECT().
		AcquireLock(gomock.Any(), "booking:sweep:lock", 300).
		Return(true, nil)

	sweeper := job.NewSweeper(newSweepConfig(), sweeps, redisCache, otelMocks.NewOtel())
	sweeper.Sweep(context.Background())

	assert.Equal(t, 1, sweeps.staleCalls)
	assert.Equal(t, 1, sweeps.completeCalls)
}
