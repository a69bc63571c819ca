package job

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"velvet/config"
	"velvet/infras/otel"
	"velvet/shared/cache"
	"velvet/shared/constant"
)

const sweepLockKey = "booking:sweep:lock"

// BookingSweeps is the slice of the booking service the sweeper drives.
type BookingSweeps interface {
	SweepStaleUnpaid(ctx context.Context) (int, error)
	SweepAutoComplete(ctx context.Context) (int, error)
}

// Sweeper periodically expires stale unpaid bookings and auto-completes
// overdue ones. A short-lived Redis lock elects a single sweeping instance
// per tick so horizontally scaled replicas do not race each other.
type Sweeper struct {
	cfg     *config.Config
	service BookingSweeps
	cache   cache.RedisCache
	otel    otel.Otel
}

func NewSweeper(cfg *config.Config, service BookingSweeps, redisCache cache.RedisCache, ot otel.Otel) *Sweeper {
	return &Sweeper{
		cfg:     cfg,
		service: service,
		cache:   redisCache,
		otel:    ot,
	}
}

// Run blocks until ctx is cancelled, sweeping once per configured interval.
func (s *Sweeper) Run(ctx context.Context) {
	interval := time.Duration(s.cfg.Booking.SweepIntervalSeconds) * time.Second

	log.Info().Dur("interval", interval).Msg("booking sweeper started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep(ctx)
		case <-ctx.Done():
			log.Info().Msg("booking sweeper stopped")

			return
		}
	}
}

// Sweep runs a single pass. The lock TTL matches the interval, so a pass
// skipped here is picked up by whichever replica wins the next tick.
func (s *Sweeper) Sweep(ctx context.Context) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelJobScopeName, constant.OtelJobScopeName+".Sweep")
	defer scope.End()

	acquired, err := s.cache.AcquireLock(ctx, sweepLockKey, s.cfg.Booking.SweepIntervalSeconds)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to acquire sweep lock")

		return
	}

	if !acquired {
		return
	}

	rejected, err := s.service.SweepStaleUnpaid(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("stale unpaid sweep failed")
	}

	completed, err := s.service.SweepAutoComplete(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("auto-complete sweep failed")
	}

	if rejected > 0 || completed > 0 {
		log.Info().Int("rejected", rejected).Int("completed", completed).Msg("booking sweep finished")
	}
}
