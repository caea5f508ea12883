package usecase

import (
	"context"
	"log/slog"
	"time"

	"stayhub/internal/pkg/clock"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/shared"
)

// Sweeper cancels Pending holds whose payment deadline has passed. It is the
// only writer that moves bookings without a user request, so every
// cancellation goes through the same CAS path as everyone else; losing a
// race to a concurrent payment confirmation is expected and harmless.
type Sweeper struct {
	uow       shared.UnitOfWork
	lifecycle commands.LifecycleCommands
	clock     clock.Clock
	interval  time.Duration
	batchSize int32
}

func NewSweeper(
	uow shared.UnitOfWork,
	lifecycle commands.LifecycleCommands,
	clk clock.Clock,
	interval time.Duration,
	batchSize int32,
) *Sweeper {
	return &Sweeper{
		uow:       uow,
		lifecycle: lifecycle,
		clock:     clk,
		interval:  interval,
		batchSize: batchSize,
	}
}

// Run blocks until ctx is done, sweeping once per interval.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("expiry sweeper started", "interval", s.interval, "batch_size", s.batchSize)
	for {
		select {
		case <-ticker.C:
			if n, err := s.SweepOnce(ctx); err != nil {
				slog.Error("expiry sweep failed", "error", err)
			} else if n > 0 {
				slog.Info("expired holds cancelled", "count", n)
			}
		case <-ctx.Done():
			slog.Info("expiry sweeper stopped")
			return
		}
	}
}

// SweepOnce cancels up to one batch of expired holds and reports how many
// transitions it won.
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	now := s.clock.Now()

	codes, err := s.expiredCodes(ctx, now)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, code := range codes {
		if ctx.Err() != nil {
			return cancelled, ctx.Err()
		}
		// ExpireHold swallows benign race losses; real failures surface.
		if err := s.lifecycle.ExpireHold(ctx, code); err != nil {
			slog.Error("failed to expire hold", "booking_code", code, "error", err)
			continue
		}
		cancelled++
	}
	return cancelled, nil
}

func (s *Sweeper) expiredCodes(ctx context.Context, now time.Time) ([]string, error) {
	var codes []string
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		expired, err := tx.Bookings().FindExpiredPending(ctx, now, s.batchSize)
		if err != nil {
			return err
		}
		codes = make([]string, 0, len(expired))
		for _, b := range expired {
			codes = append(codes, b.Code().String())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return codes, nil
}
