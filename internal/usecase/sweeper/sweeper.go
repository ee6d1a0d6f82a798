// Package sweeper owns the time-driven cleanup the reservation engine relies
// on: reaping expired pending holds, marking no-shows, and retiring ended
// screenings. Every pass is idempotent, so overlapping runs are harmless.
package sweeper

import (
	"context"
	"log/slog"
	"time"

	"cinebox/internal/infra/repository"
	"cinebox/internal/pkg/clock"
	"cinebox/internal/pkg/errs"
	"cinebox/internal/usecase/shared"
)

type Sweeper interface {
	// ReapExpired deletes pending reservations older than the hold timeout,
	// releasing their seats, and returns how many were reaped. The timeout is
	// read fresh on every pass.
	ReapExpired(ctx context.Context) (int64, error)

	// MarkNoShows flips active reservations whose screening has ended.
	MarkNoShows(ctx context.Context) (int64, error)

	// DeactivateEnded retires screenings whose end time has passed.
	DeactivateEnded(ctx context.Context) (int64, error)

	// Run executes one full maintenance pass, logging and continuing past
	// individual failures.
	Run(ctx context.Context)
}

type sweeperImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewSweeper(uow shared.UnitOfWork, clk clock.Clock) Sweeper {
	return &sweeperImpl{uow: uow, clock: clk}
}

func (s *sweeperImpl) ReapExpired(ctx context.Context) (int64, error) {
	var reaped int64
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		holdMin, err := tx.Parameters().GetOrDefault(ctx, repository.ParamReservationHoldMin, repository.DefaultHoldMin)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		cutoff := s.clock.Now().Add(-time.Duration(holdMin) * time.Minute)
		reaped, err = tx.Reservations().DeleteExpiredPending(ctx, cutoff)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return reaped, nil
}

func (s *sweeperImpl) MarkNoShows(ctx context.Context) (int64, error) {
	var marked int64
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		marked, err = tx.Reservations().MarkNoShows(ctx, s.clock.Now())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return marked, nil
}

func (s *sweeperImpl) DeactivateEnded(ctx context.Context) (int64, error) {
	var retired int64
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		retired, err = tx.Screenings().DeactivateEnded(ctx, s.clock.Now())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return retired, nil
}

func (s *sweeperImpl) Run(ctx context.Context) {
	if n, err := s.ReapExpired(ctx); err != nil {
		slog.Error("sweep: reap expired failed", "error", err.Error())
	} else if n > 0 {
		slog.Info("sweep: reaped expired holds", "count", n)
	}

	if n, err := s.MarkNoShows(ctx); err != nil {
		slog.Error("sweep: mark no-shows failed", "error", err.Error())
	} else if n > 0 {
		slog.Info("sweep: marked no-shows", "count", n)
	}

	if n, err := s.DeactivateEnded(ctx); err != nil {
		slog.Error("sweep: deactivate screenings failed", "error", err.Error())
	} else if n > 0 {
		slog.Info("sweep: deactivated ended screenings", "count", n)
	}
}
