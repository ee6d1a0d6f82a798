package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"cinebox/internal/usecase/sweeper"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/fx"
)

// sweepInterval is how often the maintenance pass runs. Expired holds are
// also reaped opportunistically before seat map reads, so this only bounds
// how stale no-show marking and screening deactivation can get.
const sweepInterval = time.Minute

var SchedulerModule = fx.Module("scheduler",
	fx.Invoke(StartScheduler),
)

func StartScheduler(lc fx.Lifecycle, sw sweeper.Sweeper) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(sweepInterval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			sw.Run(ctx)
		}),
	)
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			scheduler.Start()
			slog.Info("maintenance scheduler started", "interval", sweepInterval.String())
			return nil
		},
		OnStop: func(_ context.Context) error {
			return scheduler.Shutdown()
		},
	})
	return nil
}
