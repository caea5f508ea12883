package components

import (
	"context"
	"log/slog"

	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/config"
	"stayhub/internal/usecase"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
	sweeperModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) commands.Settings {
		return commands.Settings{
			HoldDuration: cfg.Booking.HoldDuration,
			TaxRateBP:    cfg.Pricing.TaxRateBP,
		}
	},
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		NewAvailabilityQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
		commands.NewLifecycleCommands,
		commands.NewPaymentCommands,
		commands.NewCouponCommands,
		commands.NewCalendarCommands,
	),
)

var sweeperModule = fx.Module("usecase/sweeper",
	fx.Provide(NewSweeper),
	fx.Invoke(StartSweeper),
)

func NewAvailabilityQueries(
	days queries.AvailabilityViewRepo,
	listings shared.ListingReads,
	coupons queries.CouponViewRepo,
	clk clock.Clock,
	cfg config.Config,
) queries.AvailabilityQueries {
	return queries.NewAvailabilityQueries(days, listings, coupons, clk, cfg.Pricing.TaxRateBP)
}

func NewSweeper(
	uow shared.UnitOfWork,
	lifecycle commands.LifecycleCommands,
	clk clock.Clock,
	cfg config.Config,
) *usecase.Sweeper {
	return usecase.NewSweeper(uow, lifecycle, clk, cfg.Booking.SweepInterval, cfg.Booking.SweepBatchSize)
}

func StartSweeper(lc fx.Lifecycle, sweeper *usecase.Sweeper, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("starting expiry sweeper")
			go sweeper.Run(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}
