package components

import (
	"stayhub/internal/infra/db"
	"stayhub/internal/infra/readstore"
	"stayhub/internal/infra/repository"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// PersistenceModule wires the read side. Write-side repositories are not
// provided here: they live behind the unit of work and are constructed
// per-transaction.
var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,

		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingViewRepo)),
		),
		fx.Annotate(
			readstore.NewAvailabilityReadStore,
			fx.As(new(queries.AvailabilityViewRepo)),
		),
		fx.Annotate(
			repository.NewListingRepository,
			fx.As(new(shared.ListingReads)),
		),
		fx.Annotate(
			repository.NewCouponRepository,
			fx.As(new(queries.CouponViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
