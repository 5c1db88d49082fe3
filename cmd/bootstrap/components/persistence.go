package components

import (
	"lodgekeeper/internal/infra/db"
	"lodgekeeper/internal/infra/readstore"
	"lodgekeeper/internal/infra/uow"
	"lodgekeeper/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// UnitOfWork
		uow.NewPostgresUoW,
		// User
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		// Reservation
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationViewRepo)),
		),
		// Room
		fx.Annotate(
			readstore.NewRoomReadStore,
			fx.As(new(queries.RoomViewRepo)),
		),
		// Voucher
		fx.Annotate(
			readstore.NewVoucherReadStore,
			fx.As(new(queries.VoucherViewRepo)),
		),
		// Report
		fx.Annotate(
			readstore.NewReportReadStore,
			fx.As(new(queries.ReportViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
