package components

import (
	"lodgekeeper/internal/handler"
	"lodgekeeper/internal/handler/api"
	"lodgekeeper/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewRoomHandler,
		api.NewReservationHandler,
		api.NewVoucherHandler,
		api.NewReportHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	auth *api.AuthHandler,
	room *api.RoomHandler,
	reservation *api.ReservationHandler,
	voucher *api.VoucherHandler,
	report *api.ReportHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:        auth,
		Room:        room,
		Reservation: reservation,
		Voucher:     voucher,
		Report:      report,
	}
}
